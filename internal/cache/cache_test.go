package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store. Failures can be forced per operation.
type fakeStore struct {
	data map[string]string

	failGet  bool
	failSet  bool
	failIncr bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failGet {
		return "", false, errors.New("store down")
	}
	val, ok := s.data[key]
	return val, ok, nil
}

func (s *fakeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.failSet {
		return errors.New("store down")
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Incr(ctx context.Context, key string) (int64, error) {
	if s.failIncr {
		return 0, errors.New("store down")
	}
	var v int64
	if cur, ok := s.data[key]; ok {
		v, _ = strconv.ParseInt(cur, 10, 64)
	}
	v++
	s.data[key] = strconv.FormatInt(v, 10)
	return v, nil
}

func newTestCache(store Store) *Cache {
	log := zerolog.Nop()
	return NewWithStore(store, time.Minute, &log)
}

func TestFamily(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/volunteers", "volunteers"},
		{"/volunteers/42", "volunteers"},
		{"/volunteers?page=2", "volunteers"},
		{"/churches/deleted", "churches"},
		{"/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Family(tt.path), "path %q", tt.path)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(newFakeStore())

	entry := &Entry{
		Status:      200,
		ContentType: "application/json",
		Header:      map[string]string{"X-Total-Count": "41", "X-Total-Pages": "3"},
		Body:        []byte(`{"data":[]}`),
	}
	c.SetResponse(ctx, "churches", "GET", "/churches?page=1", entry)

	got, ok := c.GetResponse(ctx, "churches", "GET", "/churches?page=1")
	require.True(t, ok)
	assert.Equal(t, entry, got)
}

func TestMissOnUnknownKey(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(newFakeStore())

	_, ok := c.GetResponse(ctx, "churches", "GET", "/churches")
	assert.False(t, ok)
}

func TestInvalidateOrphansWholeFamily(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := newTestCache(store)

	entry := &Entry{Status: 200, ContentType: "application/json", Body: []byte("[]")}
	c.SetResponse(ctx, "offers", "GET", "/offers?page=1", entry)
	c.SetResponse(ctx, "offers", "GET", "/offers?page=2", entry)
	c.SetResponse(ctx, "churches", "GET", "/churches", entry)

	require.NoError(t, c.Invalidate(ctx, "offers"))

	// Every offers variant is unreachable after one bump.
	_, ok := c.GetResponse(ctx, "offers", "GET", "/offers?page=1")
	assert.False(t, ok)
	_, ok = c.GetResponse(ctx, "offers", "GET", "/offers?page=2")
	assert.False(t, ok)

	// Other families keep their entries.
	_, ok = c.GetResponse(ctx, "churches", "GET", "/churches")
	assert.True(t, ok)

	// Writes after the bump land under the new version.
	c.SetResponse(ctx, "offers", "GET", "/offers?page=1", entry)
	_, ok = c.GetResponse(ctx, "offers", "GET", "/offers?page=1")
	assert.True(t, ok)
}

func TestVersionSeparatesMethodsAndURIs(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(newFakeStore())

	entry := &Entry{Status: 200, ContentType: "application/json", Body: []byte("[]")}
	c.SetResponse(ctx, "churches", "GET", "/churches?orderValue=asc", entry)

	_, ok := c.GetResponse(ctx, "churches", "GET", "/churches?orderValue=desc")
	assert.False(t, ok)
	_, ok = c.GetResponse(ctx, "churches", "HEAD", "/churches?orderValue=asc")
	assert.False(t, ok)
}

func TestStoreFailuresDegradeToMiss(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := newTestCache(store)

	entry := &Entry{Status: 200, ContentType: "application/json", Body: []byte("[]")}
	c.SetResponse(ctx, "churches", "GET", "/churches", entry)

	store.failGet = true
	_, ok := c.GetResponse(ctx, "churches", "GET", "/churches")
	assert.False(t, ok)

	// A failing write is swallowed.
	store.failGet = false
	store.failSet = true
	c.SetResponse(ctx, "churches", "GET", "/churches?page=2", entry)

	store.failIncr = true
	assert.Error(t, c.Invalidate(ctx, "churches"))
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := newTestCache(store)

	store.data[key("churches", 0, "GET", "/churches")] = "not json"

	_, ok := c.GetResponse(ctx, "churches", "GET", "/churches")
	assert.False(t, ok)
}

func TestCorruptVersionIsAMiss(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	c := newTestCache(store)

	store.data[versionKey("churches")] = "not a number"

	_, ok := c.GetResponse(ctx, "churches", "GET", "/churches")
	assert.False(t, ok)
}
