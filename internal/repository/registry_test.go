package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	for _, table := range []string{"churches", "volunteers", "offers", "announcements"} {
		assert.True(t, IsRegistered(table), "table %q should be registered", table)
	}

	assert.False(t, IsRegistered("status"))
	assert.False(t, IsRegistered(""))
	assert.False(t, IsRegistered("Churches"))
}

func TestTablesReturnsCopy(t *testing.T) {
	got := Tables()
	got[0] = "mutated"

	assert.Equal(t, "churches", Tables()[0])
}
