package repository

import (
	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/server"
)

// baseCols are the columns every entity table shares; per-entity lists
// extend them. The column lists double as the order-key whitelist for
// pagination, so they must stay in sync with the migrations.
var baseCols = []string{"id", "created_at", "updated_at", "deleted"}

func entityCols(cols ...string) []string {
	return append(append([]string{}, baseCols...), cols...)
}

// Repositories is the container for all repository instances, one per
// registered entity table.
type Repositories struct {
	Churches      *Repo[model.Church]
	Volunteers    *Repo[model.Volunteer]
	Offers        *Repo[model.Offer]
	Announcements *Repo[model.Announcement]
}

// NewRepositories constructs the repository container on the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	db := s.DB.Pool

	return &Repositories{
		Churches:      New[model.Church](db, "churches", entityCols("name", "city", "address", "phone")),
		Volunteers:    New[model.Volunteer](db, "volunteers", entityCols("church_id", "name", "email", "phone", "ministry")),
		Offers:        New[model.Offer](db, "offers", entityCols("church_id", "amount_cents", "currency", "kind", "offered_at", "note")),
		Announcements: New[model.Announcement](db, "announcements", entityCols("church_id", "title", "body", "publish_at", "expires_at")),
	}
}
