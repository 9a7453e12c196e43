package service

import (
	"github.com/parishkit/parishkit/internal/repository"
	"github.com/parishkit/parishkit/internal/server"
)

// Services is the container for all resource services.
type Services struct {
	Churches      *ChurchService
	Volunteers    *VolunteerService
	Offers        *OfferService
	Announcements *AnnouncementService
}

// NewServices constructs the service container on top of the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Churches:      NewChurchService(repos.Churches),
		Volunteers:    NewVolunteerService(repos.Volunteers),
		Offers:        NewOfferService(repos.Offers),
		Announcements: NewAnnouncementService(repos.Announcements),
	}, nil
}
