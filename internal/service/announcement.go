package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
)

// AnnouncementInput is the validated payload for creating or updating an announcement.
type AnnouncementInput struct {
	ChurchID  uuid.UUID
	Title     string
	Body      string
	PublishAt time.Time
	ExpiresAt *time.Time
}

// AnnouncementService manages church announcements.
type AnnouncementService struct {
	crud[model.Announcement, AnnouncementInput]
}

func NewAnnouncementService(repo *repository.Repo[model.Announcement]) *AnnouncementService {
	return &AnnouncementService{crud: newCrud(repo, announcementCols)}
}

func announcementCols(in AnnouncementInput) repository.Cols {
	return repository.Cols{
		{Col: "church_id", Val: in.ChurchID},
		{Col: "title", Val: in.Title},
		{Col: "body", Val: in.Body},
		{Col: "publish_at", Val: in.PublishAt},
		{Col: "expires_at", Val: in.ExpiresAt},
	}
}
