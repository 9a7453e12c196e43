package service

import (
	"github.com/google/uuid"

	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
)

// VolunteerInput is the validated payload for creating or updating a volunteer.
type VolunteerInput struct {
	ChurchID uuid.UUID
	Name     string
	Email    string
	Phone    *string
	Ministry *string
}

// VolunteerService manages church volunteers.
type VolunteerService struct {
	crud[model.Volunteer, VolunteerInput]
}

func NewVolunteerService(repo *repository.Repo[model.Volunteer]) *VolunteerService {
	return &VolunteerService{crud: newCrud(repo, volunteerCols)}
}

func volunteerCols(in VolunteerInput) repository.Cols {
	return repository.Cols{
		{Col: "church_id", Val: in.ChurchID},
		{Col: "name", Val: in.Name},
		{Col: "email", Val: in.Email},
		{Col: "phone", Val: in.Phone},
		{Col: "ministry", Val: in.Ministry},
	}
}
