package service

import (
	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
)

// ChurchInput is the validated payload for creating or updating a church.
type ChurchInput struct {
	Name    string
	City    string
	Address *string
	Phone   *string
}

// ChurchService manages congregation sites.
type ChurchService struct {
	crud[model.Church, ChurchInput]
}

func NewChurchService(repo *repository.Repo[model.Church]) *ChurchService {
	return &ChurchService{crud: newCrud(repo, churchCols)}
}

func churchCols(in ChurchInput) repository.Cols {
	return repository.Cols{
		{Col: "name", Val: in.Name},
		{Col: "city", Val: in.City},
		{Col: "address", Val: in.Address},
		{Col: "phone", Val: in.Phone},
	}
}
