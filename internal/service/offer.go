package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/parishkit/parishkit/internal/model"
	"github.com/parishkit/parishkit/internal/repository"
)

// OfferInput is the validated payload for registering or correcting an offering.
type OfferInput struct {
	ChurchID    uuid.UUID
	AmountCents int64
	Currency    string
	Kind        string
	OfferedAt   time.Time
	Note        *string
}

// OfferService manages monetary offerings.
type OfferService struct {
	crud[model.Offer, OfferInput]
}

func NewOfferService(repo *repository.Repo[model.Offer]) *OfferService {
	return &OfferService{crud: newCrud(repo, offerCols)}
}

func offerCols(in OfferInput) repository.Cols {
	return repository.Cols{
		{Col: "church_id", Val: in.ChurchID},
		{Col: "amount_cents", Val: in.AmountCents},
		{Col: "currency", Val: in.Currency},
		{Col: "kind", Val: in.Kind},
		{Col: "offered_at", Val: in.OfferedAt},
		{Col: "note", Val: in.Note},
	}
}
