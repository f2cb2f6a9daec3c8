package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"varal-dos-sonhos/model"
	"varal-dos-sonhos/notify"
	"varal-dos-sonhos/store"
)

type AdoptionItem struct {
	LetterID        string
	CollectionPoint string
}

type AdoptionService struct {
	Store    store.Gateway
	Table    string
	Notifier notify.Notifier
	Now      func() time.Time
}

// Adopt writes one donation per letter, in order, then sends a single
// confirmation. The first failed write aborts the rest without rolling back
// what was already written.
func (s *AdoptionService) Adopt(ctx context.Context, donor string, items []AdoptionItem) error {
	if donor == "" {
		return ErrInvalidAdoption
	}
	for _, item := range items {
		if item.LetterID == "" {
			return ErrInvalidAdoption
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	date := now().UTC().Format("2006-01-02")

	for i, item := range items {
		donation := model.Donation{
			Donor:           donor,
			Letter:          item.LetterID,
			CollectionPoint: item.CollectionPoint,
			Date:            date,
			Status:          model.DonationAwaitingDelivery,
		}
		if _, err := s.Store.Create(ctx, s.Table, donation.Fields()); err != nil {
			return &AdoptionError{Recorded: i, Total: len(items), Err: err}
		}
	}

	msg := notify.Message{
		To:      donor,
		Subject: "Confirmação de Adoção",
		Body:    fmt.Sprintf("Recebemos sua adoção de %d cartinha(s). Obrigado pelo carinho!", len(items)),
	}
	if err := s.Notifier.Send(ctx, msg); err != nil {
		log.Printf("Failed to send adoption confirmation to %s: %v", donor, err)
	}
	return nil
}
