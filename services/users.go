package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"varal-dos-sonhos/mapper"
	"varal-dos-sonhos/model"
	"varal-dos-sonhos/notify"
	"varal-dos-sonhos/store"
)

type UserService struct {
	Store    store.Gateway
	Table    string
	Notifier notify.Notifier
	Now      func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *UserService) findByEmail(ctx context.Context, email string) (*model.Record, error) {
	records, err := s.Store.Select(ctx, s.Table, store.Query{
		Filter:     store.Equals{Field: model.UserEmail, Value: email},
		MaxRecords: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Register creates a donor account and returns its record id.
// The email check and the insert are not atomic: two concurrent
// registrations with the same email can both succeed.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", ErrMissingFields
	}

	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}

	user := model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleDonor,
		Status:       model.StatusActive,
		RegisteredAt: s.now().UTC().Format("2006-01-02"),
	}
	created, err := s.Store.Create(ctx, s.Table, user.Fields())
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	msg := notify.Message{
		To:      email,
		Subject: "Bem-vindo ao Varal dos Sonhos",
		Body:    fmt.Sprintf("Olá %s, seu cadastro foi realizado!", name),
	}
	if err := s.Notifier.Send(ctx, msg); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", email, err)
	}

	return created.ID, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*model.UserSummary, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	record, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrUserNotFound
	}
	if !checkPassword(record.Fields, password) {
		return nil, ErrWrongPassword
	}

	summary := mapper.UserSummary(*record)
	return &summary, nil
}
