package services

import (
	"context"
	"strings"

	"varal-dos-sonhos/config"
	"varal-dos-sonhos/mapper"
	"varal-dos-sonhos/model"
	"varal-dos-sonhos/store"
)

const FallbackAnswer = "💭 Ainda não sei sobre isso, mas posso perguntar à equipe!"

var byStartDate = []store.Sort{{Field: "data_inicio", Direction: store.Asc}}

// CatalogService serves the read-only listings.
type CatalogService struct {
	Store  store.Gateway
	Tables config.Tables
}

func (s *CatalogService) FeaturedEvents(ctx context.Context) ([]model.Event, error) {
	records, err := s.Store.Select(ctx, s.Tables.Events, store.Query{
		Filter: store.IsTrue{Field: "destaque_home"},
		Sort:   byStartDate,
	})
	if err != nil {
		return nil, err
	}
	return mapper.All(records, mapper.Event), nil
}

func (s *CatalogService) AllEvents(ctx context.Context) ([]model.Event, error) {
	records, err := s.Store.Select(ctx, s.Tables.Events, store.Query{Sort: byStartDate})
	if err != nil {
		return nil, err
	}
	return mapper.All(records, mapper.Event), nil
}

// Event returns an error wrapping store.ErrNotFound for unknown ids.
func (s *CatalogService) Event(ctx context.Context, id string) (*model.Event, error) {
	record, err := s.Store.Find(ctx, s.Tables.Events, id)
	if err != nil {
		return nil, err
	}
	event := mapper.Event(*record)
	return &event, nil
}

func (s *CatalogService) AvailableLetters(ctx context.Context) ([]model.Letter, error) {
	records, err := s.Store.Select(ctx, s.Tables.Letters, store.Query{
		Filter: store.Equals{Field: "status", Value: model.LetterAvailable},
	})
	if err != nil {
		return nil, err
	}
	return mapper.All(records, mapper.Letter), nil
}

func (s *CatalogService) CollectionPoints(ctx context.Context) ([]model.CollectionPoint, error) {
	records, err := s.Store.Select(ctx, s.Tables.CollectionPoints, store.Query{})
	if err != nil {
		return nil, err
	}
	return mapper.All(records, mapper.CollectionPoint), nil
}

func (s *CatalogService) KnowledgeBase(ctx context.Context) ([]model.KnowledgeEntry, error) {
	records, err := s.Store.Select(ctx, s.Tables.Knowledge, store.Query{})
	if err != nil {
		return nil, err
	}
	return mapper.All(records, mapper.KnowledgeEntry), nil
}

// Ask answers with the first entry whose question contains message, ignoring case.
func (s *CatalogService) Ask(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return FallbackAnswer, nil
	}

	records, err := s.Store.Select(ctx, s.Tables.Knowledge, store.Query{
		Filter:     store.Contains{Field: "pergunta", Text: message},
		MaxRecords: 1,
	})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return FallbackAnswer, nil
	}

	if answer := mapper.KnowledgeEntry(records[0]).Answer; answer != "" {
		return answer, nil
	}
	return FallbackAnswer, nil
}
