/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package catalog stores the activities available for dispatching.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openconf/tracksmith/internal/models"
	"github.com/openconf/tracksmith/internal/timetable"
)

// ErrNotFound is returned when no activity has the requested id.
var ErrNotFound = errors.New("catalog: activity not found")

// Service provides CRUD access to the activity catalog.
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// New creates a catalog service.
func New(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Create stores a new activity and returns the persisted record.
func (s *Service) Create(ctx context.Context, title string, duration time.Duration, openEnded bool) (models.Activity, error) {
	if !openEnded && duration < 0 {
		return models.Activity{}, fmt.Errorf("%w: %q", timetable.ErrNegativeDuration, title)
	}
	rec := models.Activity{
		ID:        uuid.NewString(),
		Title:     title,
		Duration:  duration,
		OpenEnded: openEnded,
	}
	if openEnded {
		rec.Duration = 0
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	s.logger.Debug().Str("activity_id", rec.ID).Str("title", title).Msg("activity created")
	return rec, nil
}

// Get returns a single activity by id.
func (s *Service) Get(ctx context.Context, id string) (models.Activity, error) {
	var rec models.Activity
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Activity{}, ErrNotFound
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("get activity: %w", err)
	}
	return rec, nil
}

// List returns all activities in creation order.
func (s *Service) List(ctx context.Context) ([]models.Activity, error) {
	var recs []models.Activity
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return recs, nil
}

// Delete removes an activity by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Activity{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Values returns the catalog as core scheduling values, in catalog order.
func (s *Service) Values(ctx context.Context) ([]timetable.Activity, error) {
	recs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	acts := make([]timetable.Activity, 0, len(recs))
	for _, rec := range recs {
		acts = append(acts, rec.Value())
	}
	return acts, nil
}
