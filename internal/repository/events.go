package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"eventcal/internal/models"
)

// GormEvents implements Events on top of a gorm connection.
type GormEvents struct {
	db *gorm.DB
}

// NewGormEvents returns an event repository bound to db.
func NewGormEvents(db *gorm.DB) *GormEvents {
	return &GormEvents{db: db}
}

func (r *GormEvents) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *GormEvents) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

func (r *GormEvents) Update(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *GormEvents) Delete(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Delete(event).Error; err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// ListForUser returns all events owned by userID, ascending by (date, time).
// Ties break on creation time so the order is stable.
func (r *GormEvents) ListForUser(ctx context.Context, userID string) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, time ASC, created_at ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}
