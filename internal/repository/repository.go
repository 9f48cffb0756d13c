package repository

import (
	"context"
	"errors"

	"eventcal/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Users is the storage interface for user accounts.
type Users interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// Events is the storage interface for calendar events.
type Events interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, event *models.Event) error
	ListForUser(ctx context.Context, userID string) ([]models.Event, error)
}
