package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventcal/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func newEvent(userID, title, date, tm string) *models.Event {
	return &models.Event{
		ID:     uuid.New().String(),
		Title:  title,
		Date:   date,
		Time:   tm,
		UserID: userID,
	}
}

func TestListForUser_OrderedByDateTime(t *testing.T) {
	db := newTestDB(t)
	events := NewGormEvents(db)
	ctx := context.Background()

	userID := uuid.New().String()
	// Inserted deliberately out of chronological order.
	require.NoError(t, events.Create(ctx, newEvent(userID, "late", "2024-05-01", "10:00")))
	require.NoError(t, events.Create(ctx, newEvent(userID, "early", "2024-01-01", "18:00")))
	require.NoError(t, events.Create(ctx, newEvent(userID, "same day later", "2024-01-01", "19:30")))

	got, err := events.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "early", got[0].Title)
	assert.Equal(t, "same day later", got[1].Title)
	assert.Equal(t, "late", got[2].Title)
}

func TestListForUser_ScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	events := NewGormEvents(db)
	ctx := context.Background()

	alice := uuid.New().String()
	bob := uuid.New().String()
	require.NoError(t, events.Create(ctx, newEvent(alice, "alice's", "2024-02-01", "09:00")))
	require.NoError(t, events.Create(ctx, newEvent(bob, "bob's", "2024-02-01", "09:00")))

	got, err := events.ListForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice's", got[0].Title)
}

func TestEventRoundTrip(t *testing.T) {
	db := newTestDB(t)
	events := NewGormEvents(db)
	ctx := context.Background()

	e := newEvent(uuid.New().String(), "dentist", "2024-03-15", "09:30")
	e.Description = "check-up"
	e.Location = "downtown"
	require.NoError(t, events.Create(ctx, e))

	got, err := events.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", got.Date)
	assert.Equal(t, "09:30", got.Time)
	assert.Equal(t, "dentist", got.Title)
	assert.Equal(t, "check-up", got.Description)
	assert.Equal(t, "downtown", got.Location)
}

func TestEventUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	events := NewGormEvents(db)
	ctx := context.Background()

	e := newEvent(uuid.New().String(), "draft", "2024-04-01", "08:00")
	require.NoError(t, events.Create(ctx, e))

	e.Title = "final"
	e.Time = "08:30"
	require.NoError(t, events.Update(ctx, e))

	got, err := events.FindByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "08:30", got.Time)

	require.NoError(t, events.Delete(ctx, got))
	_, err = events.FindByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_FindByUsername(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUsers(db)
	ctx := context.Background()

	u := &models.User{ID: uuid.New().String(), Username: "alice"}
	require.NoError(t, u.SetPassword("pw"))
	require.NoError(t, users.Create(ctx, u))

	got, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// Case-sensitive lookup: a different casing is a different username.
	_, err = users.FindByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
