package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraguide_api/models"
)

// fakeInteractionStore 内存版交互记录存储
type fakeInteractionStore struct {
	err    error
	lastID string
	last   *models.UserInteraction
}

func (f *fakeInteractionStore) InsertInteraction(id string, interaction *models.UserInteraction) error {
	if f.err != nil {
		return f.err
	}
	f.lastID = id
	f.last = interaction
	return nil
}

func TestRecordInteraction(t *testing.T) {
	store := &fakeInteractionStore{}
	svc := NewInteractionService(store)

	rating := 4.5
	id, err := svc.RecordInteraction(&models.UserInteraction{
		UserID:          "user-1",
		UserName:        "Alice",
		CourseID:        "Introduction to Park Guiding",
		InteractionType: "enrolled",
		Rating:          &rating,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, id)
	assert.Equal(t, id, store.lastID)
	require.NotNil(t, store.last)
	assert.Equal(t, "enrolled", store.last.InteractionType)
}

func TestRecordInteractionStoreFailure(t *testing.T) {
	store := &fakeInteractionStore{err: errors.New("table missing")}
	svc := NewInteractionService(store)

	id, err := svc.RecordInteraction(&models.UserInteraction{
		UserID:          "user-1",
		CourseID:        "Introduction to Park Guiding",
		InteractionType: "viewed",
	})
	require.Error(t, err)
	assert.Empty(t, id)
}
