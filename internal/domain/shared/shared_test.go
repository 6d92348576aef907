package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Run("zero value is unassigned", func(t *testing.T) {
		var id ID
		assert.False(t, id.IsAssigned())
		assert.Equal(t, "unassigned", id.String())
		assert.True(t, id.Equals(Unassigned()))
	})

	t.Run("zero is a valid assigned identifier", func(t *testing.T) {
		id, err := NewID(0)
		require.NoError(t, err)
		assert.True(t, id.IsAssigned())
		assert.False(t, id.Equals(Unassigned()))
		assert.Equal(t, "0", id.String())
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := NewID(-1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
		assert.True(t, IsValidation(err))
	})

	t.Run("equality is by value", func(t *testing.T) {
		assert.True(t, MustID(7).Equals(MustID(7)))
		assert.False(t, MustID(7).Equals(MustID(8)))
	})

	t.Run("parses decimal strings", func(t *testing.T) {
		id, err := ParseID("42")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Value())

		_, err = ParseID("abc")
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})
}

func TestDomainError(t *testing.T) {
	t.Run("matches sentinel by code through wrapping", func(t *testing.T) {
		err := fmt.Errorf("saving task: %w", NewValidationError("title cannot be empty"))
		assert.ErrorIs(t, err, ErrValidation)
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, CodeValidation, CodeOf(err))
	})

	t.Run("code of a plain error is empty", func(t *testing.T) {
		assert.Empty(t, CodeOf(errors.New("boom")))
	})
}

type testEvent struct {
	BaseDomainEvent
}

func TestBaseAggregateRoot(t *testing.T) {
	var root BaseAggregateRoot
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	root.AddDomainEvent(&testEvent{NewBaseDomainEvent("Something", "Test", MustID(1), at)})
	root.AddDomainEvent(&testEvent{NewBaseDomainEvent("Other", "Test", MustID(1), at)})

	events := root.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "Something", events[0].EventType())
	assert.Equal(t, at, events[0].OccurredAt())
	assert.NotEqual(t, events[0].EventID(), events[1].EventID())

	pulled := root.PullDomainEvents()
	assert.Len(t, pulled, 2)
	assert.Empty(t, root.DomainEvents())
}
