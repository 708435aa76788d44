package orderbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FactorySim_Go/internal/domain"
)

var start = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func TestOpen_SequentialIDs(t *testing.T) {
	b := New()
	first, err := b.Open("Wooden Chair", 3, 20, start.Add(48*time.Hour))
	require.NoError(t, err)
	second, err := b.Open("Wooden Table", 1, 40, start.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 2, b.Len())

	_, err = b.Open("Wooden Chair", 0, 20, start)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, 2, b.Len())
}

func TestRecordProduction_FirstOpenMatchOnly(t *testing.T) {
	b := New()
	_, _ = b.Open("Wooden Chair", 2, 20, start)
	_, _ = b.Open("Wooden Table", 1, 40, start)
	_, _ = b.Open("Wooden Chair", 5, 20, start)

	f, ok := b.RecordProduction("Wooden Chair")
	require.True(t, ok)
	assert.Equal(t, 1, f.Order.ID)
	assert.False(t, f.CompletedNow)

	f, ok = b.RecordProduction("Wooden Chair")
	require.True(t, ok)
	assert.Equal(t, 1, f.Order.ID)
	assert.True(t, f.CompletedNow)
	assert.Equal(t, 40.0, f.Order.Payout())

	f, ok = b.RecordProduction("Wooden Chair")
	require.True(t, ok)
	assert.Equal(t, 3, f.Order.ID, "completed orders are skipped")

	third, _ := b.Get(3)
	assert.Equal(t, 1, third.CompletedQuantity)
}

func TestRecordProduction_NoMatch(t *testing.T) {
	b := New()
	_, ok := b.RecordProduction("Wooden Chair")
	assert.False(t, ok, "production before any order is never credited later")

	_, _ = b.Open("Wooden Chair", 3, 20, start)
	o, _ := b.Get(1)
	assert.Zero(t, o.CompletedQuantity)
}

func TestCompletion_IsMonotonic(t *testing.T) {
	b := New()
	_, _ = b.Open("Wooden Chair", 1, 20, start)

	f, _ := b.RecordProduction("Wooden Chair")
	require.True(t, f.CompletedNow)

	_, ok := b.RecordProduction("Wooden Chair")
	assert.False(t, ok)

	o, _ := b.Get(1)
	assert.True(t, o.Completed)
	assert.Equal(t, 1, o.CompletedQuantity)
	assert.Equal(t, 0, b.OpenCount())
}

func TestOverdue_IsDerived(t *testing.T) {
	b := New()
	_, _ = b.Open("Wooden Chair", 1, 20, start.Add(time.Hour))
	_, _ = b.Open("Wooden Table", 1, 40, start.Add(3*time.Hour))

	assert.Empty(t, b.Overdue(start.Add(time.Hour)))
	assert.Equal(t, []int{1}, b.Overdue(start.Add(2*time.Hour)))
	assert.Equal(t, []int{1, 2}, b.Overdue(start.Add(4*time.Hour)))

	b.RecordProduction("Wooden Chair")
	assert.Equal(t, []int{2}, b.Overdue(start.Add(4*time.Hour)))
}

func TestReferencesAndClear(t *testing.T) {
	b := New()
	_, _ = b.Open("Wooden Chair", 1, 20, start)
	assert.True(t, b.References("Wooden Chair"))
	assert.False(t, b.References("Wooden Table"))

	b.Clear()
	assert.Zero(t, b.Len())
	o, err := b.Open("Wooden Table", 1, 40, start)
	require.NoError(t, err)
	assert.Equal(t, 1, o.ID)

	_, ok := b.Get(0)
	assert.False(t, ok)
	assert.Len(t, b.All(), 1)
}
