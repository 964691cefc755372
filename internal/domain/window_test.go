package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNewSearchWindow(t *testing.T) {
	t.Run("90 day window from frozen clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)))
		defer SetClock(nil)

		w := NewSearchWindow()
		assert.Equal(t, "2024-03-01", w.FromDate())
		assert.Equal(t, "2024-05-30", w.ToDate())
		assert.Equal(t, "UTC", w.Timezone)
	})

	t.Run("anchored to the UTC date regardless of local wall clock", func(t *testing.T) {
		// 2024-03-01 23:30 in UTC-10 is already 2024-03-02 in UTC.
		loc := time.FixedZone("UTC-10", -10*3600)
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 23, 30, 0, 0, loc)))
		defer SetClock(nil)

		w := NewSearchWindow()
		assert.Equal(t, "2024-03-02", w.FromDate())
		assert.Equal(t, "2024-05-31", w.ToDate())
	})

	t.Run("time of day is truncated", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)))
		defer SetClock(nil)

		w := NewSearchWindow()
		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), w.DateFrom)
		assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), w.DateTo)
	})
}
