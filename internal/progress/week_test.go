package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coachtrack/internal/model"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestWeekIndex(t *testing.T) {
	start := date("2026-01-05")

	idx, ok := WeekIndex(start, start)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = WeekIndex(start, start.AddDate(0, 0, 6))
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = WeekIndex(start, start.AddDate(0, 0, 7))
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = WeekIndex(start, start.AddDate(0, 0, -1))
	assert.False(t, ok, "course not started yet")
}

func TestClampWeekLongRunningCourse(t *testing.T) {
	start := time.Now().AddDate(0, 0, -200)
	idx, ok := WeekIndex(start, time.Now())
	assert.True(t, ok)
	assert.Equal(t, 28, idx)
	assert.Equal(t, 11, ClampWeek(idx, model.CourseWeeks))
}

func TestClampWeekBounds(t *testing.T) {
	assert.Equal(t, 0, ClampWeek(-1, 12))
	assert.Equal(t, 0, ClampWeek(0, 12))
	assert.Equal(t, 5, ClampWeek(5, 12))
	assert.Equal(t, 11, ClampWeek(11, 12))
	assert.Equal(t, 11, ClampWeek(12, 12))

	// Degenerate week counts still clamp to a valid index.
	assert.Equal(t, 0, ClampWeek(4, 0))
	assert.Equal(t, 0, ClampWeek(4, -1))
	assert.Equal(t, 0, ClampWeek(-3, 0))
}

func TestWeekStart(t *testing.T) {
	start := date("2026-01-05")
	assert.Equal(t, start, WeekStart(start, 0))
	assert.Equal(t, date("2026-02-02"), WeekStart(start, 4))
}
