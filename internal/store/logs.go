package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"coachtrack/internal/model"
	"coachtrack/internal/progress"
)

const dateLayout = "2006-01-02"

// WeeklyCounts buckets the user's task logs into program weeks. It always
// returns one record per week of the course, zero-filled, so callers can
// index with a clamped week number.
func (s *Store) WeeklyCounts(ctx context.Context, course *model.Course, userID string) ([]model.WeeklyRecord, error) {
	records := make([]model.WeeklyRecord, course.Weeks)
	for i := range records {
		records[i].WeekStart = progress.WeekStart(course.StartDate, i).Format(dateLayout)
	}

	var rows []struct {
		TaskTypeID int
		WeekIdx    int
		Total      int
	}
	err := s.db.WithContext(ctx).Model(&model.TaskLog{}).
		Select("task_type_id, FLOOR(DATEDIFF(DATE(created_at), ?) / 7) AS week_idx, SUM(amount) AS total",
			course.StartDate.Format(dateLayout)).
		Where("user_id = ? AND course_id = ? AND created_at >= ?", userID, course.ID, course.StartDate).
		Group("task_type_id, week_idx").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query weekly counts: %w", err)
	}

	for _, r := range rows {
		if r.WeekIdx < 0 || r.WeekIdx >= course.Weeks {
			continue
		}
		key, ok := model.TaskKeyForID(r.TaskTypeID)
		if !ok {
			continue
		}
		records[r.WeekIdx].Add(key, r.Total)
	}
	return records, nil
}

// RecentTaskTotal sums one task type's logged amounts since the given instant.
func (s *Store) RecentTaskTotal(ctx context.Context, courseID, userID string, taskTypeID int, since time.Time) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&model.TaskLog{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND course_id = ? AND task_type_id = ? AND created_at >= ?",
			userID, courseID, taskTypeID, since).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("query recent task total: %w", err)
	}
	return total, nil
}

// HasRecentActivity reports whether any task of any type was logged since
// the given instant.
func (s *Store) HasRecentActivity(ctx context.Context, courseID, userID string, since time.Time) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.TaskLog{}).
		Where("user_id = ? AND course_id = ? AND created_at >= ?", userID, courseID, since).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query recent activity: %w", err)
	}
	return n > 0, nil
}

// DailyCounts returns one row per calendar day in [start, end], zero-filled,
// with the six task counts and that day's gross revenue.
func (s *Store) DailyCounts(ctx context.Context, courseID, userID string, start, end time.Time) ([]model.DailyCounts, error) {
	start = start.Truncate(24 * time.Hour)
	byDay := map[string]*model.DailyCounts{}
	var days []model.DailyCounts
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, model.DailyCounts{Day: d.Format(dateLayout)})
	}
	for i := range days {
		byDay[days[i].Day] = &days[i]
	}

	var taskRows []struct {
		Day        string
		TaskTypeID int
		Total      int
	}
	err := s.db.WithContext(ctx).Model(&model.TaskLog{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS day, task_type_id, SUM(amount) AS total").
		Where("user_id = ? AND course_id = ? AND created_at >= ? AND created_at < ?",
			userID, courseID, start, end.AddDate(0, 0, 1)).
		Group("day, task_type_id").
		Scan(&taskRows).Error
	if err != nil {
		return nil, fmt.Errorf("query daily counts: %w", err)
	}
	for _, r := range taskRows {
		d, ok := byDay[r.Day]
		if !ok {
			continue
		}
		if key, ok := model.TaskKeyForID(r.TaskTypeID); ok {
			d.Add(key, r.Total)
		}
	}

	var saleRows []struct {
		Day   string
		Total float64
	}
	err = s.db.WithContext(ctx).Model(&model.Sale{}).
		Select("DATE_FORMAT(closed_at, '%Y-%m-%d') AS day, SUM(amount) AS total").
		Where("user_id = ? AND closed_at >= ? AND closed_at < ?", userID, start, end.AddDate(0, 0, 1)).
		Group("day").
		Scan(&saleRows).Error
	if err != nil {
		return nil, fmt.Errorf("query daily revenue: %w", err)
	}
	for _, r := range saleRows {
		if d, ok := byDay[r.Day]; ok {
			d.GrossRevenue = r.Total
		}
	}
	return days, nil
}

// SetWeeklyTotal replaces a week's logged total for one task type with an
// explicit value: existing logs in the week are dropped and a single
// adjustment log carries the new total. Runs in one transaction so a
// re-read sees exactly the written value or the old state, never a mix.
func (s *Store) SetWeeklyTotal(ctx context.Context, courseID, userID string, taskTypeID int, weekStart time.Time, newTotal int) error {
	weekEnd := weekStart.AddDate(0, 0, 7)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ? AND task_type_id = ? AND created_at >= ? AND created_at < ?",
			userID, courseID, taskTypeID, weekStart, weekEnd).
			Delete(&model.TaskLog{}).Error
		if err != nil {
			return err
		}
		if newTotal == 0 {
			return nil
		}
		return tx.Create(&model.TaskLog{
			UserID:     userID,
			CourseID:   courseID,
			TaskTypeID: taskTypeID,
			Amount:     newTotal,
			Source:     "adjustment",
			CreatedAt:  weekStart,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("set weekly total: %w", err)
	}
	return nil
}
