package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachtrack/internal/model"
	"coachtrack/internal/progress"
	"coachtrack/internal/store"
)

var ErrNoActiveCourse = errors.New("no active course")

// PayoffTarget is the course payoff goal shown on the user dashboard.
const PayoffTarget = 20000

// DashboardBackend is the slice of the backend the user dashboard reads.
type DashboardBackend interface {
	Courses(ctx context.Context) ([]model.Course, error)
	Course(ctx context.Context, id string) (*model.Course, error)
	LatestCourse(ctx context.Context) (*model.Course, error)
	TaskTypes(ctx context.Context) ([]model.TaskType, error)
	WeeklyCounts(ctx context.Context, course *model.Course, userID string) ([]model.WeeklyRecord, error)
	PipelineClients(ctx context.Context, userID string) ([]model.Client, error)
	TotalGrossRevenue(ctx context.Context, userID string) (float64, error)
	DailyCounts(ctx context.Context, courseID, userID string, start, end time.Time) ([]model.DailyCounts, error)
	SetWeeklyTotal(ctx context.Context, courseID, userID string, taskTypeID int, weekStart time.Time, newTotal int) error
}

type DashboardService struct {
	backend DashboardBackend
	now     func() time.Time
}

func NewDashboardService(backend DashboardBackend) *DashboardService {
	return &DashboardService{backend: backend, now: time.Now}
}

// resolveCourse loads the requested course, or the newest one when no id is
// given. A missing course short-circuits the whole pipeline.
func (s *DashboardService) resolveCourse(ctx context.Context, courseID string) (*model.Course, error) {
	var (
		course *model.Course
		err    error
	)
	if courseID == "" {
		course, err = s.backend.LatestCourse(ctx)
	} else {
		course, err = s.backend.Course(ctx, courseID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoActiveCourse
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (s *DashboardService) Overview(ctx context.Context, courseID, userID string) (*model.DashboardOverview, error) {
	course, err := s.resolveCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	weekly, err := s.backend.WeeklyCounts(ctx, course, userID)
	if err != nil {
		return nil, fmt.Errorf("weekly counts: %w", err)
	}

	ov := &model.DashboardOverview{
		CourseID:     course.ID,
		CourseStart:  course.StartDate.Format("2006-01-02"),
		Weekly:       weekly,
		Goals:        []model.GoalCard{},
		PayoffTarget: PayoffTarget,
	}

	if idx, ok := progress.WeekIndex(course.StartDate, s.now()); ok {
		clamped := progress.ClampWeek(idx, course.Weeks)
		ov.CurrentWeek = &clamped
		// A course row with no weeks yields an empty record slice.
		if clamped < len(weekly) {
			if goals, err := s.goalCards(ctx, &weekly[clamped]); err == nil {
				ov.Goals = goals
			}
		}
	}

	clients, err := s.backend.PipelineClients(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pipeline clients: %w", err)
	}
	ov.PipelineCount = len(clients)
	for _, c := range clients {
		ov.PipelineRevenue += c.PipelineRevenue
	}

	gross, err := s.backend.TotalGrossRevenue(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("gross revenue: %w", err)
	}
	ov.GrossRevenue = gross
	return ov, nil
}

// goalCards pairs the selected week's counts with each task type's quota.
func (s *DashboardService) goalCards(ctx context.Context, week *model.WeeklyRecord) ([]model.GoalCard, error) {
	types, err := s.backend.TaskTypes(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[model.TaskKey]model.TaskType, len(types))
	for _, t := range types {
		byKey[model.TaskKey(t.Name)] = t
	}

	cards := make([]model.GoalCard, 0, len(model.TaskKeys))
	for _, k := range model.TaskKeys {
		t := byKey[k]
		goal := t.MinimalAmount
		if goal <= 0 {
			goal = 1
		}
		value := week.Get(k)
		pct := int(float64(value) / goal * 100)
		if pct > 100 {
			pct = 100
		}
		cards = append(cards, model.GoalCard{
			Key: k, Label: t.Label, Value: value, Goal: goal, Percent: pct,
		})
	}
	return cards, nil
}

// Trend builds the cumulative trend series from course start to today.
func (s *DashboardService) Trend(ctx context.Context, courseID, userID string) ([]model.DailyTrendPoint, error) {
	course, err := s.resolveCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	types, err := s.backend.TaskTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("task types: %w", err)
	}
	minimals := make(map[model.TaskKey]float64, len(types))
	for _, t := range types {
		minimals[model.TaskKey(t.Name)] = t.MinimalAmount
	}

	days, err := s.backend.DailyCounts(ctx, course.ID, userID, course.StartDate, s.now())
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}

	points, err := progress.BuildTrend(days, minimals)
	if err != nil {
		return nil, err
	}
	for i := range points {
		if d, err := time.Parse("2006-01-02", points[i].Day); err == nil {
			points[i].Day = d.Format("Jan 2")
		}
	}
	return points, nil
}

// UpdateWeek sets the caller's own weekly total for one task type.
func (s *DashboardService) UpdateWeek(ctx context.Context, courseID, userID string, req model.UpdateWeekRequest) error {
	course, err := s.resolveCourse(ctx, courseID)
	if err != nil {
		return err
	}
	weekStart := progress.WeekStart(course.StartDate, req.Week-1)
	return s.backend.SetWeeklyTotal(ctx, course.ID, userID, req.TaskTypeID, weekStart, req.NewTotal)
}

// Courses lists all courses, newest first.
func (s *DashboardService) Courses(ctx context.Context) ([]model.Course, error) {
	return s.backend.Courses(ctx)
}
