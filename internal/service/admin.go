package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"coachtrack/internal/logger"
	"coachtrack/internal/model"
	"coachtrack/internal/progress"
	"coachtrack/internal/store"
)

// gridConcurrency bounds the per-user fan-out when building the admin grid.
const gridConcurrency = 8

// GridBackend is the slice of the backend the admin grid reads and writes.
type GridBackend interface {
	Course(ctx context.Context, id string) (*model.Course, error)
	LatestCourse(ctx context.Context) (*model.Course, error)
	Members(ctx context.Context, courseID string) ([]model.CourseMember, error)
	ProfilesByIDs(ctx context.Context, ids []string, role string) ([]model.Profile, error)
	TaskType(ctx context.Context, id int) (*model.TaskType, error)
	WeeklyCounts(ctx context.Context, course *model.Course, userID string) ([]model.WeeklyRecord, error)
	PipelineClients(ctx context.Context, userID string) ([]model.Client, error)
	RecentTaskTotal(ctx context.Context, courseID, userID string, taskTypeID int, since time.Time) (float64, error)
	HasRecentActivity(ctx context.Context, courseID, userID string, since time.Time) (bool, error)
	SetWeeklyTotal(ctx context.Context, courseID, userID string, taskTypeID int, weekStart time.Time, newTotal int) error
}

type AdminService struct {
	backend GridBackend
	now     func() time.Time
}

func NewAdminService(backend GridBackend) *AdminService {
	return &AdminService{backend: backend, now: time.Now}
}

// Grid builds the cross-user grid for one course and task type. Per-user
// reads run concurrently; results land in a preallocated slice keyed by
// position, so row order is independent of completion order. The totals row
// is derived after the join, in a single-threaded reduction.
func (s *AdminService) Grid(ctx context.Context, courseID string, taskTypeID int) (*model.GridResponse, error) {
	course, err := s.resolveCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	key, ok := model.TaskKeyForID(taskTypeID)
	if !ok {
		return nil, fmt.Errorf("unknown task type %d", taskTypeID)
	}

	// Unconfigured minimal defaults to 1 for classification.
	minimal := 1.0
	taskType, err := s.backend.TaskType(ctx, taskTypeID)
	if err == nil && taskType.MinimalAmount > 0 {
		minimal = taskType.MinimalAmount
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("task type: %w", err)
	}

	members, err := s.backend.Members(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("course members: %w", err)
	}
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	profiles, err := s.backend.ProfilesByIDs(ctx, ids, "user")
	if err != nil {
		return nil, fmt.Errorf("member profiles: %w", err)
	}

	rows := make([]model.UserRow, len(profiles))
	sem := make(chan struct{}, gridConcurrency)
	var wg sync.WaitGroup
	for i, p := range profiles {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, p model.Profile) {
			defer wg.Done()
			defer func() { <-sem }()
			rows[i] = s.buildRow(ctx, course, p, key, taskTypeID, minimal)
		}(i, p)
	}
	wg.Wait()

	rows = append(rows, progress.BuildTotals(rows))

	resp := &model.GridResponse{
		CourseID:   course.ID,
		TaskTypeID: taskTypeID,
		Rows:       rows,
	}
	if idx, ok := progress.WeekIndex(course.StartDate, s.now()); ok {
		clamped := progress.ClampWeek(idx, course.Weeks)
		resp.CurrentWeek = &clamped
	}
	return resp, nil
}

// buildRow assembles one user's grid row. Read failures degrade the row to
// zeros rather than failing the whole grid.
func (s *AdminService) buildRow(ctx context.Context, course *model.Course, p model.Profile, key model.TaskKey, taskTypeID int, minimal float64) model.UserRow {
	row := model.UserRow{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName}

	weekly, err := s.backend.WeeklyCounts(ctx, course, p.ID)
	if err != nil {
		logger.Warn("grid.weekly_counts failed", "uid", p.ID, "err", err)
		return row
	}
	for w := 0; w < model.CourseWeeks && w < len(weekly); w++ {
		row.Weeks[w] = weekly[w].Get(key)
	}

	clients, err := s.backend.PipelineClients(ctx, p.ID)
	if err != nil {
		logger.Warn("grid.pipeline failed", "uid", p.ID, "err", err)
	}
	row.PipelineCount = len(clients)
	for _, c := range clients {
		row.PipelineRevenue += c.PipelineRevenue
	}

	now := s.now()
	recentTotal, err := s.backend.RecentTaskTotal(ctx, course.ID, p.ID, taskTypeID, now.AddDate(0, 0, -7))
	if err != nil {
		logger.Warn("grid.recent_total failed", "uid", p.ID, "err", err)
	}
	active, err := s.backend.HasRecentActivity(ctx, course.ID, p.ID, now.AddDate(0, 0, -3))
	if err != nil {
		logger.Warn("grid.recent_activity failed", "uid", p.ID, "err", err)
	}
	row.Status = progress.Classify(recentTotal, active, minimal)
	return row
}

// UpdateCell writes one user's weekly total for one task type.
func (s *AdminService) UpdateCell(ctx context.Context, req model.UpdateCellRequest) error {
	course, err := s.resolveCourse(ctx, req.CourseID)
	if err != nil {
		return err
	}
	weekStart := progress.WeekStart(course.StartDate, req.Week-1)
	return s.backend.SetWeeklyTotal(ctx, course.ID, req.UserID, req.TaskTypeID, weekStart, req.NewTotal)
}

func (s *AdminService) resolveCourse(ctx context.Context, courseID string) (*model.Course, error) {
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
