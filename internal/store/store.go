// Package store implements the persistence calls the dashboards are built
// from. Services consume it through narrow interfaces so the computation
// layer stays testable against fixtures.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"coachtrack/internal/model"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Migrate creates or updates the schema. Used by cmd/seed; the server
// assumes an already-provisioned database.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&model.Profile{}, &model.Course{}, &model.CourseMember{},
		&model.TaskType{}, &model.TaskLog{}, &model.Client{}, &model.Sale{},
	)
}

// --- courses ---

func (s *Store) Courses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := s.db.WithContext(ctx).Order("start_date DESC").Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	return courses, nil
}

func (s *Store) Course(ctx context.Context, id string) (*model.Course, error) {
	var c model.Course
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query course: %w", err)
	}
	return &c, nil
}

// LatestCourse returns the course with the newest start date, the default
// selection on every dashboard.
func (s *Store) LatestCourse(ctx context.Context) (*model.Course, error) {
	var c model.Course
	err := s.db.WithContext(ctx).Order("start_date DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest course: %w", err)
	}
	return &c, nil
}

// --- profiles ---

func (s *Store) Profiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := s.db.WithContext(ctx).Order("last_name, first_name").Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	return profiles, nil
}

func (s *Store) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// ProfileByLogin matches either username or email.
func (s *Store) ProfileByLogin(ctx context.Context, login string) (*model.Profile, error) {
	var p model.Profile
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

func (s *Store) ProfilesByIDs(ctx context.Context, ids []string, role string) ([]model.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := s.db.WithContext(ctx).Where("id IN ?", ids)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var profiles []model.Profile
	if err := q.Order("last_name, first_name").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	return profiles, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *model.Profile) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *Store) RenameProfile(ctx context.Context, id, firstName, lastName string) error {
	res := s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"first_name": firstName, "last_name": lastName})
	if res.Error != nil {
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- course membership ---

func (s *Store) Members(ctx context.Context, courseID string) ([]model.CourseMember, error) {
	var members []model.CourseMember
	err := s.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	return members, nil
}

func (s *Store) AddMember(ctx context.Context, courseID, userID string, active bool) error {
	m := model.CourseMember{CourseID: courseID, UserID: userID, IsActive: active}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (s *Store) SetMemberActive(ctx context.Context, courseID, userID string, active bool) error {
	res := s.db.WithContext(ctx).Model(&model.CourseMember{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Update("is_active", active)
	if res.Error != nil {
		return fmt.Errorf("update member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateMemberships clears the active flag on every course the user is
// enrolled in, so a new membership can become their single active one.
func (s *Store) DeactivateMemberships(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Model(&model.CourseMember{}).
		Where("user_id = ? AND is_active = true", userID).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("deactivate memberships: %w", err)
	}
	return nil
}

// --- task types ---

func (s *Store) TaskTypes(ctx context.Context) ([]model.TaskType, error) {
	var types []model.TaskType
	err := s.db.WithContext(ctx).Order("task_type_id").Find(&types).Error
	if err != nil {
		return nil, fmt.Errorf("query task types: %w", err)
	}
	return types, nil
}

func (s *Store) TaskType(ctx context.Context, id int) (*model.TaskType, error) {
	var t model.TaskType
	err := s.db.WithContext(ctx).Where("task_type_id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query task type: %w", err)
	}
	return &t, nil
}
