package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"coachtrack/internal/model"
)

// MembershipBackend is the slice of the backend the superadmin pages use.
type MembershipBackend interface {
	Profiles(ctx context.Context) ([]model.Profile, error)
	ProfilesByIDs(ctx context.Context, ids []string, role string) ([]model.Profile, error)
	CreateProfile(ctx context.Context, p *model.Profile) error
	RenameProfile(ctx context.Context, id, firstName, lastName string) error
	Courses(ctx context.Context) ([]model.Course, error)
	Members(ctx context.Context, courseID string) ([]model.CourseMember, error)
	AddMember(ctx context.Context, courseID, userID string, active bool) error
	SetMemberActive(ctx context.Context, courseID, userID string, active bool) error
	DeactivateMemberships(ctx context.Context, userID string) error
}

type MembershipService struct {
	backend MembershipBackend
}

func NewMembershipService(backend MembershipBackend) *MembershipService {
	return &MembershipService{backend: backend}
}

func (s *MembershipService) Profiles(ctx context.Context) ([]model.Profile, error) {
	return s.backend.Profiles(ctx)
}

func (s *MembershipService) Courses(ctx context.Context) ([]model.Course, error) {
	return s.backend.Courses(ctx)
}

func (s *MembershipService) Rename(ctx context.Context, id, firstName, lastName string) error {
	return s.backend.RenameProfile(ctx, id, firstName, lastName)
}

// CourseMembers joins membership links with their profiles.
func (s *MembershipService) CourseMembers(ctx context.Context, courseID string) ([]model.MemberInfo, error) {
	members, err := s.backend.Members(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("course members: %w", err)
	}
	if len(members) == 0 {
		return []model.MemberInfo{}, nil
	}

	activeByID := make(map[string]bool, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
		activeByID[m.UserID] = m.IsActive
	}

	profiles, err := s.backend.ProfilesByIDs(ctx, ids, "")
	if err != nil {
		return nil, fmt.Errorf("member profiles: %w", err)
	}
	infos := make([]model.MemberInfo, 0, len(profiles))
	for _, p := range profiles {
		infos = append(infos, model.MemberInfo{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			IsActive:  activeByID[p.ID],
		})
	}
	return infos, nil
}

// AddToCourse enrolls a user. When setActive is requested the user's other
// active memberships are cleared first so they end up with a single active
// course.
func (s *MembershipService) AddToCourse(ctx context.Context, courseID, userID string, setActive bool) error {
	if setActive {
		if err := s.backend.DeactivateMemberships(ctx, userID); err != nil {
			return err
		}
	}
	return s.backend.AddMember(ctx, courseID, userID, setActive)
}

func (s *MembershipService) SetActive(ctx context.Context, courseID, userID string, active bool) error {
	return s.backend.SetMemberActive(ctx, courseID, userID, active)
}

// CreateUser provisions a profile with a generated temporary password. The
// password is returned once so the superadmin can hand it over.
func (s *MembershipService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.CreateUserResponse, error) {
	temp := tempPassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(temp), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &model.Profile{
		ID:           uuid.NewString(),
		Username:     strings.ToLower(strings.SplitN(req.Email, "@", 2)[0]),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         "user",
		CreatedAt:    time.Now(),
	}
	if err := s.backend.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	return &model.CreateUserResponse{User: *p, TempPassword: temp}, nil
}

func tempPassword() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
