package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coachtrack/internal/model"
	"coachtrack/internal/progress"
	"coachtrack/internal/store"
)

// fakeBackend is an in-memory stand-in for the store, shared by the service
// tests. Weekly records are held per user and mutated by SetWeeklyTotal the
// same way the real store's adjustment write behaves.
type fakeBackend struct {
	mu sync.Mutex

	courses   []model.Course
	profiles  map[string]model.Profile
	members   []model.CourseMember
	taskTypes map[int]model.TaskType

	weekly       map[string][]model.WeeklyRecord
	clients      map[string][]model.Client
	recentTotals map[string]float64
	recentActive map[string]bool
	daily        map[string][]model.DailyCounts
	gross        map[string]float64

	weeklyErr   map[string]error
	weeklyDelay map[string]time.Duration
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		profiles:     map[string]model.Profile{},
		taskTypes:    map[int]model.TaskType{},
		weekly:       map[string][]model.WeeklyRecord{},
		clients:      map[string][]model.Client{},
		recentTotals: map[string]float64{},
		recentActive: map[string]bool{},
		daily:        map[string][]model.DailyCounts{},
		gross:        map[string]float64{},
		weeklyErr:    map[string]error{},
		weeklyDelay:  map[string]time.Duration{},
	}
}

func (f *fakeBackend) addCourse(id string, start time.Time) *model.Course {
	c := model.Course{ID: id, StartDate: start, Weeks: model.CourseWeeks}
	f.courses = append(f.courses, c)
	return &c
}

func (f *fakeBackend) addUser(id, first, last string, course *model.Course) {
	f.profiles[id] = model.Profile{ID: id, FirstName: first, LastName: last, Role: "user"}
	f.members = append(f.members, model.CourseMember{CourseID: course.ID, UserID: id, IsActive: true})
	records := make([]model.WeeklyRecord, course.Weeks)
	for i := range records {
		records[i].WeekStart = progress.WeekStart(course.StartDate, i).Format("2006-01-02")
	}
	f.weekly[id] = records
}

func (f *fakeBackend) seedTaskTypes() {
	for id, t := range map[int]model.TaskType{
		1: {ID: 1, Name: "asks", Label: "Asks", MinimalAmount: 70},
		2: {ID: 2, Name: "follow_ups", Label: "Follow Ups", MinimalAmount: 50},
		3: {ID: 3, Name: "open_houses", Label: "Open Houses", MinimalAmount: 3},
		4: {ID: 4, Name: "handwritten_cards", Label: "Handwritten Cards", MinimalAmount: 20},
		5: {ID: 5, Name: "action_promises", Label: "Action Promises", MinimalAmount: 20},
		6: {ID: 6, Name: "exercises", Label: "Exercises", MinimalAmount: 5},
	} {
		f.taskTypes[id] = t
	}
}

// --- backend interfaces ---

func (f *fakeBackend) Courses(ctx context.Context) ([]model.Course, error) {
	return f.courses, nil
}

func (f *fakeBackend) Course(ctx context.Context, id string) (*model.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBackend) LatestCourse(ctx context.Context) (*model.Course, error) {
	if len(f.courses) == 0 {
		return nil, store.ErrNotFound
	}
	latest := f.courses[0]
	for _, c := range f.courses[1:] {
		if c.StartDate.After(latest.StartDate) {
			latest = c
		}
	}
	return &latest, nil
}

func (f *fakeBackend) TaskTypes(ctx context.Context) ([]model.TaskType, error) {
	var types []model.TaskType
	for i := 1; i <= 6; i++ {
		if t, ok := f.taskTypes[i]; ok {
			types = append(types, t)
		}
	}
	return types, nil
}

func (f *fakeBackend) TaskType(ctx context.Context, id int) (*model.TaskType, error) {
	t, ok := f.taskTypes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (f *fakeBackend) WeeklyCounts(ctx context.Context, course *model.Course, userID string) ([]model.WeeklyRecord, error) {
	if d := f.weeklyDelay[userID]; d > 0 {
		time.Sleep(d)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.weeklyErr[userID]; err != nil {
		return nil, err
	}
	records := make([]model.WeeklyRecord, len(f.weekly[userID]))
	copy(records, f.weekly[userID])
	return records, nil
}

func (f *fakeBackend) PipelineClients(ctx context.Context, userID string) ([]model.Client, error) {
	return f.Clients(ctx, userID, model.ClientTypePipeline)
}

func (f *fakeBackend) Clients(ctx context.Context, ownerID, clientType string) ([]model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Client
	for _, c := range f.clients[ownerID] {
		if clientType == "" || c.ClientType == clientType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeBackend) ClientByID(ctx context.Context, ownerID, id string) (*model.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients[ownerID] {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBackend) CreateClient(ctx context.Context, c *model.Client) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[c.OwnerID] = append(f.clients[c.OwnerID], *c)
	return nil
}

func (f *fakeBackend) UpdateClient(ctx context.Context, ownerID, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.clients[ownerID] {
		if c.ID != id {
			continue
		}
		for col, v := range updates {
			switch col {
			case "first_name":
				c.FirstName = v.(string)
			case "last_name":
				c.LastName = v.(string)
			case "client_type":
				c.ClientType = v.(string)
			case "temperature":
				c.Temperature = v.(string)
			case "pipeline_note":
				c.PipelineNote = v.(string)
			case "pipeline_revenue":
				c.PipelineRevenue = v.(float64)
			}
		}
		f.clients[ownerID][i] = c
		return nil
	}
	return store.ErrNotFound
}

func (f *fakeBackend) DeleteClient(ctx context.Context, ownerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.clients[ownerID] {
		if c.ID == id {
			f.clients[ownerID] = append(f.clients[ownerID][:i], f.clients[ownerID][i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeBackend) RecentTaskTotal(ctx context.Context, courseID, userID string, taskTypeID int, since time.Time) (float64, error) {
	return f.recentTotals[userID], nil
}

func (f *fakeBackend) HasRecentActivity(ctx context.Context, courseID, userID string, since time.Time) (bool, error) {
	return f.recentActive[userID], nil
}

func (f *fakeBackend) TotalGrossRevenue(ctx context.Context, userID string) (float64, error) {
	return f.gross[userID], nil
}

func (f *fakeBackend) DailyCounts(ctx context.Context, courseID, userID string, start, end time.Time) ([]model.DailyCounts, error) {
	return f.daily[userID], nil
}

func (f *fakeBackend) SetWeeklyTotal(ctx context.Context, courseID, userID string, taskTypeID int, weekStart time.Time, newTotal int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, ok := model.TaskKeyForID(taskTypeID)
	if !ok {
		return fmt.Errorf("unknown task type %d", taskTypeID)
	}
	want := weekStart.Format("2006-01-02")
	records := f.weekly[userID]
	for i := range records {
		if records[i].WeekStart == want {
			cur := records[i].Get(key)
			records[i].Add(key, newTotal-cur)
			return nil
		}
	}
	return fmt.Errorf("week %s out of range", want)
}

func (f *fakeBackend) Profiles(ctx context.Context) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBackend) ProfilesByIDs(ctx context.Context, ids []string, role string) ([]model.Profile, error) {
	var out []model.Profile
	for _, id := range ids {
		p, ok := f.profiles[id]
		if !ok {
			continue
		}
		if role != "" && p.Role != role {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBackend) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeBackend) ProfileByLogin(ctx context.Context, login string) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.Username == login || p.Email == login {
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeBackend) CreateProfile(ctx context.Context, p *model.Profile) error {
	f.profiles[p.ID] = *p
	return nil
}

func (f *fakeBackend) RenameProfile(ctx context.Context, id, firstName, lastName string) error {
	p, ok := f.profiles[id]
	if !ok {
		return store.ErrNotFound
	}
	p.FirstName, p.LastName = firstName, lastName
	f.profiles[id] = p
	return nil
}

func (f *fakeBackend) Members(ctx context.Context, courseID string) ([]model.CourseMember, error) {
	var out []model.CourseMember
	for _, m := range f.members {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBackend) AddMember(ctx context.Context, courseID, userID string, active bool) error {
	f.members = append(f.members, model.CourseMember{CourseID: courseID, UserID: userID, IsActive: active})
	return nil
}

func (f *fakeBackend) SetMemberActive(ctx context.Context, courseID, userID string, active bool) error {
	for i, m := range f.members {
		if m.CourseID == courseID && m.UserID == userID {
			f.members[i].IsActive = active
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeBackend) DeactivateMemberships(ctx context.Context, userID string) error {
	for i, m := range f.members {
		if m.UserID == userID {
			f.members[i].IsActive = false
		}
	}
	return nil
}
