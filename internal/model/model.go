package model

// CourseWeeks is the fixed program length every course runs for.
const CourseWeeks = 12

// TotalsRowID marks the synthetic aggregate row appended to the admin grid.
const TotalsRowID = "totals"

// TaskKey identifies one of the six tracked coaching activities.
type TaskKey string

const (
	KeyAsks             TaskKey = "asks"
	KeyFollowUps        TaskKey = "follow_ups"
	KeyOpenHouses       TaskKey = "open_houses"
	KeyHandwrittenCards TaskKey = "handwritten_cards"
	KeyActionPromises   TaskKey = "action_promises"
	KeyExercises        TaskKey = "exercises"
)

// TaskKeys is the canonical column order used by the grid and the trend chart.
var TaskKeys = []TaskKey{
	KeyAsks, KeyFollowUps, KeyOpenHouses,
	KeyHandwrittenCards, KeyActionPromises, KeyExercises,
}

var taskKeyByID = map[int]TaskKey{
	1: KeyAsks, 2: KeyFollowUps, 3: KeyOpenHouses,
	4: KeyHandwrittenCards, 5: KeyActionPromises, 6: KeyExercises,
}

func TaskKeyForID(id int) (TaskKey, bool) {
	k, ok := taskKeyByID[id]
	return k, ok
}

// Client type tags. Pipeline membership is the tag the revenue dashboards
// key on; prospects are the pool promotions draw from.
const (
	ClientTypeProspect = "Prospect"
	ClientTypePipeline = "Pipeline"
)

// Status is the per-user activity classification for one rendering pass.
type Status string

const (
	StatusExcellent Status = "excellent"
	StatusNormal    Status = "normal"
	StatusPoor      Status = "poor"
	StatusInactive  Status = "inactive"
)

// TaskCounts carries one integer per task type.
type TaskCounts struct {
	Asks             int `json:"asks"`
	FollowUps        int `json:"follow_ups"`
	OpenHouses       int `json:"open_houses"`
	HandwrittenCards int `json:"handwritten_cards"`
	ActionPromises   int `json:"action_promises"`
	Exercises        int `json:"exercises"`
}

func (c *TaskCounts) Get(k TaskKey) int {
	switch k {
	case KeyAsks:
		return c.Asks
	case KeyFollowUps:
		return c.FollowUps
	case KeyOpenHouses:
		return c.OpenHouses
	case KeyHandwrittenCards:
		return c.HandwrittenCards
	case KeyActionPromises:
		return c.ActionPromises
	case KeyExercises:
		return c.Exercises
	}
	return 0
}

func (c *TaskCounts) Add(k TaskKey, n int) {
	switch k {
	case KeyAsks:
		c.Asks += n
	case KeyFollowUps:
		c.FollowUps += n
	case KeyOpenHouses:
		c.OpenHouses += n
	case KeyHandwrittenCards:
		c.HandwrittenCards += n
	case KeyActionPromises:
		c.ActionPromises += n
	case KeyExercises:
		c.Exercises += n
	}
}

// WeeklyRecord is one program week of task counts for one user.
type WeeklyRecord struct {
	WeekStart string `json:"week_start"`
	TaskCounts
}

// DailyCounts is one calendar day of raw task counts plus gross revenue.
type DailyCounts struct {
	Day string `json:"day"`
	TaskCounts
	GrossRevenue float64 `json:"gross_revenue"`
}

// UserRow is one admin-grid row. Weeks holds the displayed weekly values:
// per-week counts for user rows, running cumulative sums for the totals row.
type UserRow struct {
	ID              string             `json:"id"`
	FirstName       string             `json:"first_name"`
	LastName        string             `json:"last_name"`
	PipelineCount   int                `json:"pipeline_count"`
	PipelineRevenue float64            `json:"pipeline_revenue"`
	Weeks           [CourseWeeks]int   `json:"weeks"`
	Status          Status             `json:"status,omitempty"`
}

// DailyTrendPoint is one chart point: six cumulative task metrics rescaled
// onto the asks unit, cumulative gross revenue and the on-pace baseline.
type DailyTrendPoint struct {
	Day              string  `json:"day"`
	Asks             float64 `json:"asks"`
	FollowUps        float64 `json:"follow_ups"`
	OpenHouses       float64 `json:"open_houses"`
	HandwrittenCards float64 `json:"handwritten_cards"`
	ActionPromises   float64 `json:"action_promises"`
	Exercises        float64 `json:"exercises"`
	GrossRevenue     float64 `json:"gross_revenue"`
	Baseline         float64 `json:"baseline"`
}

func (p *DailyTrendPoint) SetMetric(k TaskKey, v float64) {
	switch k {
	case KeyAsks:
		p.Asks = v
	case KeyFollowUps:
		p.FollowUps = v
	case KeyOpenHouses:
		p.OpenHouses = v
	case KeyHandwrittenCards:
		p.HandwrittenCards = v
	case KeyActionPromises:
		p.ActionPromises = v
	case KeyExercises:
		p.Exercises = v
	}
}

// --- request/response payloads ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
	Role  string  `json:"role"`
}

type GoalCard struct {
	Key     TaskKey `json:"key"`
	Label   string  `json:"label"`
	Value   int     `json:"value"`
	Goal    float64 `json:"goal"`
	Percent int     `json:"percent"`
}

type DashboardOverview struct {
	CourseID        string         `json:"course_id"`
	CourseStart     string         `json:"course_start"`
	CurrentWeek     *int           `json:"current_week"` // 0-based, clamped; null before course start
	Weekly          []WeeklyRecord `json:"weekly"`
	Goals           []GoalCard     `json:"goals"`
	PipelineCount   int            `json:"pipeline_count"`
	PipelineRevenue float64        `json:"pipeline_revenue"`
	GrossRevenue    float64        `json:"gross_revenue"`
	PayoffTarget    float64        `json:"payoff_target"`
}

type GridResponse struct {
	CourseID    string    `json:"course_id"`
	TaskTypeID  int       `json:"task_type_id"`
	CurrentWeek *int      `json:"current_week"`
	Rows        []UserRow `json:"rows"` // totals row last
}

type UpdateWeekRequest struct {
	TaskTypeID int `json:"task_type_id" binding:"required"`
	Week       int `json:"week" binding:"required,min=1,max=12"`
	NewTotal   int `json:"new_total" binding:"min=0"`
}

type UpdateCellRequest struct {
	CourseID   string `json:"course_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
	TaskTypeID int    `json:"task_type_id" binding:"required"`
	Week       int    `json:"week" binding:"required,min=1,max=12"`
	NewTotal   int    `json:"new_total" binding:"min=0"`
}

type MemberInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
}

type AddMemberRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	SetActive bool   `json:"set_active"`
}

type RenameProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type CreateUserResponse struct {
	User         Profile `json:"user"`
	TempPassword string  `json:"temp_password"`
}

type CreateContactRequest struct {
	FirstName       string  `json:"first_name" binding:"required"`
	LastName        string  `json:"last_name" binding:"required"`
	ClientType      string  `json:"client_type" binding:"required"`
	Temperature     string  `json:"temperature"`
	PipelineNote    string  `json:"pipeline_note"`
	PipelineRevenue float64 `json:"pipeline_revenue"`
}

// UpdateContactRequest carries a partial edit; nil fields are left untouched.
type UpdateContactRequest struct {
	FirstName       *string  `json:"first_name"`
	LastName        *string  `json:"last_name"`
	Temperature     *string  `json:"temperature"`
	PipelineNote    *string  `json:"pipeline_note"`
	PipelineRevenue *float64 `json:"pipeline_revenue"`
}

type SetPipelineRequest struct {
	InPipeline bool `json:"in_pipeline"`
}
