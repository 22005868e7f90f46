package model

import "time"

type Profile struct {
	ID           string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Username     string    `gorm:"uniqueIndex" json:"username"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `gorm:"default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Course struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	StartDate time.Time `gorm:"type:date" json:"start_date"`
	Weeks     int       `gorm:"default:12" json:"weeks"`
}

type CourseMember struct {
	CourseID string `gorm:"primaryKey;type:char(36)" json:"course_id"`
	UserID   string `gorm:"primaryKey;type:char(36)" json:"user_id"`
	IsActive bool   `json:"is_active"`
}

type TaskType struct {
	ID            int     `gorm:"primaryKey;column:task_type_id" json:"task_type_id"`
	Name          string  `gorm:"uniqueIndex" json:"name"`
	Label         string  `json:"label"`
	MinimalAmount float64 `json:"minimal_amount"`
}

type TaskLog struct {
	ID         int       `gorm:"primaryKey;column:task_log_id" json:"task_log_id"`
	UserID     string    `gorm:"type:char(36);index:idx_user_course" json:"user_id"`
	CourseID   string    `gorm:"type:char(36);index:idx_user_course" json:"course_id"`
	TaskTypeID int       `json:"task_type_id"`
	Amount     int       `json:"amount"`
	Source     string    `gorm:"default:manual" json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

type Client struct {
	ID              string    `gorm:"primaryKey;column:client_id;type:char(36)" json:"client_id"`
	OwnerID         string    `gorm:"type:char(36);index" json:"owner_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ClientType      string    `gorm:"index" json:"client_type"`
	Temperature     string    `json:"temperature"`
	PipelineNote    string    `json:"pipeline_note"`
	PipelineRevenue float64   `json:"pipeline_revenue"`
	CreatedAt       time.Time `json:"created_at"`
}

type Sale struct {
	ID       int       `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"type:char(36);index" json:"user_id"`
	Amount   float64   `json:"amount"`
	ClosedAt time.Time `gorm:"type:date" json:"closed_at"`
}

func (Profile) TableName() string      { return "profiles" }
func (Course) TableName() string       { return "courses" }
func (CourseMember) TableName() string { return "user_courses" }
func (TaskType) TableName() string     { return "task_types" }
func (TaskLog) TableName() string      { return "task_logs" }
func (Client) TableName() string       { return "clients" }
func (Sale) TableName() string         { return "sales" }
