package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"coachtrack/internal/config"
	"coachtrack/internal/logger"
	"coachtrack/internal/model"
	"coachtrack/internal/store"
)

// Reference data a fresh install needs: the six task types with their
// weekly quotas, one course starting today, and an admin account.
var taskTypes = []model.TaskType{
	{ID: 1, Name: "asks", Label: "Asks", MinimalAmount: 70},
	{ID: 2, Name: "follow_ups", Label: "Follow Ups", MinimalAmount: 50},
	{ID: 3, Name: "open_houses", Label: "Open Houses", MinimalAmount: 3},
	{ID: 4, Name: "handwritten_cards", Label: "Handwritten Cards", MinimalAmount: 20},
	{ID: 5, Name: "action_promises", Label: "Action Promises", MinimalAmount: 20},
	{ID: 6, Name: "exercises", Label: "Exercises", MinimalAmount: 5},
}

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	adminEmail := flag.String("admin-email", "admin@coachtrack.local", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password (required)")
	flag.Parse()

	if *adminPassword == "" {
		log.Fatal("-admin-password is required")
	}

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal("db connect failed: ", err)
	}

	ctx := context.Background()
	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		log.Fatal("migrate failed: ", err)
	}
	logger.Info("schema ready")

	for _, t := range taskTypes {
		if err := db.WithContext(ctx).Save(&t).Error; err != nil {
			log.Fatal("seed task types failed: ", err)
		}
	}
	logger.Info("task types seeded", "count", len(taskTypes))

	if _, err := st.LatestCourse(ctx); err == store.ErrNotFound {
		course := model.Course{
			ID:        uuid.NewString(),
			StartDate: time.Now().Truncate(24 * time.Hour),
			Weeks:     model.CourseWeeks,
		}
		if err := db.WithContext(ctx).Create(&course).Error; err != nil {
			log.Fatal("seed course failed: ", err)
		}
		logger.Info("course created", "id", course.ID, "start", course.StartDate.Format("2006-01-02"))
	}

	if _, err := st.ProfileByLogin(ctx, *adminEmail); err == store.ErrNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hash password failed: ", err)
		}
		admin := model.Profile{
			ID:           uuid.NewString(),
			Username:     "admin",
			Email:        *adminEmail,
			PasswordHash: string(hash),
			FirstName:    "Course",
			LastName:     "Admin",
			Role:         "admin",
			CreatedAt:    time.Now(),
		}
		if err := st.CreateProfile(ctx, &admin); err != nil {
			log.Fatal("seed admin failed: ", err)
		}
		logger.Info("admin created", "email", admin.Email)
	}

	logger.Info("=== all done ===")
}
