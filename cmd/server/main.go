package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"coachtrack/internal/config"
	"coachtrack/internal/handler"
	"coachtrack/internal/logger"
	"coachtrack/internal/middleware"
	"coachtrack/internal/service"
	"coachtrack/internal/store"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)
	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	st := store.New(db)
	tokens := middleware.NewAuth(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	authSvc := service.NewAuthService(st, cfg.Auth.SuperadminEmails)
	dashSvc := service.NewDashboardService(st)
	adminSvc := service.NewAdminService(st)
	memberSvc := service.NewMembershipService(st)
	contactsSvc := service.NewContactsService(st)

	authH := handler.NewAuthHandler(authSvc, tokens)
	dashH := handler.NewDashboardHandler(dashSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	superH := handler.NewSuperadminHandler(memberSvc)
	contactsH := handler.NewContactsHandler(contactsSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/login", authH.Login)

	api := r.Group("/api", tokens.Middleware())
	api.GET("/me", authH.Me)
	api.GET("/courses", dashH.Courses)
	api.GET("/dashboard/overview", dashH.Overview)
	api.GET("/dashboard/trend", dashH.Trend)
	api.PUT("/dashboard/week", dashH.UpdateWeek)

	api.GET("/contacts", contactsH.List)
	api.POST("/contacts", contactsH.Create)
	api.PUT("/contacts/:id", contactsH.Update)
	api.PUT("/contacts/:id/pipeline", contactsH.SetPipeline)
	api.DELETE("/contacts/:id", contactsH.Delete)

	admin := api.Group("/admin", middleware.RequireRole("admin", service.RoleSuperadmin))
	admin.GET("/grid", adminH.Grid)
	admin.PUT("/grid/cell", adminH.UpdateCell)
	admin.GET("/grid/export", adminH.Export)

	super := api.Group("/superadmin", middleware.RequireRole(service.RoleSuperadmin))
	super.GET("/profiles", superH.Profiles)
	super.PUT("/profiles/:id", superH.Rename)
	super.POST("/users", superH.CreateUser)
	super.GET("/courses/:id/members", superH.Members)
	super.POST("/courses/:id/members", superH.AddMember)
	super.PUT("/courses/:id/members/:userID", superH.SetMemberActive)

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
