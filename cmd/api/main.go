package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/budgetwise/budget-service/internal/blacklist"
	"github.com/budgetwise/budget-service/internal/config"
	"github.com/budgetwise/budget-service/internal/handler"
	"github.com/budgetwise/budget-service/internal/integrations/advisor"
	"github.com/budgetwise/budget-service/internal/middleware"
	"github.com/budgetwise/budget-service/internal/report"
	"github.com/budgetwise/budget-service/internal/repository"
	"github.com/budgetwise/budget-service/internal/service"
	"github.com/budgetwise/budget-service/internal/utils/email"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize token blacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatalf("Failed to ping redis: %v", err)
	}
	tokenBlacklist := blacklist.New(redisClient)

	// Initialize layers
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, tokenBlacklist, logger, cfg)
	advisorClient := advisor.NewClient(cfg, logger)
	h := handler.NewHandler(svc, advisorClient, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))

	// Public routes
	r.HandleFunc("/api/auth/signup", h.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg, tokenBlacklist))
	authRouter.HandleFunc("/auth/signout", h.SignOut).Methods("POST")
	authRouter.HandleFunc("/user-details", h.UserDetails).Methods("GET")
	authRouter.HandleFunc("/profile/add-profile", h.AddProfile).Methods("POST")
	authRouter.HandleFunc("/profile/get-profile", h.GetProfile).Methods("GET")
	authRouter.HandleFunc("/profile/check-profile", h.CheckProfile).Methods("GET")
	authRouter.HandleFunc("/transaction/add", h.AddTransaction).Methods("POST")
	authRouter.HandleFunc("/transaction/list", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transaction/update/{id}", h.UpdateTransaction).Methods("PUT")
	authRouter.HandleFunc("/transaction/delete/{id}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/transaction/monthly", h.MonthlyView).Methods("GET")
	authRouter.HandleFunc("/transaction/set-starting-balance", h.SetStartingBalance).Methods("POST")
	authRouter.HandleFunc("/transaction/set-budgets", h.SetBudgets).Methods("POST")
	authRouter.HandleFunc("/transaction/spending-trends", h.SpendingTrends).Methods("GET")
	authRouter.HandleFunc("/transaction/report/pdf", h.ReportPDF).Methods("GET")
	authRouter.HandleFunc("/transaction/report/xml", h.ReportXML).Methods("GET")
	authRouter.HandleFunc("/saving-goals", h.ListSavingGoals).Methods("GET")
	authRouter.HandleFunc("/saving-goals", h.CreateSavingGoal).Methods("POST")
	authRouter.HandleFunc("/saving-goals/{id}", h.UpdateSavingGoal).Methods("PUT")
	authRouter.HandleFunc("/saving-goals/{id}", h.DeleteSavingGoal).Methods("DELETE")
	authRouter.HandleFunc("/ai/chat", h.Chat).Methods("POST")

	// Monthly report mailer
	scheduler := cron.New()
	if cfg.ReportMailEnabled {
		mailer := report.NewMailer(svc, email.NewSender(cfg, logger), logger)
		if _, err := scheduler.AddFunc(cfg.ReportMailSchedule, func() {
			mailer.SendMonthlyReports(context.Background())
		}); err != nil {
			logger.Fatalf("Failed to schedule report mailer: %v", err)
		}
		scheduler.Start()
		logger.Infof("Report mailer scheduled: %s", cfg.ReportMailSchedule)
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
