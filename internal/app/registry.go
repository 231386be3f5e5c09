package app

import (
	"go-volunteer/internal/attendance"
	"go-volunteer/internal/attendancetoken"
	"go-volunteer/internal/config"
	"go-volunteer/internal/event"
	"go-volunteer/internal/exceptionrequest"
	"go-volunteer/internal/feedback"
	"go-volunteer/internal/messaging/kafka"
	"go-volunteer/internal/notification"
	"go-volunteer/internal/rbac"
	"go-volunteer/internal/rbac/infra"
	"go-volunteer/internal/scheduler"
	"go-volunteer/internal/shared/audit"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	inf *Infra,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(inf.GormDB)
	eventRepo := event.NewRepository(inf.GormDB)
	notificationRepo := notification.NewRepository(inf.GormDB)
	outboxRepo := kafka.NewOutboxRepository(inf.SQLDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, cfg.RBAC.PrivilegedRoles, logger)
	if err != nil {
		return err
	}

	// --- Shared collaborators ---
	eventLookup := event.NewLookup(eventRepo, inf.Redis, 0, logger)
	notifier := notification.NewOutboxNotifier(outboxRepo, cfg.Kafka.NotificationTopic, logger)
	auditLogger := audit.NewStdoutLogger(logger)

	// --- Services ---
	attendanceService := attendance.NewService(attendance.Dependencies{
		DB:       inf.SQLDB,
		Repo:     attendanceRepo,
		Events:   eventLookup,
		Access:   rbacService,
		Tokens:   attendancetoken.NewCodec(cfg.Attendance.TokenSecret, cfg.Attendance.TokenTTL),
		Guard:    attendance.NewRedisScanGuard(inf.Redis, cfg.Attendance.ScanDedupeTTL, logger),
		Notifier: notifier,
		Windows: attendance.Windows{
			CheckInLead:   cfg.Attendance.CheckInLead,
			CheckOutGrace: cfg.Attendance.CheckOutGrace,
		},
	}, logger)
	feedbackService := feedback.NewService(feedback.Dependencies{
		DB:            inf.SQLDB,
		Repo:          attendanceRepo,
		Events:        eventLookup,
		Access:        rbacService,
		Notifier:      notifier,
		Audit:         auditLogger,
		CommentMaxLen: cfg.Feedback.CommentMaxLen,
	}, logger)
	exceptionService := exceptionrequest.NewService(exceptionrequest.Dependencies{
		DB:       inf.SQLDB,
		Repo:     attendanceRepo,
		Events:   eventLookup,
		Access:   rbacService,
		Notifier: notifier,
		Audit:    auditLogger,
	}, logger)
	schedulerService := scheduler.NewService(scheduler.Dependencies{
		Repo:           attendanceRepo,
		Events:         eventLookup,
		Notifier:       notifier,
		Metrics:        scheduler.NewMetrics(prometheus.DefaultRegisterer),
		ReminderWindow: cfg.Scheduler.ReminderWindow,
	}, logger)
	notificationService := notification.NewService(notificationRepo, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, inf.Redis, logger)
	feedbackHandler := feedback.NewHandler(feedbackService, logger)
	exceptionHandler := exceptionrequest.NewHandler(exceptionService, logger)
	schedulerHandler := scheduler.NewHandler(schedulerService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)

	// --- Routes Registration ---
	jwtSecret := cfg.Auth.JWTSecret
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, inf.Redis, jwtSecret)
		feedback.RegisterRoutes(api, feedbackHandler, jwtSecret)
		exceptionrequest.RegisterRoutes(api, exceptionHandler, jwtSecret)
		scheduler.RegisterRoutes(api, schedulerHandler, rbacService, jwtSecret)
		notification.RegisterRoutes(api, notificationHandler, jwtSecret)
	}

	return nil
}
