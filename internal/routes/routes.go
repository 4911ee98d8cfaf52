package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shift-scheduler/internal/audit"
	"github.com/BruksfildServices01/shift-scheduler/internal/config"
	"github.com/BruksfildServices01/shift-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/shift-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/shift-scheduler/internal/media"
	"github.com/BruksfildServices01/shift-scheduler/internal/middleware"
	"github.com/BruksfildServices01/shift-scheduler/internal/notify"
	ucNotification "github.com/BruksfildServices01/shift-scheduler/internal/usecase/notification"
	ucShift "github.com/BruksfildServices01/shift-scheduler/internal/usecase/shift"
)

// Deps are the long lived singletons built by main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Audit   *audit.Dispatcher
	Mailer  notify.Mailer
	Mails   ucNotification.Queue
	Marker  notify.Marker
	Storage media.Storage
}

// RegisterRoutes wires every endpoint and returns the notification service so
// the caller can schedule its scans.
func RegisterRoutes(r *gin.Engine, d Deps) *ucNotification.Service {
	cfg := d.Config

	// ======================================================
	// INFRA
	// ======================================================
	shiftRepo := infraRepo.NewShiftGormRepository(d.DB)
	clientRepo := infraRepo.NewClientGormRepository(d.DB)

	notifications := ucNotification.NewService(clientRepo, shiftRepo, d.Mailer, d.Mails, d.Marker)

	// ======================================================
	// SHIFT USE CASES
	// ======================================================
	createShiftUC := ucShift.NewCreateShift(shiftRepo, d.Audit, notifications)
	updateShiftUC := ucShift.NewUpdateShift(shiftRepo, d.Audit)
	updateStatusUC := ucShift.NewUpdateShiftStatus(shiftRepo, d.Audit)
	destroyShiftUC := ucShift.NewDestroyShift(shiftRepo, d.Audit)
	listShiftsUC := ucShift.NewListShifts(shiftRepo)
	reportUC := ucShift.NewMonthlyReport(shiftRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	userHandler := handlers.NewUserHandler(d.DB, cfg.VerifyEmailDomain)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	priceHandler := handlers.NewPriceHandler(d.DB)
	clientHandler := handlers.NewClientHandler(clientRepo, d.Audit, cfg.VerifyEmailDomain)
	urlHandler := handlers.NewUrlHandler(d.DB, d.Storage)
	jobsHandler := handlers.NewJobsHandler(notifications)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	shiftHandler := handlers.NewShiftHandler(
		createShiftUC,
		updateShiftUC,
		updateStatusUC,
		destroyShiftUC,
		listShiftsUC,
		reportUC,
	)

	// ------------------------------
	// PUBLIC
	// ------------------------------
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)

	r.POST("/clients/create", clientHandler.Create)
	r.GET("/clients/birthday", jobsHandler.Birthday)
	r.GET("/shifts/reminders", jobsHandler.Reminders)
	r.GET("/shifts/notify-new", jobsHandler.NotifyNew)

	// ------------------------------
	// SECURED
	// ------------------------------
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/getaccount", authHandler.Account)

		prices := secured.Group("/prices")
		prices.GET("", priceHandler.Index)
		prices.POST("/create", priceHandler.Create)
		prices.POST("/update", priceHandler.Update)

		services := secured.Group("/services")
		services.GET("", serviceHandler.Index)
		services.POST("/create", serviceHandler.Create)
		services.POST("/update", serviceHandler.Update)
		services.POST("/delete", serviceHandler.Destroy)

		clients := secured.Group("/clients")
		clients.GET("", clientHandler.Index)
		clients.POST("/update", clientHandler.Update)
		clients.POST("/delete", clientHandler.Destroy)

		shifts := secured.Group("/shifts")
		shifts.GET("", shiftHandler.Index)
		shifts.POST("/create", shiftHandler.Create)
		shifts.POST("/update", shiftHandler.Update)
		shifts.POST("/delete", shiftHandler.Destroy)
		shifts.POST("/updateStatus", shiftHandler.UpdateStatus)
		shifts.GET("/reports", shiftHandler.Reports)

		users := secured.Group("/users")
		users.GET("", userHandler.Index)
		users.POST("/create", userHandler.Create)
		users.GET("/getShiftToUsers", userHandler.ShiftSummary)

		urls := secured.Group("/urls")
		urls.GET("", urlHandler.Index)
		urls.POST("/create", urlHandler.Create)
		urls.POST("/update", urlHandler.Update)
		urls.POST("/upload", urlHandler.Upload)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}

	return notifications
}
