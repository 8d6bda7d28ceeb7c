package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskRoute "escuelasegura_backend/internals/features/academic/tasks/route"
	dashboardRoute "escuelasegura_backend/internals/features/home/dashboard/route"
	notificationRoute "escuelasegura_backend/internals/features/home/notifications/route"
	alertRoute "escuelasegura_backend/internals/features/safety/alerts/route"
	incidentRoute "escuelasegura_backend/internals/features/safety/incidents/route"
	reportRoute "escuelasegura_backend/internals/features/safety/reports/route"
	schoolRoute "escuelasegura_backend/internals/features/schools/school/route"
	authRoute "escuelasegura_backend/internals/features/users/auth/route"
	profileRoute "escuelasegura_backend/internals/features/users/profile/route"
	authMiddleware "escuelasegura_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	secret := os.Getenv("JWT_SECRET")

	// ===================== PUBLIC =====================
	// Halaman /login dan /register pakai JWT opsional: kalau token valid
	// actor ter-hydrate dan AuthPage bisa redirect idempoten ke home role.
	log.Println("[INFO] Setting up PUBLIC routes...")
	public := app.Group("/", authMiddleware.OptionalAuthJWT(secret))
	authRoute.AuthPublicRoutes(public, db)
	schoolRoute.SchoolPublicRoutes(public, db)

	// ===================== PRIVATE (USER) =====================
	// Semua role yang sudah login; row-level check di controller/policy.
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              secret,
			AllowCookieFallback: true,
		}),
	)
	authRoute.AuthUserRoutes(user, db)
	dashboardRoute.DashboardUserRoutes(user, db)
	notificationRoute.NotificationUserRoutes(user, db)
	reportRoute.ReportUserRoutes(user, db)
	alertRoute.PanicAlertUserRoutes(user, db)
	incidentRoute.IncidentUserRoutes(user, db)
	taskRoute.TaskUserRoutes(user, db)
	profileRoute.StudentRecordUserRoutes(user, db)

	// ===================== STAFF =====================
	// Gate per-route lewat RequireAction (teacher/director sesuai action).
	log.Println("[INFO] Setting up STAFF group...")
	staff := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              secret,
			AllowCookieFallback: true,
		}),
	)
	dashboardRoute.DashboardStaffRoutes(staff, db)
	reportRoute.ReportStaffRoutes(staff, db)
	alertRoute.PanicAlertStaffRoutes(staff, db)
	incidentRoute.IncidentStaffRoutes(staff, db)
	taskRoute.TaskStaffRoutes(staff, db)
	profileRoute.StudentRecordStaffRoutes(staff, db)
	schoolRoute.SchoolStaffRoutes(staff, db)
}
