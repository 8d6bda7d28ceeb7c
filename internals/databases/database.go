package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	taskModel "escuelasegura_backend/internals/features/academic/tasks/model"
	notifModel "escuelasegura_backend/internals/features/home/notifications/model"
	alertModel "escuelasegura_backend/internals/features/safety/alerts/model"
	incidentModel "escuelasegura_backend/internals/features/safety/incidents/model"
	reportModel "escuelasegura_backend/internals/features/safety/reports/model"
	schoolModel "escuelasegura_backend/internals/features/schools/school/model"
	userModel "escuelasegura_backend/internals/features/users/auth/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=escuelasegura&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // aman di belakang PgBouncer
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal koneksi ke PostgreSQL:\n%v", err)
	}

	DB = db
	log.Println("✅ Berhasil konek ke PostgreSQL!")

	if err := Migrate(DB); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
}

// Migrate dipisah supaya bisa dipakai test (sqlite) dan boot (postgres).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schoolModel.SchoolModel{},
		&userModel.UserModel{},
		&profileModel.ProfileModel{},
		&profileModel.ParentStudentModel{},
		&reportModel.ReportModel{},
		&alertModel.PanicAlertModel{},
		&incidentModel.IncidentModel{},
		&taskModel.TaskModel{},
		&taskModel.TaskSubmissionModel{},
		&notifModel.NotificationModel{},
	)
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARNING] Gagal ambil sql.DB untuk tuning pool: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
