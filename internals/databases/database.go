package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kampusku_backend/internals/configs"
	allocModel "kampusku_backend/internals/features/academics/allocations/model"
	labModel "kampusku_backend/internals/features/academics/labs/model"
	roomModel "kampusku_backend/internals/features/academics/rooms/model"
	subjectModel "kampusku_backend/internals/features/academics/subjects/model"
	ttModel "kampusku_backend/internals/features/academics/timetable/model"
	attModel "kampusku_backend/internals/features/teaching/attendance/model"
	classModel "kampusku_backend/internals/features/teaching/classes/model"
	sessionModel "kampusku_backend/internals/features/teaching/sessions/model"
	studentModel "kampusku_backend/internals/features/teaching/students/model"
	userModel "kampusku_backend/internals/features/users/auth/model"
)

var DB *gorm.DB

func ConnectDB() {
	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kampusku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] DB connect failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Migrate() {
	if err := MigrateWith(DB); err != nil {
		log.Fatalf("[ERROR] migrate failed: %v", err)
	}
	log.Println("[INFO] migrations applied")
}

// MigrateWith runs AutoMigrate for every table; also used by the test suites
// against their own DB handle.
func MigrateWith(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&roomModel.RoomModel{},
		&subjectModel.SubjectModel{},
		&allocModel.AllocationModel{},
		&ttModel.TimetableEntryModel{},
		&ttModel.TimetableTimingModel{},
		&labModel.LabEntryModel{},
		&classModel.TeacherClassModel{},
		&studentModel.StudentModel{},
		&studentModel.ClassStudentModel{},
		&sessionModel.ClassSessionModel{},
		&attModel.AttendanceRecordModel{},
	)
}
