// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kampusku_backend/internals/constants"
	allocationController "kampusku_backend/internals/features/academics/allocations/controller"
	labController "kampusku_backend/internals/features/academics/labs/controller"
	roomController "kampusku_backend/internals/features/academics/rooms/controller"
	subjectController "kampusku_backend/internals/features/academics/subjects/controller"
	timetableController "kampusku_backend/internals/features/academics/timetable/controller"
	reportController "kampusku_backend/internals/features/reports/controller"
	attendanceController "kampusku_backend/internals/features/teaching/attendance/controller"
	classController "kampusku_backend/internals/features/teaching/classes/controller"
	sessionController "kampusku_backend/internals/features/teaching/sessions/controller"
	studentController "kampusku_backend/internals/features/teaching/students/controller"
	authController "kampusku_backend/internals/features/users/auth/controller"
	"kampusku_backend/internals/middlewares"
	authMw "kampusku_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every feature group:
//
//	/api/auth — login and account endpoints
//	/api/a    — scheduling surface (editor and admin)
//	/api/t    — teaching surface (teacher and admin)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	validate := validator.New()

	authCtl := authController.NewAuthController(db, validate)
	roomCtl := roomController.NewRoomController(db, validate)
	subjectCtl := subjectController.NewSubjectController(db, validate)
	allocationCtl := allocationController.NewAllocationController(db, validate)
	timetableCtl := timetableController.NewTimetableController(db, validate)
	importCtl := timetableController.NewImportController(db, validate)
	labCtl := labController.NewLabEntryController(db, validate)
	classCtl := classController.NewTeacherClassController(db, validate)
	sessionCtl := sessionController.NewClassSessionController(db, validate)
	attendanceCtl := attendanceController.NewAttendanceController(db, validate)
	studentCtl := studentController.NewStudentController(db, validate)
	reportCtl := reportController.NewReportController(db, validate)

	api := app.Group("/api")

	/* ===================== AUTH ===================== */
	log.Println("[INFO] Setting up auth routes...")
	auth := api.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtl.Login)
	auth.Post("/google", middlewares.LoginRateLimiter(), authCtl.LoginGoogle)
	auth.Post("/logout", authCtl.Logout)
	auth.Get("/me", authMw.AuthMiddleware(), authCtl.Me)
	auth.Post("/register", authMw.AuthMiddleware(), authMw.RequireRoles(constants.RoleAdmin), authCtl.Register)

	/* ===================== SCHEDULING (editor) ===================== */
	log.Println("[INFO] Setting up scheduling routes...")
	a := api.Group("/a", authMw.AuthMiddleware(), authMw.RequireRoles(constants.EditorAndAbove...))

	rooms := a.Group("/rooms")
	rooms.Get("/", roomCtl.List)
	rooms.Post("/", roomCtl.Create)
	rooms.Get("/:id", roomCtl.GetByID)
	rooms.Patch("/:id", roomCtl.Update)
	rooms.Delete("/:id", roomCtl.Delete)

	subjects := a.Group("/subjects")
	subjects.Get("/", subjectCtl.List)
	subjects.Post("/", subjectCtl.Create)
	subjects.Get("/:id", subjectCtl.GetByID)
	subjects.Patch("/:id", subjectCtl.Update)
	subjects.Delete("/:id", subjectCtl.Delete)

	allocations := a.Group("/allocations")
	allocations.Get("/", allocationCtl.List)
	allocations.Post("/", allocationCtl.Create)
	allocations.Get("/:id", allocationCtl.GetByID)
	allocations.Delete("/:id", allocationCtl.Delete)

	timetable := a.Group("/timetable")
	timetable.Get("/", timetableCtl.List)
	timetable.Post("/", timetableCtl.Create)
	timetable.Post("/direct", timetableCtl.CreateDirect)
	timetable.Delete("/:id", timetableCtl.Delete)
	timetable.Delete("/:id/timings/:timingId", timetableCtl.DeleteTiming)
	timetable.Get("/export", reportCtl.TimetableExport)

	labs := a.Group("/labs")
	labs.Get("/", labCtl.List)
	labs.Post("/", labCtl.Create)
	labs.Delete("/:id", labCtl.Delete)

	a.Post("/editor/import", importCtl.Import)

	/* ===================== TEACHING (teacher) ===================== */
	log.Println("[INFO] Setting up teaching routes...")
	t := api.Group("/t", authMw.AuthMiddleware(), authMw.RequireRoles(constants.TeacherAndAbove...))

	classes := t.Group("/classes")
	classes.Get("/", classCtl.List)
	classes.Post("/", classCtl.Create)
	classes.Get("/:id", classCtl.GetByID)
	classes.Patch("/:id", classCtl.Update)
	classes.Delete("/:id", classCtl.Delete)
	classes.Post("/:id/students", classCtl.EnrollStudent)
	classes.Get("/:id/students", classCtl.ListStudents)
	classes.Delete("/:id/students/:studentId", classCtl.UnenrollStudent)
	classes.Get("/:id/report", reportCtl.AttendanceReport)

	sessions := t.Group("/sessions")
	sessions.Get("/", sessionCtl.List)
	sessions.Post("/", sessionCtl.Create)
	sessions.Get("/:id", sessionCtl.GetByID)
	sessions.Patch("/:id", sessionCtl.Update)
	sessions.Delete("/:id", sessionCtl.Delete)
	sessions.Get("/:id/students", attendanceCtl.Roster)
	sessions.Patch("/:id/attendance", attendanceCtl.Mark)
	sessions.Post("/:id/attendance", attendanceCtl.Replace)

	students := t.Group("/students")
	students.Get("/", studentCtl.List)
	students.Post("/", studentCtl.Create)
	students.Patch("/:id", studentCtl.Update)
	students.Delete("/:id", studentCtl.Delete)

	// Timetable and lab schedules are readable from the teaching side too.
	t.Get("/timetable", timetableCtl.List)
	t.Get("/labs", labCtl.List)
}
