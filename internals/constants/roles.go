package constants

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleEditor  = "editor"
	RoleAdmin   = "admin"
)

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleTeacher,
		RoleEditor,
		RoleAdmin,
	}

	EditorAndAbove = []string{
		RoleEditor,
		RoleAdmin,
	}

	TeacherAndAbove = []string{
		RoleTeacher,
		RoleAdmin,
	}

	StaffRoles = []string{
		RoleTeacher,
		RoleEditor,
		RoleAdmin,
	}
)
