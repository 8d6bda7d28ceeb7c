package constants

import "fmt"

// Role adalah wire contract — nilai string ini dipakai di token, kolom DB,
// dan response. Rename = breaking change.
const (
	RoleStudent  = "student"
	RoleParent   = "parent"
	RoleTeacher  = "teacher"
	RoleDirector = "director"
)

// Template pesan error role
const (
	ErrOnlyStudentsCanAccess = "Hanya student yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess    = "Hanya teacher atau director yang boleh mengakses fitur %s."
	ErrOnlyDirectorCanAccess = "Hanya director yang boleh mengakses fitur %s."
	ErrOnlyTeachersCanAccess = "Hanya teacher yang boleh mengakses fitur %s."
)

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorDirector(feature string) string {
	return fmt.Sprintf(ErrOnlyDirectorCanAccess, feature)
}

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleParent,
		RoleTeacher,
		RoleDirector,
	}

	// Staff = teacher + director (lihat GLOSSARY produk)
	StaffRoles = []string{
		RoleTeacher,
		RoleDirector,
	}

	// Roles yang boleh membuka expediente (student record view).
	// Student sengaja TIDAK termasuk.
	RecordViewerRoles = []string{
		RoleTeacher,
		RoleDirector,
		RoleParent,
	}

	DirectorOnly = []string{
		RoleDirector,
	}

	TeacherOnly = []string{
		RoleTeacher,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsStaffRole(role string) bool {
	return role == RoleTeacher || role == RoleDirector
}
