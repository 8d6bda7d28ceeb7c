// Package policy adalah Access Policy Engine: fungsi murni dari
// (ActorContext, Action, Resource) → Decision. Tidak menyentuh DB, tidak
// baca state global — semua input dioper eksplisit supaya bisa dites sendiri.
package policy

import (
	"github.com/google/uuid"

	"escuelasegura_backend/internals/constants"
)

// ActorContext dibangun sekali per request dari klaim JWT oleh middleware,
// lalu dioper eksplisit ke setiap pemanggilan policy dan query.
type ActorContext struct {
	Authenticated bool
	UserID        uuid.UUID
	Role          string
	SchoolID      uuid.UUID
	Grade         string
}

type Action string

const (
	ActionViewDashboard      Action = "view_dashboard"
	ActionViewDirectorPanel  Action = "view_director_panel"
	ActionCreatePanicAlert   Action = "create_panic_alert"
	ActionViewPanicAlerts    Action = "view_panic_alerts"
	ActionAttendPanicAlert   Action = "attend_panic_alert"
	ActionCreateReport       Action = "create_report"
	ActionViewReport         Action = "view_report"
	ActionChangeReportStatus Action = "change_report_status"
	ActionCreateIncident     Action = "create_incident"
	ActionViewStudentRecord  Action = "view_student_record"
	ActionLinkParentStudent  Action = "link_parent_student"
	ActionCreateTask         Action = "create_task"
	ActionViewTask           Action = "view_task"
	ActionSubmitTask         Action = "submit_task"
	ActionGradeSubmission    Action = "grade_submission"
	ActionViewNotifications  Action = "view_notifications"
	ActionCreateSchool       Action = "create_school"
)

// Resource membawa atribut baris yang relevan untuk cek tenant & ownership.
// nil berarti cek level route saja (belum ada baris spesifik).
type Resource struct {
	SchoolID uuid.UUID
	// OwnerID: pemilik baris menurut entitasnya (reporter_id untuk report,
	// student_id untuk alert/submission, recipient_id untuk notification).
	OwnerID   uuid.UUID
	Anonymous bool
}

type Decision struct {
	Allowed bool
	Reason  string
	// RedirectTo: setiap Deny membawa target redirect — pelanggaran policy
	// diperlakukan sebagai routing event, bukan exception.
	RedirectTo string
}

const (
	RedirectLogin     = "/login"
	RedirectDashboard = "/inicio"
	RedirectReports   = "/reportes"
	RedirectTasks     = "/tareas"
)

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason, redirectTo string) Decision {
	if redirectTo == "" {
		redirectTo = RedirectDashboard
	}
	return Decision{Allowed: false, Reason: reason, RedirectTo: redirectTo}
}

// roleGates: action → role yang diizinkan (rule 3 — role-gated routes).
// Action yang tidak ada di sini terbuka untuk semua role ter-autentikasi
// dan diserahkan ke cek tenant/ownership di bawahnya.
var roleGates = map[Action][]string{
	ActionCreatePanicAlert:   constants.StudentOnly,
	ActionViewPanicAlerts:    constants.StaffRoles,
	ActionAttendPanicAlert:   constants.StaffRoles,
	ActionViewDirectorPanel:  constants.DirectorOnly,
	ActionCreateReport:       constants.StudentOnly,
	ActionChangeReportStatus: constants.StaffRoles,
	ActionCreateIncident:     constants.StaffRoles,
	ActionViewStudentRecord:  constants.RecordViewerRoles,
	ActionLinkParentStudent:  constants.DirectorOnly,
	ActionCreateTask:         constants.TeacherOnly,
	ActionSubmitTask:         constants.StudentOnly,
	ActionGradeSubmission:    constants.StaffRoles,
	ActionCreateSchool:       constants.DirectorOnly,
}

// redirectForWrongRole: role salah diarahkan ke list view resource-nya,
// sisanya ke dashboard.
var wrongRoleRedirects = map[Action]string{
	ActionCreateReport: RedirectReports,
	ActionCreateTask:   RedirectTasks,
	ActionSubmitTask:   RedirectTasks,
}

// Authorize mengevaluasi rule berurutan; match pertama menang:
//  1. actor belum login → Deny + redirect login
//  2. role gate per action
//  3. tenant scope (resource.school_id vs actor.school_id)
//  4. ownership scope per action
//  5. default Allow untuk action read yang sudah lolos scope
func Authorize(actor ActorContext, action Action, res *Resource) Decision {
	if !actor.Authenticated {
		return Deny("unauthenticated", RedirectLogin)
	}

	if allowed, gated := roleGates[action]; gated {
		if !roleIn(actor.Role, allowed) {
			return Deny("role "+actor.Role+" not allowed for "+string(action), wrongRoleRedirects[action])
		}
	}

	if res != nil {
		// Rule 4 — tenant scope. Notification tidak membawa school_id,
		// pemiliknya dicek lewat OwnerID di bawah.
		if res.SchoolID != uuid.Nil && res.SchoolID != actor.SchoolID {
			return Deny("resource outside actor school", "")
		}

		switch action {
		case ActionCreatePanicAlert, ActionSubmitTask:
			// Self-only: student hanya boleh membuat untuk dirinya sendiri.
			if res.OwnerID != actor.UserID {
				return Deny("self-only creation", "")
			}
		case ActionViewReport:
			// Student hanya baris miliknya; report anonim tidak punya
			// reporter_id, jadi student tidak bisa mengambilnya kembali
			// (trade-off model anonimitas). Staff bebas dalam tenant.
			if actor.Role == constants.RoleStudent {
				if res.Anonymous || res.OwnerID != actor.UserID {
					return Deny("report not owned by student", RedirectReports)
				}
			} else if !constants.IsStaffRole(actor.Role) {
				return Deny("role "+actor.Role+" cannot read reports", "")
			}
		case ActionViewNotifications:
			if res.OwnerID != actor.UserID {
				return Deny("notification belongs to another recipient", "")
			}
		}
	}

	return Allow()
}

func roleIn(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// ===================== Public routes =====================

// Rule 1 — route publik (home, login, register, auth callback).
var publicPaths = map[string]struct{}{
	"/":              {},
	"/health":        {},
	"/login":         {},
	"/register":      {},
	"/auth/callback": {},
}

func IsPublicPath(path string) bool {
	_, ok := publicPaths[path]
	return ok
}

// AuthPageRedirect: actor yang sudah login membuka login/register → redirect
// idempoten ke dashboard, bukan error.
func AuthPageRedirect(actor ActorContext, path string) (string, bool) {
	if actor.Authenticated && (path == "/login" || path == "/register") {
		return RedirectDashboard, true
	}
	return "", false
}
