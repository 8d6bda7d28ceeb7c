package policy

import (
	"testing"

	"github.com/google/uuid"

	"escuelasegura_backend/internals/constants"
)

func actorWithRole(role string) ActorContext {
	return ActorContext{
		Authenticated: true,
		UserID:        uuid.New(),
		Role:          role,
		SchoolID:      uuid.New(),
		Grade:         "3A",
	}
}

func TestUnauthenticatedAlwaysRedirectsToLogin(t *testing.T) {
	actions := []Action{
		ActionViewDashboard, ActionCreatePanicAlert, ActionViewPanicAlerts,
		ActionAttendPanicAlert, ActionViewDirectorPanel, ActionCreateReport,
		ActionViewReport, ActionChangeReportStatus, ActionCreateIncident,
		ActionViewStudentRecord, ActionLinkParentStudent, ActionCreateTask,
		ActionViewTask, ActionSubmitTask, ActionGradeSubmission,
		ActionViewNotifications, ActionCreateSchool,
	}
	anon := ActorContext{}
	for _, action := range actions {
		d := Authorize(anon, action, nil)
		if d.Allowed {
			t.Fatalf("action %s: expected deny for unauthenticated actor", action)
		}
		if d.RedirectTo != RedirectLogin {
			t.Fatalf("action %s: redirect = %q, want %q", action, d.RedirectTo, RedirectLogin)
		}
	}
}

func TestTenantIsolation(t *testing.T) {
	// Semua action yang menerima resource harus menolak baris sekolah lain,
	// berapapun role actor-nya.
	cases := []struct {
		action Action
		role   string
	}{
		{ActionViewPanicAlerts, constants.RoleTeacher},
		{ActionAttendPanicAlert, constants.RoleDirector},
		{ActionViewReport, constants.RoleTeacher},
		{ActionChangeReportStatus, constants.RoleDirector},
		{ActionCreateIncident, constants.RoleTeacher},
		{ActionViewStudentRecord, constants.RoleDirector},
		{ActionViewTask, constants.RoleStudent},
		{ActionGradeSubmission, constants.RoleTeacher},
	}
	for _, tc := range cases {
		actor := actorWithRole(tc.role)
		res := &Resource{SchoolID: uuid.New(), OwnerID: actor.UserID}
		d := Authorize(actor, tc.action, res)
		if d.Allowed {
			t.Fatalf("action %s role %s: cross-school resource must be denied", tc.action, tc.role)
		}
		if d.RedirectTo == "" {
			t.Fatalf("action %s: deny must carry a redirect target", tc.action)
		}
	}
}

func TestSameSchoolResourceAllowedForStaff(t *testing.T) {
	actor := actorWithRole(constants.RoleTeacher)
	res := &Resource{SchoolID: actor.SchoolID}
	if d := Authorize(actor, ActionViewReport, res); !d.Allowed {
		t.Fatalf("teacher reading report in own school denied: %s", d.Reason)
	}
}

func TestPanicAlertSelfOnly(t *testing.T) {
	actor := actorWithRole(constants.RoleStudent)

	own := &Resource{SchoolID: actor.SchoolID, OwnerID: actor.UserID}
	if d := Authorize(actor, ActionCreatePanicAlert, own); !d.Allowed {
		t.Fatalf("student creating own alert denied: %s", d.Reason)
	}

	other := &Resource{SchoolID: actor.SchoolID, OwnerID: uuid.New()}
	if d := Authorize(actor, ActionCreatePanicAlert, other); d.Allowed {
		t.Fatal("student must not create alert for another student")
	}
}

func TestRoleGates(t *testing.T) {
	cases := []struct {
		action  Action
		allowed []string
	}{
		{ActionCreatePanicAlert, []string{constants.RoleStudent}},
		{ActionCreateReport, []string{constants.RoleStudent}},
		{ActionSubmitTask, []string{constants.RoleStudent}},
		{ActionViewPanicAlerts, []string{constants.RoleTeacher, constants.RoleDirector}},
		{ActionAttendPanicAlert, []string{constants.RoleTeacher, constants.RoleDirector}},
		{ActionChangeReportStatus, []string{constants.RoleTeacher, constants.RoleDirector}},
		{ActionCreateIncident, []string{constants.RoleTeacher, constants.RoleDirector}},
		{ActionGradeSubmission, []string{constants.RoleTeacher, constants.RoleDirector}},
		{ActionCreateTask, []string{constants.RoleTeacher}},
		{ActionViewDirectorPanel, []string{constants.RoleDirector}},
		{ActionLinkParentStudent, []string{constants.RoleDirector}},
		{ActionCreateSchool, []string{constants.RoleDirector}},
		{ActionViewStudentRecord, []string{constants.RoleParent, constants.RoleTeacher, constants.RoleDirector}},
	}
	for _, tc := range cases {
		for _, role := range constants.AllRoles {
			actor := actorWithRole(role)
			d := Authorize(actor, tc.action, nil)
			want := roleIn(role, tc.allowed)
			if d.Allowed != want {
				t.Fatalf("action %s role %s: allowed=%v, want %v", tc.action, role, d.Allowed, want)
			}
		}
	}
}

func TestWrongRoleRedirectTargets(t *testing.T) {
	teacher := actorWithRole(constants.RoleTeacher)

	if d := Authorize(teacher, ActionCreateReport, nil); d.RedirectTo != RedirectReports {
		t.Fatalf("teacher creating report: redirect = %q, want %q", d.RedirectTo, RedirectReports)
	}
	if d := Authorize(teacher, ActionSubmitTask, nil); d.RedirectTo != RedirectTasks {
		t.Fatalf("teacher submitting task: redirect = %q, want %q", d.RedirectTo, RedirectTasks)
	}

	student := actorWithRole(constants.RoleStudent)
	if d := Authorize(student, ActionViewDirectorPanel, nil); d.RedirectTo != RedirectDashboard {
		t.Fatalf("student opening panel: redirect = %q, want %q", d.RedirectTo, RedirectDashboard)
	}
}

func TestStudentReportOwnership(t *testing.T) {
	actor := actorWithRole(constants.RoleStudent)

	own := &Resource{SchoolID: actor.SchoolID, OwnerID: actor.UserID}
	if d := Authorize(actor, ActionViewReport, own); !d.Allowed {
		t.Fatalf("student reading own report denied: %s", d.Reason)
	}

	foreign := &Resource{SchoolID: actor.SchoolID, OwnerID: uuid.New()}
	if d := Authorize(actor, ActionViewReport, foreign); d.Allowed {
		t.Fatal("student must not read another student's report")
	}

	// Report anonim tidak bisa diambil kembali oleh pembuatnya.
	anonRes := &Resource{SchoolID: actor.SchoolID, OwnerID: actor.UserID, Anonymous: true}
	if d := Authorize(actor, ActionViewReport, anonRes); d.Allowed {
		t.Fatal("anonymous report must not resolve ownership back to the student")
	}
}

func TestNotificationRecipientOnly(t *testing.T) {
	actor := actorWithRole(constants.RoleParent)

	own := &Resource{OwnerID: actor.UserID}
	if d := Authorize(actor, ActionViewNotifications, own); !d.Allowed {
		t.Fatalf("parent reading own notification denied: %s", d.Reason)
	}
	foreign := &Resource{OwnerID: uuid.New()}
	if d := Authorize(actor, ActionViewNotifications, foreign); d.Allowed {
		t.Fatal("notification of another recipient must be denied")
	}
}

func TestEveryDenyCarriesRedirect(t *testing.T) {
	actor := actorWithRole(constants.RoleStudent)
	denies := []Decision{
		Authorize(ActorContext{}, ActionViewDashboard, nil),
		Authorize(actor, ActionViewDirectorPanel, nil),
		Authorize(actor, ActionViewReport, &Resource{SchoolID: actor.SchoolID, OwnerID: uuid.New()}),
		Authorize(actor, ActionCreatePanicAlert, &Resource{SchoolID: actor.SchoolID, OwnerID: uuid.New()}),
	}
	for i, d := range denies {
		if d.Allowed {
			t.Fatalf("case %d: expected deny", i)
		}
		if d.RedirectTo == "" {
			t.Fatalf("case %d: deny without redirect target", i)
		}
	}
}

func TestPublicPaths(t *testing.T) {
	for _, p := range []string{"/", "/health", "/login", "/register", "/auth/callback"} {
		if !IsPublicPath(p) {
			t.Fatalf("path %s should be public", p)
		}
	}
	for _, p := range []string{"/inicio", "/reportes", "/api/u/dashboard"} {
		if IsPublicPath(p) {
			t.Fatalf("path %s should not be public", p)
		}
	}
}

func TestAuthPageRedirectIdempotent(t *testing.T) {
	actor := actorWithRole(constants.RoleStudent)

	if to, ok := AuthPageRedirect(actor, "/login"); !ok || to != RedirectDashboard {
		t.Fatalf("logged-in actor on /login: got (%q,%v), want (%q,true)", to, ok, RedirectDashboard)
	}
	if to, ok := AuthPageRedirect(actor, "/register"); !ok || to != RedirectDashboard {
		t.Fatalf("logged-in actor on /register: got (%q,%v)", to, ok)
	}
	if _, ok := AuthPageRedirect(ActorContext{}, "/login"); ok {
		t.Fatal("anonymous actor on /login must not be redirected")
	}
	if _, ok := AuthPageRedirect(actor, "/reportes"); ok {
		t.Fatal("non-auth page must never trigger the auth redirect")
	}
}
