package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	taskModel "escuelasegura_backend/internals/features/academic/tasks/model"
	"escuelasegura_backend/internals/features/home/dashboard/dto"
	notifModel "escuelasegura_backend/internals/features/home/notifications/model"
	alertModel "escuelasegura_backend/internals/features/safety/alerts/model"
	incidentModel "escuelasegura_backend/internals/features/safety/incidents/model"
	reportModel "escuelasegura_backend/internals/features/safety/reports/model"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
	"escuelasegura_backend/internals/constants"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// 🟢 GET /api/u/dashboard — counter ringkas per role. Semua query di sini
// read-only dan sudah di-scope ke sekolah/identitas actor.
func (ctrl *DashboardController) GetDashboard(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	resp := dto.DashboardResponse{Role: actor.Role}

	if err := ctrl.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_recipient_id = ? AND notification_is_read = ?", actor.UserID, false).
		Count(&resp.UnreadCount).Error; err != nil {
		log.Printf("[ERROR] dashboard unread count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build dashboard")
	}

	switch actor.Role {
	case constants.RoleStudent:
		var myReports, mySubs, openTasks int64
		ctrl.DB.Model(&reportModel.ReportModel{}).
			Where("report_reporter_id = ?", actor.UserID).
			Count(&myReports)
		ctrl.DB.Model(&taskModel.TaskSubmissionModel{}).
			Where("task_submission_student_id = ?", actor.UserID).
			Count(&mySubs)
		ctrl.DB.Model(&taskModel.TaskModel{}).
			Where("task_school_id = ? AND task_grade = ?", actor.SchoolID, actor.Grade).
			Count(&openTasks)
		resp.MyReports = &myReports
		resp.MySubmissions = &mySubs
		resp.OpenTasks = &openTasks

	case constants.RoleParent:
		var children, incidents int64
		ctrl.DB.Model(&profileModel.ParentStudentModel{}).
			Where("parent_student_parent_id = ?", actor.UserID).
			Count(&children)
		ctrl.DB.Model(&incidentModel.IncidentModel{}).
			Where("incident_student_id IN (?)",
				ctrl.DB.Model(&profileModel.ParentStudentModel{}).
					Select("parent_student_student_id").
					Where("parent_student_parent_id = ?", actor.UserID)).
			Count(&incidents)
		resp.LinkedChildren = &children
		resp.ChildIncidents = &incidents

	case constants.RoleTeacher, constants.RoleDirector:
		var pending, active int64
		ctrl.DB.Model(&reportModel.ReportModel{}).
			Where("report_school_id = ? AND report_status = ?", actor.SchoolID, constants.ReportStatusPending).
			Count(&pending)
		ctrl.DB.Model(&alertModel.PanicAlertModel{}).
			Where("panic_alert_school_id = ? AND panic_alert_status = ?", actor.SchoolID, constants.PanicStatusActive).
			Count(&active)
		resp.PendingReports = &pending
		resp.ActiveAlerts = &active

		if actor.Role == constants.RoleTeacher {
			var myTasks int64
			ctrl.DB.Model(&taskModel.TaskModel{}).
				Where("task_teacher_id = ?", actor.UserID).
				Count(&myTasks)
			resp.MyTasks = &myTasks
		}
	}

	return helper.JsonOK(c, "", resp)
}

// 🟢 GET /api/a/panel — ringkasan panel director. Gate role di route
// (ActionViewDirectorPanel); di sini tinggal agregasi per sekolah.
func (ctrl *DashboardController) GetDirectorPanel(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	resp := dto.DirectorPanelResponse{
		ReportsByStatus: map[string]int64{},
	}

	roleCounts := []struct {
		role string
		dst  *int64
	}{
		{constants.RoleStudent, &resp.Students},
		{constants.RoleTeacher, &resp.Teachers},
		{constants.RoleParent, &resp.Parents},
	}
	for _, rc := range roleCounts {
		if err := ctrl.DB.Model(&profileModel.ProfileModel{}).
			Where("profile_school_id = ? AND profile_role = ?", actor.SchoolID, rc.role).
			Count(rc.dst).Error; err != nil {
			log.Printf("[ERROR] panel role count %s: %v", rc.role, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build panel")
		}
	}

	type statusRow struct {
		Status string
		Total  int64
	}
	var rows []statusRow
	if err := ctrl.DB.Model(&reportModel.ReportModel{}).
		Select("report_status AS status, COUNT(*) AS total").
		Where("report_school_id = ?", actor.SchoolID).
		Group("report_status").
		Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] panel reports by status: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build panel")
	}
	for _, r := range rows {
		resp.ReportsByStatus[r.Status] = r.Total
	}

	ctrl.DB.Model(&alertModel.PanicAlertModel{}).
		Where("panic_alert_school_id = ? AND panic_alert_status = ?", actor.SchoolID, constants.PanicStatusActive).
		Count(&resp.ActiveAlerts)
	ctrl.DB.Model(&incidentModel.IncidentModel{}).
		Where("incident_school_id = ?", actor.SchoolID).
		Count(&resp.IncidentsTotal)
	ctrl.DB.Model(&taskModel.TaskModel{}).
		Where("task_school_id = ?", actor.SchoolID).
		Count(&resp.TasksTotal)

	return helper.JsonOK(c, "", resp)
}
