package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/constants"
	"escuelasegura_backend/internals/features/academic/tasks/dto"
	"escuelasegura_backend/internals/features/academic/tasks/model"
	fanout "escuelasegura_backend/internals/features/home/notifications/service"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
	featuresMiddleware "escuelasegura_backend/internals/middlewares/features"
	"escuelasegura_backend/internals/policy"
)

type TaskController struct {
	DB     *gorm.DB
	Fanout *fanout.FanoutService
}

func NewTaskController(db *gorm.DB, f *fanout.FanoutService) *TaskController {
	return &TaskController{DB: db, Fanout: f}
}

// 🟢 POST /api/u/tasks — teacher only (route gate); auto-own lewat
// task_teacher_id = actor.
func (ctrl *TaskController) CreateTask(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	dueDate, err := req.ParseDueDate()
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"DueDate": {"invalid date"}})
	}

	task := model.TaskModel{
		TaskTeacherID:   actor.UserID,
		TaskTitle:       req.Title,
		TaskDescription: req.Description,
		TaskGrade:       req.Grade,
		TaskDueDate:     dueDate,
		TaskSchoolID:    actor.SchoolID,
	}
	if err := ctrl.DB.Create(&task).Error; err != nil {
		log.Printf("[ERROR] create task: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create task")
	}

	// Snapshot recipient saat ini — student yang masuk grade besok tidak
	// menerima notifikasi ini.
	if err := ctrl.Fanout.TaskCreated(fanout.TaskCreatedEvent{
		TaskID:   task.TaskID,
		SchoolID: task.TaskSchoolID,
		Grade:    task.TaskGrade,
		Title:    task.TaskTitle,
		DueDate:  task.TaskDueDate,
	}); err != nil {
		log.Printf("[WARNING] fanout task created: %v", err)
	}

	return helper.JsonCreated(c, "Tarea creada", dto.ToTaskResponse(&task))
}

// 🟢 GET /api/u/tasks — scoped per role, due_date DESC:
// student → (school, grade) miliknya; parent → union grade anak-anak
// ter-link; teacher → tugas buatannya; director → seluruh school.
func (ctrl *TaskController) ListTasks(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.TaskModel{}).Where("task_school_id = ?", actor.SchoolID)

	switch actor.Role {
	case constants.RoleStudent:
		q = q.Where("task_grade = ?", actor.Grade)
	case constants.RoleParent:
		grades, err := ctrl.linkedChildGrades(actor.UserID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve children")
		}
		if len(grades) == 0 {
			return helper.JsonList(c, "", []dto.TaskResponse{}, helper.BuildPagination(paging, 0))
		}
		q = q.Where("task_grade IN ?", grades)
	case constants.RoleTeacher:
		q = q.Where("task_teacher_id = ?", actor.UserID)
	case constants.RoleDirector:
		// seluruh school
	default:
		return featuresMiddleware.WriteDeny(c, policy.Deny("role "+actor.Role+" cannot list tasks", ""))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count tasks")
	}

	var tasks []model.TaskModel
	if err := q.Order("task_due_date DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&tasks).Error; err != nil {
		log.Printf("[ERROR] list tasks: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tasks")
	}

	return helper.JsonList(c, "", dto.ToTaskResponseList(tasks), helper.BuildPagination(paging, total))
}

// 🟢 GET /api/u/tasks/:id
func (ctrl *TaskController) GetTask(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	task, errResp := ctrl.loadTaskInTenant(c, actor)
	if task == nil {
		return errResp
	}
	return helper.JsonOK(c, "", dto.ToTaskResponse(task))
}

// 🟢 POST /api/u/tasks/:id/submissions — student only, untuk dirinya
// sendiri, maksimal sekali per (task, student).
// Keunikan = check-then-insert; tidak ada unique constraint di store,
// jadi ada celah race antara dua submit paralel.
func (ctrl *TaskController) CreateSubmission(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	task, errResp := ctrl.loadTaskInTenant(c, actor)
	if task == nil {
		return errResp
	}

	// student hanya boleh submit tugas grade-nya sendiri
	if task.TaskGrade != actor.Grade {
		return helper.JsonError(c, fiber.StatusNotFound, "Task not found")
	}

	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	// check-then-insert: sudah pernah submit → tolak sebelum menyentuh store
	var existing int64
	if err := ctrl.DB.Model(&model.TaskSubmissionModel{}).
		Where("task_submission_task_id = ? AND task_submission_student_id = ?", task.TaskID, actor.UserID).
		Count(&existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check submission")
	}
	if existing > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Ya enviaste esta tarea")
	}

	submission := model.TaskSubmissionModel{
		TaskSubmissionTaskID:    task.TaskID,
		TaskSubmissionStudentID: actor.UserID,
		TaskSubmissionContent:   req.Content,
		TaskSubmissionFileURL:   req.FileURL,
	}
	if err := ctrl.DB.Create(&submission).Error; err != nil {
		log.Printf("[ERROR] create submission: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create submission")
	}

	return helper.JsonCreated(c, "Tarea enviada", dto.ToTaskSubmissionResponse(&submission))
}

// 🟢 GET /api/u/tasks/:id/submissions
// Teacher/director: semua submission task (teacher hanya untuk task
// miliknya). Student: hanya submission-nya sendiri.
func (ctrl *TaskController) ListSubmissions(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	task, errResp := ctrl.loadTaskInTenant(c, actor)
	if task == nil {
		return errResp
	}

	q := ctrl.DB.Model(&model.TaskSubmissionModel{}).
		Where("task_submission_task_id = ?", task.TaskID)

	switch {
	case actor.Role == constants.RoleTeacher:
		if task.TaskTeacherID != actor.UserID {
			return helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		}
	case actor.Role == constants.RoleDirector:
		// semua submission task dalam school
	case actor.Role == constants.RoleStudent:
		q = q.Where("task_submission_student_id = ?", actor.UserID)
	default:
		return featuresMiddleware.WriteDeny(c, policy.Deny("role "+actor.Role+" cannot list submissions", ""))
	}

	var submissions []model.TaskSubmissionModel
	if err := q.Order("task_submission_created_at DESC").Find(&submissions).Error; err != nil {
		log.Printf("[ERROR] list submissions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	return helper.JsonOK(c, "", dto.ToTaskSubmissionResponseList(submissions))
}

// 🟢 PATCH /api/a/submissions/:id/grade — staff only, nilai ∈ [0,100].
// grade_score adalah satu-satunya field submission yang mutable.
func (ctrl *TaskController) GradeSubmission(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	var req dto.GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		// payload non-numerik ("abc") berhenti di sini — tidak pernah
		// sampai ke store
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var submission model.TaskSubmissionModel
	if err := ctrl.DB.Where("task_submission_id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch submission")
	}

	// tenant scope lewat task induknya
	var task model.TaskModel
	if err := ctrl.DB.Where("task_id = ?", submission.TaskSubmissionTaskID).First(&task).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch task")
	}
	if d := policy.Authorize(actor, policy.ActionGradeSubmission, &policy.Resource{
		SchoolID: task.TaskSchoolID,
	}); !d.Allowed {
		return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
	}

	if err := ctrl.DB.Model(&submission).Update("task_submission_grade_score", *req.GradeScore).Error; err != nil {
		log.Printf("[ERROR] grade submission: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to grade submission")
	}
	submission.TaskSubmissionGradeScore = req.GradeScore

	return helper.JsonUpdated(c, "Calificación guardada", dto.ToTaskSubmissionResponse(&submission))
}

// ===================== Internals =====================

// loadTaskInTenant: ambil task + cek scope per role. Return (nil, response)
// saat gagal — respons sudah ditulis.
func (ctrl *TaskController) loadTaskInTenant(c *fiber.Ctx, actor policy.ActorContext) (*model.TaskModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid task id")
	}

	var task model.TaskModel
	if err := ctrl.DB.Where("task_id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch task")
	}

	if d := policy.Authorize(actor, policy.ActionViewTask, &policy.Resource{
		SchoolID: task.TaskSchoolID,
	}); !d.Allowed {
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Task not found")
	}

	// visibility per role di level baris
	switch actor.Role {
	case constants.RoleStudent:
		if task.TaskGrade != actor.Grade {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		}
	case constants.RoleParent:
		grades, err := ctrl.linkedChildGrades(actor.UserID)
		if err != nil {
			return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve children")
		}
		if !containsString(grades, task.TaskGrade) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Task not found")
		}
	}
	return &task, nil
}

// linkedChildGrades: union grade semua anak yang ter-link ke parent.
func (ctrl *TaskController) linkedChildGrades(parentID uuid.UUID) ([]string, error) {
	var grades []string
	err := ctrl.DB.Model(&profileModel.ProfileModel{}).
		Distinct("profile_grade").
		Joins("JOIN parent_students ON parent_students.parent_student_student_id = profiles.profile_id").
		Where("parent_students.parent_student_parent_id = ? AND profile_grade IS NOT NULL", parentID).
		Pluck("profile_grade", &grades).Error
	return grades, err
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
