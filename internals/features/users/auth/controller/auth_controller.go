package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"escuelasegura_backend/internals/constants"
	schoolModel "escuelasegura_backend/internals/features/schools/school/model"
	"escuelasegura_backend/internals/features/users/auth/dto"
	authService "escuelasegura_backend/internals/features/users/auth/service"
	profileModel "escuelasegura_backend/internals/features/users/profile/model"
	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
	"escuelasegura_backend/internals/policy"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// 🟢 POST /auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	// grade wajib iff role=student, tidak bermakna untuk role lain
	var grade *string
	if req.Role == constants.RoleStudent {
		if req.Grade == "" {
			return helper.JsonValidationError(c, map[string][]string{
				"Grade": {"required for role student"},
			})
		}
		grade = &req.Grade
	} else if req.Grade != "" {
		return helper.JsonValidationError(c, map[string][]string{
			"Grade": {"only allowed for role student"},
		})
	}

	schoolID, err := uuid.Parse(req.SchoolID)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"SchoolID": {"uuid"}})
	}
	var school schoolModel.SchoolModel
	if err := ctrl.DB.Where("school_id = ?", schoolID).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonValidationError(c, map[string][]string{"SchoolID": {"unknown school"}})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify school")
	}

	passwordHash, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	profile, err := authService.RegisterUser(ctrl.DB, req.Email, passwordHash, req.FullName, req.Role, schoolID, grade)
	if err != nil {
		if errors.Is(err, authService.ErrEmailTaken) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email already registered")
		}
		log.Printf("[ERROR] register: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "Registration successful", dto.ToProfileResponse(profile))
}

// 🟢 POST /auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	profile, err := authService.Authenticate(ctrl.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		log.Printf("[ERROR] login: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}

	now := time.Now().UTC()
	token, err := authService.IssueAccessToken(profile, now)
	if err != nil {
		log.Printf("[ERROR] issue token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	authService.SetAuthCookie(c, token, now)

	return helper.JsonOK(c, "Login successful", dto.LoginResponse{
		AccessToken: token,
		User:        dto.ToProfileResponse(profile),
	})
}

// 🟢 POST /api/u/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	authService.ClearAuthCookie(c)
	return helper.JsonOK(c, "Logged out", nil)
}

// 🟢 GET /api/u/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)
	if !actor.Authenticated {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var profile profileModel.ProfileModel
	if err := ctrl.DB.Where("profile_id = ?", actor.UserID).First(&profile).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
	}
	return helper.JsonOK(c, "", dto.ToProfileResponse(&profile))
}

// 🟢 GET /login & GET /register (halaman publik): kalau sudah login,
// redirect idempoten ke dashboard — bukan error.
func (ctrl *AuthController) AuthPage(c *fiber.Ctx) error {
	actor := helperAuth.ActorFromFiber(c)
	if target, ok := policy.AuthPageRedirect(actor, c.Path()); ok {
		return c.Redirect(target, fiber.StatusSeeOther)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"page": c.Path()})
}
