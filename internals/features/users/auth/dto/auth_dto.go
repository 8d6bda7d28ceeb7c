package dto

import (
	"github.com/google/uuid"

	profileModel "escuelasegura_backend/internals/features/users/profile/model"
)

// ================== REQUEST ==================

// Registrasi butuh: nama (≥2), email valid, password ≥6, role valid,
// school wajib, grade wajib iff role=student.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student parent teacher director"`
	SchoolID string `json:"school_id" validate:"required,uuid"`
	Grade    string `json:"grade" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ================== RESPONSE ==================

type ProfileResponse struct {
	ProfileID       uuid.UUID `json:"profile_id"`
	ProfileRole     string    `json:"profile_role"`
	ProfileFullName string    `json:"profile_full_name"`
	ProfileSchoolID uuid.UUID `json:"profile_school_id"`
	ProfileGrade    *string   `json:"profile_grade"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	User        ProfileResponse `json:"user"`
}

func ToProfileResponse(m *profileModel.ProfileModel) ProfileResponse {
	return ProfileResponse{
		ProfileID:       m.ProfileID,
		ProfileRole:     m.ProfileRole,
		ProfileFullName: m.ProfileFullName,
		ProfileSchoolID: m.ProfileSchoolID,
		ProfileGrade:    m.ProfileGrade,
	}
}
