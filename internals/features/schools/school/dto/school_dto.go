package dto

import (
	"github.com/google/uuid"

	"escuelasegura_backend/internals/features/schools/school/model"
)

// ================== REQUEST ==================

type CreateSchoolRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=255"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// ================== RESPONSE ==================

type SchoolResponse struct {
	SchoolID      uuid.UUID `json:"school_id"`
	SchoolName    string    `json:"school_name"`
	SchoolAddress *string   `json:"school_address"`
}

// ================ CONVERSION =================

func ToSchoolResponse(m *model.SchoolModel) *SchoolResponse {
	return &SchoolResponse{
		SchoolID:      m.SchoolID,
		SchoolName:    m.SchoolName,
		SchoolAddress: m.SchoolAddress,
	}
}

func ToSchoolResponseList(models []model.SchoolModel) []SchoolResponse {
	result := make([]SchoolResponse, 0, len(models))
	for _, m := range models {
		result = append(result, *ToSchoolResponse(&m))
	}
	return result
}
