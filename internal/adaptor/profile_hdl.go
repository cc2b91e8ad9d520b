package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meditrack/internal/data/entity"
	"meditrack/internal/dto/request"
	"meditrack/internal/dto/response"
	"meditrack/internal/usecase"
	"meditrack/pkg/utils"
)

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

// GetRole handles GET /api/auth/role
func (h *ProfileHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, err := h.service.Role(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.log, err, "get role")
		return
	}

	utils.ResponseSuccess(w, "Role retrieved successfully", response.RoleResponse{Role: string(role)})
}

// SetRole handles POST /api/auth/role
func (h *ProfileHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	user, err := h.service.SetRole(r.Context(), userID, entity.UserRole(req.Role))
	if err != nil {
		respondServiceError(w, h.log, err, "set role")
		return
	}

	utils.ResponseSuccess(w, "Role set successfully", response.RoleResponse{Role: string(*user.Role)})
}

// GetDetails handles GET /api/auth/details
func (h *ProfileHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	details, err := h.service.Details(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.log, err, "get details")
		return
	}

	utils.ResponseSuccess(w, "Details retrieved successfully", response.RoleDataToResponse(details))
}

// SetDetails handles POST /api/auth/details. Body di-decode sesuai role
// user, jadi role harus sudah dipilih lebih dulu.
func (h *ProfileHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	role, err := h.service.Role(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.log, err, "set details")
		return
	}

	switch role {
	case entity.RolePatient:
		h.setPatientDetails(w, r, userID)
	case entity.RoleDoctor:
		h.setDoctorDetails(w, r, userID)
	case entity.RoleFamily:
		h.setFamilyDetails(w, r, userID)
	default:
		utils.ResponseBadRequest(w, "Unknown role", nil)
	}
}

func (h *ProfileHandler) setPatientDetails(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req request.PatientDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	patient, err := h.service.SetPatientDetails(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "set patient details")
		return
	}

	utils.ResponseSuccess(w, "Details saved successfully", response.PatientToResponse(patient))
}

func (h *ProfileHandler) setDoctorDetails(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req request.DoctorDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	doctor, err := h.service.SetDoctorDetails(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "set doctor details")
		return
	}

	utils.ResponseSuccess(w, "Details saved successfully", response.DoctorToResponse(doctor))
}

func (h *ProfileHandler) setFamilyDetails(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req request.FamilyDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	member, err := h.service.SetFamilyDetails(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, h.log, err, "set family details")
		return
	}

	utils.ResponseSuccess(w, "Details saved successfully", response.FamilyMemberToResponse(member))
}
