package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"meditrack/internal/dto/request"
	"meditrack/pkg/utils"
)

// SiteHandler melayani form publik dari halaman marketing. Submission
// hanya divalidasi dan dicatat ke log — belum ada backend CRM.
type SiteHandler struct {
	log *zap.Logger
}

func NewSiteHandler(log *zap.Logger) *SiteHandler {
	return &SiteHandler{log: log}
}

// Contact handles POST /api/contact
func (h *SiteHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	h.log.Info("Contact form submitted",
		zap.String("name", req.Name),
		zap.String("email", req.Email))

	utils.ResponseSuccess(w, "Thank you for reaching out, we will get back to you soon", nil)
}

// Demo handles POST /api/demo
func (h *SiteHandler) Demo(w http.ResponseWriter, r *http.Request) {
	var req request.DemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	fields := []zap.Field{
		zap.String("name", req.Name),
		zap.String("email", req.Email),
	}
	if req.Organization != nil {
		fields = append(fields, zap.String("organization", *req.Organization))
	}
	h.log.Info("Demo request submitted", fields...)

	utils.ResponseSuccess(w, "Demo request received, our team will contact you", nil)
}
