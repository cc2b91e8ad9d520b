package adaptor

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"meditrack/internal/data/storage"
	"meditrack/internal/usecase"
	"meditrack/pkg/utils"
)

// Handler mengumpulkan semua HTTP handler untuk wiring.
type Handler struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Site    *SiteHandler
}

// respondServiceError memetakan error dari service layer ke status code.
// Sentinel errors dicek dengan errors.Is supaya wrapping tidak merusak
// mapping-nya.
func respondServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, storage.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, storage.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid username or password")

	case errors.Is(err, usecase.ErrRoleNotSet):
		log.Warn(operation+" failed - role not set", zap.Error(err))
		utils.ResponseNotFound(w, "Role has not been selected yet")

	case errors.Is(err, usecase.ErrRoleMismatch):
		log.Warn(operation+" failed - role mismatch", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// clientIP mengambil alamat asal request, memakai X-Forwarded-For kalau
// ada (di belakang reverse proxy).
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
