package wire

import (
	"github.com/go-chi/chi/v5"

	"meditrack/internal/adaptor"
)

// wireSite configures marketing form endpoints, publik tanpa auth
func wireSite(r chi.Router, siteHandler *adaptor.SiteHandler) {
	r.Post("/api/contact", siteHandler.Contact)
	r.Post("/api/demo", siteHandler.Demo)
}
