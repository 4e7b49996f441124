// AngelaMos | 2026
// handler.go

package asset

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/ntandostore/internal/config"
	"github.com/carterperez-dev/ntandostore/internal/core"
)

type Handler struct {
	service  *Service
	maxBytes int64
}

func NewHandler(service *Service, cfg config.UploadConfig) *Handler {
	return &Handler{
		service:  service,
		maxBytes: cfg.MaxBytes,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/gallery", h.ListGallery)
	r.Get("/company_logo", h.ActiveCompanyLogo)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, csrf func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Use(csrf)

		r.Post("/admin/upload_logo", h.UploadLogo)
		r.Post("/admin/upload_company_logo", h.UploadCompanyLogo)
		r.Post("/admin/delete_logo/{logoID}", h.DeleteLogo)
	})
}

func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	logos, err := h.service.ListGallery(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, logos)
}

func (h *Handler) ActiveCompanyLogo(w http.ResponseWriter, r *http.Request) {
	logo, err := h.service.ActiveCompanyLogo(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "company logo")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, logo)
}

func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readUpload(w, r, "logo_file")
	if !ok {
		return
	}

	clientName := r.FormValue("client_name")

	logo, err := h.service.UploadLogo(r.Context(), filename, clientName, data)
	if err != nil {
		if _, isApp := core.AsAppError(err); isApp {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, logo)
}

func (h *Handler) UploadCompanyLogo(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readUpload(w, r, "company_logo_file")
	if !ok {
		return
	}

	logo, err := h.service.ActivateCompany(r.Context(), filename, data)
	if err != nil {
		if _, isApp := core.AsAppError(err); isApp {
			core.JSONError(w, err)
			return
		}
		if errors.Is(err, core.ErrConflict) {
			core.Conflict(w, "another logo activation is in progress, try again")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, logo)
}

func (h *Handler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	logoID := chi.URLParam(r, "logoID")

	if err := h.service.DeleteLogo(r.Context(), logoID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "logo")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// readUpload pulls one multipart file out of the request under the global
// body ceiling. A false return means the response has been written.
func (h *Handler) readUpload(
	w http.ResponseWriter,
	r *http.Request,
	field string,
) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		core.JSONError(w, core.UploadError("file too large or malformed upload"))
		return "", nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		core.JSONError(w, core.UploadError("no file uploaded"))
		return "", nil, false
	}
	defer file.Close() //nolint:errcheck // read-only handle

	data, err := io.ReadAll(file)
	if err != nil {
		core.JSONError(w, core.UploadError("could not read uploaded file"))
		return "", nil, false
	}

	return header.Filename, data, true
}
