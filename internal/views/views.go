// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package views serves the localized catalog views of the web front and relays
admin mutations to the catalog backend.

Public views resolve every bilingual field for the request language. Admin
routes forward the session credential and return the backend's entities
unchanged.

Every backend failure is reported as one generic upstream error carrying the
backend's own message.
*/
package views

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/platform/respond"
	"github.com/taibuivan/bgpiesa/internal/richtext"
	"github.com/taibuivan/bgpiesa/internal/session"
	"github.com/taibuivan/bgpiesa/pkg/uuid"
)

// homeTeaserSize is how many authors and plays the landing view shows.
const homeTeaserSize = 3

// Options configures a [Handler].
type Options struct {
	Catalog  *client.Client
	Sessions session.Store
	Renderer *richtext.Renderer

	// SessionTTL caps the lifetime of an admin session.
	SessionTTL time.Duration

	// SecureCookie marks the session cookie Secure (production).
	SecureCookie bool

	// Now defaults to [time.Now].
	Now func() time.Time

	// NewSessionID defaults to a UUIDv7.
	NewSessionID func() string
}

// Handler serves the catalog views.
type Handler struct {
	catalog      *client.Client
	sessions     session.Store
	renderer     *richtext.Renderer
	sessionTTL   time.Duration
	secureCookie bool
	now          func() time.Time
	newSessionID func() string
}

// NewHandler creates a [Handler].
func NewHandler(options Options) *Handler {
	handler := &Handler{
		catalog:      options.Catalog,
		sessions:     options.Sessions,
		renderer:     options.Renderer,
		sessionTTL:   options.SessionTTL,
		secureCookie: options.SecureCookie,
		now:          options.Now,
		newSessionID: options.NewSessionID,
	}

	if handler.renderer == nil {
		handler.renderer = richtext.New()
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	if handler.newSessionID == nil {
		handler.newSessionID = uuid.New
	}

	return handler
}

// Routes registers the public views and the admin group. requireAdmin guards
// every admin mutation.
func (h *Handler) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/home", h.home)
	router.Get("/authors", h.listAuthors)
	router.Get("/authors/{id}", h.getAuthor)
	router.Get("/plays", h.listPlays)
	router.Get("/plays/options", h.playOptions)
	router.Get("/plays/{id}", h.getPlay)
	router.Get("/library", h.listLibrary)
	router.Get("/library/options", h.libraryOptions)
	router.Get("/library/{id}", h.getPiece)

	router.Route("/admin", func(admin chi.Router) {
		// Session
		admin.Post("/login", h.login)
		admin.Post("/logout", h.logout)

		// Admin only
		admin.Group(func(guarded chi.Router) {
			guarded.Use(requireAdmin)

			guarded.Post("/authors", h.createAuthor)
			guarded.Put("/authors/{id}", h.updateAuthor)
			guarded.Delete("/authors/{id}", h.deleteAuthor)
			guarded.Post("/authors/{id}/upload-photo", h.uploadAuthorPhoto)

			guarded.Post("/plays", h.createPlay)
			guarded.Put("/plays/{id}", h.updatePlay)
			guarded.Delete("/plays/{id}", h.deletePlay)
			guarded.Post("/plays/{id}/upload-pdf", h.uploadPlayPDF)
			guarded.Post("/plays/{id}/upload-image", h.uploadPlayImage)
			guarded.Post("/plays/{id}/upload-file", h.uploadPlayFile)
			guarded.Patch("/plays/{id}/images/{imageID}", h.updateImageCaption)
			guarded.Delete("/plays/{id}/images/{imageID}", h.deleteImage)
			guarded.Patch("/plays/{id}/files/{fileID}", h.updateFileCaption)
			guarded.Delete("/plays/{id}/files/{fileID}", h.deleteFile)

			guarded.Post("/library", h.createPiece)
			guarded.Put("/library/{id}", h.updatePiece)
			guarded.Delete("/library/{id}", h.deletePiece)
			guarded.Post("/library/{id}/upload-pdf", h.uploadPiecePDF)
		})
	})

	return router
}

// fail writes err. Local errors keep their own status; anything from the
// backend becomes one upstream error.
func fail(writer http.ResponseWriter, request *http.Request, err error) {
	if errors.Is(err, client.ErrNoCredential) {
		respond.Error(writer, request, apperr.Unauthorized("Admin login required"))
		return
	}

	if appError := apperr.As(err); appError != nil {
		respond.Error(writer, request, appError)
		return
	}

	if _, ok := client.AsRequestError(err); ok {
		respond.Error(writer, request, apperr.Upstream(err))
		return
	}

	// Transport failures keep their cause for the log only.
	upstream := apperr.Upstream(nil)
	upstream.Cause = err
	respond.Error(writer, request, upstream)
}
