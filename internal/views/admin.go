// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package views

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/bgpiesa/internal/platform/request"
	"github.com/taibuivan/bgpiesa/internal/platform/respond"
	"github.com/taibuivan/bgpiesa/internal/platform/validate"
	"github.com/taibuivan/bgpiesa/pkg/pointer"
)

// multipartMemory is how much of an upload is buffered in memory before the
// rest spills to a temporary file.
const multipartMemory = 8 << 20

// # Session

type loginInput struct {
	Password string `json:"password"`
}

type sessionView struct {
	ExpiresAt string `json:"expires_at,omitempty"`
}

func (h *Handler) login(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	var input loginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, err)
		return
	}
	if strings.TrimSpace(input.Password) == "" {
		fail(writer, request, validate.RequiredError("password", i18n.T(requestutil.Language(request), i18n.MsgLoginFailed)))
		return
	}

	// 1. Exchange the password for a backend token
	credential, err := h.catalog.Login(ctx, input.Password)
	if err != nil {
		fail(writer, request, err)
		return
	}

	// 2. Keep the token server side under an opaque session id
	ttl := credential.TTL(h.now(), h.sessionTTL)
	if ttl <= 0 {
		fail(writer, request, apperr.Unauthorized(i18n.T(requestutil.Language(request), i18n.MsgLoginRequired)))
		return
	}
	sessionID := h.newSessionID()
	if err := h.sessions.Save(ctx, sessionID, credential, ttl); err != nil {
		fail(writer, request, apperr.Internal(err))
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    sessionID,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	ctxutil.GetLogger(ctx).InfoContext(ctx, "admin_login_succeeded", slog.Duration("ttl", ttl))

	view := sessionView{}
	if !credential.ExpiresAt.IsZero() {
		view.ExpiresAt = credential.ExpiresAt.UTC().Format(time.RFC3339)
	}
	respond.OK(writer, view)
}

func (h *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(request.Context(), cookie.Value); err != nil {
			fail(writer, request, apperr.Internal(err))
			return
		}
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respond.NoContent(writer)
}

// admin binds the request credential to the backend mutation surface.
func (h *Handler) admin(request *http.Request) (*client.Admin, error) {
	credential, err := requestutil.RequiredCredential(request)
	if err != nil {
		return nil, err
	}
	return h.catalog.Admin(credential), nil
}

// # Authors

func (h *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	admin, err := h.admin(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	var input catalog.AuthorInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, err)
		return
	}

	author, err := admin.CreateAuthor(request.Context(), input)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.Created(writer, author)
}

func (h *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	admin, authorID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	var input catalog.AuthorInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, err)
		return
	}

	author, err := admin.UpdateAuthor(request.Context(), authorID, input)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

func (h *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	admin, authorID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	if err := admin.DeleteAuthor(request.Context(), authorID); err != nil {
		fail(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (h *Handler) uploadAuthorPhoto(writer http.ResponseWriter, request *http.Request) {
	admin, authorID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	upload, _, cleanup, err := readUpload(writer, request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	defer cleanup()

	author, err := admin.UploadAuthorPhoto(request.Context(), authorID, upload)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, author)
}

// # Plays

func (h *Handler) createPlay(writer http.ResponseWriter, request *http.Request) {
	admin, err := h.admin(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	var input catalog.PlayInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, err)
		return
	}

	play, err := admin.CreatePlay(request.Context(), input)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.Created(writer, play)
}

func (h *Handler) updatePlay(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	var input catalog.PlayInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, err)
		return
	}

	play, err := admin.UpdatePlay(request.Context(), playID, input)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, play)
}

func (h *Handler) deletePlay(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	if err := admin.DeletePlay(request.Context(), playID); err != nil {
		fail(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (h *Handler) uploadPlayPDF(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	upload, _, cleanup, err := readUpload(writer, request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	defer cleanup()

	play, err := admin.UploadPlayPDF(request.Context(), playID, upload)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, play)
}

func (h *Handler) uploadPlayImage(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	upload, captions, cleanup, err := readUpload(writer, request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	defer cleanup()

	play, err := admin.UploadPlayImage(request.Context(), playID, upload, captions)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, play)
}

func (h *Handler) uploadPlayFile(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	upload, captions, cleanup, err := readUpload(writer, request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	defer cleanup()

	play, err := admin.UploadPlayFile(request.Context(), playID, upload, captions)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, play)
}

func (h *Handler) updateImageCaption(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	imageID, err := requestutil.IntParam(request, "imageID")
	if err != nil {
		fail(writer, request, err)
		return
	}

	var captions catalog.Captions
	if err := requestutil.DecodeJSON(request, &captions); err != nil {
		fail(writer, request, err)
		return
	}

	image, err := admin.UpdatePlayImageCaption(request.Context(), playID, imageID, captions)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, image)
}

func (h *Handler) deleteImage(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	imageID, err := requestutil.IntParam(request, "imageID")
	if err != nil {
		fail(writer, request, err)
		return
	}

	if err := admin.DeletePlayImage(request.Context(), playID, imageID); err != nil {
		fail(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (h *Handler) updateFileCaption(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	fileID, err := requestutil.IntParam(request, "fileID")
	if err != nil {
		fail(writer, request, err)
		return
	}

	var captions catalog.Captions
	if err := requestutil.DecodeJSON(request, &captions); err != nil {
		fail(writer, request, err)
		return
	}

	file, err := admin.UpdatePlayFileCaption(request.Context(), playID, fileID, captions)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, file)
}

func (h *Handler) deleteFile(writer http.ResponseWriter, request *http.Request) {
	admin, playID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	fileID, err := requestutil.IntParam(request, "fileID")
	if err != nil {
		fail(writer, request, err)
		return
	}

	if err := admin.DeletePlayFile(request.Context(), playID, fileID); err != nil {
		fail(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Library

func (h *Handler) createPiece(writer http.ResponseWriter, request *http.Request) {
	admin, err := h.admin(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	var input catalog.LiteraryPieceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, err)
		return
	}

	piece, err := admin.CreateLiteraryPiece(request.Context(), input)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.Created(writer, piece)
}

func (h *Handler) updatePiece(writer http.ResponseWriter, request *http.Request) {
	admin, pieceID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	var input catalog.LiteraryPieceInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		fail(writer, request, err)
		return
	}

	piece, err := admin.UpdateLiteraryPiece(request.Context(), pieceID, input)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, piece)
}

func (h *Handler) deletePiece(writer http.ResponseWriter, request *http.Request) {
	admin, pieceID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	if err := admin.DeleteLiteraryPiece(request.Context(), pieceID); err != nil {
		fail(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (h *Handler) uploadPiecePDF(writer http.ResponseWriter, request *http.Request) {
	admin, pieceID, err := h.adminWithID(request)
	if err != nil {
		fail(writer, request, err)
		return
	}

	upload, _, cleanup, err := readUpload(writer, request)
	if err != nil {
		fail(writer, request, err)
		return
	}
	defer cleanup()

	piece, err := admin.UploadLiteraryPiecePDF(request.Context(), pieceID, upload)
	if err != nil {
		fail(writer, request, err)
		return
	}
	respond.OK(writer, piece)
}

// # Helpers

func (h *Handler) adminWithID(request *http.Request) (*client.Admin, int, error) {
	admin, err := h.admin(request)
	if err != nil {
		return nil, 0, err
	}

	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		return nil, 0, err
	}

	return admin, id, nil
}

// readUpload reads the "file" part and the optional captions of a multipart
// admin form. cleanup releases the file and any temporary storage.
func readUpload(writer http.ResponseWriter, request *http.Request) (client.Upload, catalog.Captions, func(), error) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)

	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		return client.Upload{}, catalog.Captions{}, nil, validate.RequiredError(catalog.FieldFile, "a multipart form within the upload limit is required")
	}

	file, header, err := request.FormFile(catalog.FieldFile)
	if err != nil {
		_ = request.MultipartForm.RemoveAll()
		return client.Upload{}, catalog.Captions{}, nil, validate.RequiredError(catalog.FieldFile, "is required")
	}

	captions := catalog.Captions{
		CaptionBG: optionalText(request.FormValue("caption_bg")),
		CaptionEN: optionalText(request.FormValue("caption_en")),
	}

	cleanup := func() {
		_ = file.Close()
		_ = request.MultipartForm.RemoveAll()
	}

	return client.Upload{Filename: header.Filename, Content: file}, captions, cleanup, nil
}

func optionalText(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return pointer.To(value)
}
