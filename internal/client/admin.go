// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/session"
)

// # Admin Routes

const (
	routeAdminAuthors     = "/api/admin/authors"
	routeAdminAuthor      = "/api/admin/authors/{id}"
	routeAdminAuthorPhoto = "/api/admin/authors/{id}/upload-photo"
	routeAdminPlays       = "/api/admin/plays"
	routeAdminPlay        = "/api/admin/plays/{id}"
	routeAdminPlayPDF     = "/api/admin/plays/{id}/upload-pdf"
	routeAdminPlayImage   = "/api/admin/plays/{id}/upload-image"
	routeAdminPlayFile    = "/api/admin/plays/{id}/upload-file"
	routeAdminImage       = "/api/admin/plays/{id}/images/{image_id}"
	routeAdminFile        = "/api/admin/plays/{id}/files/{file_id}"
	routeAdminLibrary     = "/api/admin/library"
	routeAdminPiece       = "/api/admin/library/{id}"
	routeAdminPiecePDF    = "/api/admin/library/{id}/upload-pdf"
)

// Admin is the mutation surface of the backend, bound to one credential.
type Admin struct {
	client     *Client
	credential *session.Credential
}

// Admin binds credential to the mutation surface. The credential is checked
// on every call, so an Admin outliving its token fails with [ErrNoCredential].
func (c *Client) Admin(credential *session.Credential) *Admin {
	return &Admin{client: c, credential: credential}
}

// authorize is the precondition of every admin call.
func (a *Admin) authorize() error {
	if !a.credential.Valid(a.client.now()) {
		return ErrNoCredential
	}
	return nil
}

// sendJSON dispatches an authorized JSON call.
func (a *Admin) sendJSON(ctx context.Context, method, route, path string, payload, out any) error {
	if err := a.authorize(); err != nil {
		return err
	}

	op := call{method: method, route: route, path: path, credential: a.credential}
	if payload != nil {
		body, err := jsonBody(payload)
		if err != nil {
			return err
		}
		op.body = body
		op.contentType = contentTypeJSON
	}

	return a.client.send(ctx, op, out)
}

// # Authors

// CreateAuthor validates input and creates an author.
func (a *Admin) CreateAuthor(ctx context.Context, input catalog.AuthorInput) (*catalog.Author, error) {
	if err := a.authorize(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	author := &catalog.Author{}
	if err := a.sendJSON(ctx, http.MethodPost, routeAdminAuthors, routeAdminAuthors, input, author); err != nil {
		return nil, err
	}
	return author, nil
}

// UpdateAuthor validates input and replaces the author's fields.
func (a *Admin) UpdateAuthor(ctx context.Context, id int, input catalog.AuthorInput) (*catalog.Author, error) {
	if err := a.authorize(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	author := &catalog.Author{}
	if err := a.sendJSON(ctx, http.MethodPut, routeAdminAuthor, authorPath(id), input, author); err != nil {
		return nil, err
	}
	return author, nil
}

// DeleteAuthor removes an author.
func (a *Admin) DeleteAuthor(ctx context.Context, id int) error {
	return a.sendJSON(ctx, http.MethodDelete, routeAdminAuthor, authorPath(id), nil, nil)
}

// UploadAuthorPhoto replaces the author's portrait. The file must be an image.
func (a *Admin) UploadAuthorPhoto(ctx context.Context, id int, upload Upload) (*catalog.Author, error) {
	author := &catalog.Author{}
	err := a.upload(ctx, routeAdminAuthorPhoto, authorPath(id)+"/upload-photo", upload, kindImage, catalog.Captions{}, author)
	if err != nil {
		return nil, err
	}
	return author, nil
}

// # Plays

// CreatePlay validates input and creates a play.
func (a *Admin) CreatePlay(ctx context.Context, input catalog.PlayInput) (*catalog.Play, error) {
	if err := a.authorize(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	play := &catalog.Play{}
	if err := a.sendJSON(ctx, http.MethodPost, routeAdminPlays, routeAdminPlays, input, play); err != nil {
		return nil, err
	}
	return play, nil
}

// UpdatePlay validates input and replaces the play's fields.
func (a *Admin) UpdatePlay(ctx context.Context, id int, input catalog.PlayInput) (*catalog.Play, error) {
	if err := a.authorize(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	play := &catalog.Play{}
	if err := a.sendJSON(ctx, http.MethodPut, routeAdminPlay, playPath(id), input, play); err != nil {
		return nil, err
	}
	return play, nil
}

// DeletePlay removes a play with its assets.
func (a *Admin) DeletePlay(ctx context.Context, id int) error {
	return a.sendJSON(ctx, http.MethodDelete, routeAdminPlay, playPath(id), nil, nil)
}

// UploadPlayPDF replaces the play script. The file must be a PDF.
func (a *Admin) UploadPlayPDF(ctx context.Context, id int, upload Upload) (*catalog.Play, error) {
	play := &catalog.Play{}
	if err := a.upload(ctx, routeAdminPlayPDF, playPath(id)+"/upload-pdf", upload, kindPDF, catalog.Captions{}, play); err != nil {
		return nil, err
	}
	return play, nil
}

// UploadPlayImage attaches a stage photograph. Empty captions are omitted.
func (a *Admin) UploadPlayImage(ctx context.Context, id int, upload Upload, captions catalog.Captions) (*catalog.Play, error) {
	play := &catalog.Play{}
	if err := a.upload(ctx, routeAdminPlayImage, playPath(id)+"/upload-image", upload, kindImage, captions, play); err != nil {
		return nil, err
	}
	return play, nil
}

// UploadPlayFile attaches a document of any type. Empty captions are omitted.
func (a *Admin) UploadPlayFile(ctx context.Context, id int, upload Upload, captions catalog.Captions) (*catalog.Play, error) {
	play := &catalog.Play{}
	if err := a.upload(ctx, routeAdminPlayFile, playPath(id)+"/upload-file", upload, kindAny, captions, play); err != nil {
		return nil, err
	}
	return play, nil
}

// UpdatePlayImageCaption changes the captions of one image.
func (a *Admin) UpdatePlayImageCaption(ctx context.Context, playID, imageID int, captions catalog.Captions) (*catalog.PlayImage, error) {
	image := &catalog.PlayImage{}
	if err := a.sendJSON(ctx, http.MethodPatch, routeAdminImage, imagePath(playID, imageID), captions, image); err != nil {
		return nil, err
	}
	return image, nil
}

// UpdatePlayFileCaption changes the captions of one file.
func (a *Admin) UpdatePlayFileCaption(ctx context.Context, playID, fileID int, captions catalog.Captions) (*catalog.PlayFile, error) {
	file := &catalog.PlayFile{}
	if err := a.sendJSON(ctx, http.MethodPatch, routeAdminFile, filePath(playID, fileID), captions, file); err != nil {
		return nil, err
	}
	return file, nil
}

// DeletePlayImage removes one image from a play.
func (a *Admin) DeletePlayImage(ctx context.Context, playID, imageID int) error {
	return a.sendJSON(ctx, http.MethodDelete, routeAdminImage, imagePath(playID, imageID), nil, nil)
}

// DeletePlayFile removes one file from a play.
func (a *Admin) DeletePlayFile(ctx context.Context, playID, fileID int) error {
	return a.sendJSON(ctx, http.MethodDelete, routeAdminFile, filePath(playID, fileID), nil, nil)
}

// # Library

// CreateLiteraryPiece validates input and creates a literary piece.
func (a *Admin) CreateLiteraryPiece(ctx context.Context, input catalog.LiteraryPieceInput) (*catalog.LiteraryPiece, error) {
	if err := a.authorize(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	piece := &catalog.LiteraryPiece{}
	if err := a.sendJSON(ctx, http.MethodPost, routeAdminLibrary, routeAdminLibrary, input, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

// UpdateLiteraryPiece validates input and replaces the piece's fields.
func (a *Admin) UpdateLiteraryPiece(ctx context.Context, id int, input catalog.LiteraryPieceInput) (*catalog.LiteraryPiece, error) {
	if err := a.authorize(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	piece := &catalog.LiteraryPiece{}
	if err := a.sendJSON(ctx, http.MethodPut, routeAdminPiece, piecePath(id), input, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

// DeleteLiteraryPiece removes a literary piece.
func (a *Admin) DeleteLiteraryPiece(ctx context.Context, id int) error {
	return a.sendJSON(ctx, http.MethodDelete, routeAdminPiece, piecePath(id), nil, nil)
}

// UploadLiteraryPiecePDF replaces the piece's PDF. The file must be a PDF.
func (a *Admin) UploadLiteraryPiecePDF(ctx context.Context, id int, upload Upload) (*catalog.LiteraryPiece, error) {
	piece := &catalog.LiteraryPiece{}
	if err := a.upload(ctx, routeAdminPiecePDF, piecePath(id)+"/upload-pdf", upload, kindPDF, catalog.Captions{}, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

// # Paths

func authorPath(id int) string {
	return routeAdminAuthors + "/" + strconv.Itoa(id)
}

func playPath(id int) string {
	return routeAdminPlays + "/" + strconv.Itoa(id)
}

func imagePath(playID, imageID int) string {
	return playPath(playID) + "/images/" + strconv.Itoa(imageID)
}

func filePath(playID, fileID int) string {
	return playPath(playID) + "/files/" + strconv.Itoa(fileID)
}

func piecePath(id int) string {
	return routeAdminLibrary + "/" + strconv.Itoa(id)
}
