// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package views

import (
	"net/http"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	requestutil "github.com/taibuivan/bgpiesa/internal/platform/request"
	"github.com/taibuivan/bgpiesa/internal/platform/respond"
	"github.com/taibuivan/bgpiesa/pkg/convert"
)

// # Home

func (h *Handler) home(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	lang := requestutil.Language(request)

	authors, err := h.catalog.ListAuthors(ctx, nil)
	if err != nil {
		fail(writer, request, err)
		return
	}

	plays, err := h.catalog.ListPlays(ctx, nil)
	if err != nil {
		fail(writer, request, err)
		return
	}

	respond.OK(writer, HomePage{
		Authors: h.authorCards(teaser(authors), lang),
		Plays:   h.playCards(teaser(plays), lang),
	})
}

func teaser[T any](items []T) []T {
	if len(items) > homeTeaserSize {
		return items[:homeTeaserSize]
	}
	if items == nil {
		return []T{}
	}
	return items
}

// # Authors

func (h *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	criteria := catalog.AuthorCriteria{Search: request.URL.Query().Get(catalog.ParamSearch)}

	authors, err := h.catalog.ListAuthors(request.Context(), criteria.Query())
	if err != nil {
		fail(writer, request, err)
		return
	}

	lang := requestutil.Language(request)
	respond.OK(writer, listing(h.authorCards(authors, lang), lang))
}

func (h *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.IntParam(request, "id")
	if err != nil {
		fail(writer, request, err)
		return
	}

	author, err := h.catalog.GetAuthor(request.Context(), authorID, request.URL.Query().Get(catalog.ParamPlaySearch))
	if err != nil {
		fail(writer, request, err)
		return
	}

	lang := requestutil.Language(request)
	biographyHTML, err := h.renderer.HTML(author.Biography(lang))
	if err != nil {
		fail(writer, request, apperr.Internal(err))
		return
	}

	plays := h.playCards(author.Plays, lang)
	if plays == nil {
		plays = []PlayCard{}
	}

	respond.OK(writer, AuthorPage{
		AuthorCard:    h.authorCard(author.Author, lang),
		Biography:     h.renderer.Plain(author.Biography(lang)),
		BiographyHTML: biographyHTML,
		Plays:         plays,
	})
}

// # Plays

// listPlays relays the criteria as given. Without the observed range at hand,
// full-range bounds are not dropped here.
func (h *Handler) listPlays(writer http.ResponseWriter, request *http.Request) {
	criteria := catalog.PlayCriteriaFromQuery(request.URL.Query())

	plays, err := h.catalog.ListPlays(request.Context(), criteria.Query(nil))
	if err != nil {
		fail(writer, request, err)
		return
	}

	lang := requestutil.Language(request)
	respond.OK(writer, listing(h.playCards(plays, lang), lang))
}

// playOptions derives the filter panel from the unfiltered dataset.
func (h *Handler) playOptions(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	plays, err := h.catalog.ListPlays(ctx, nil)
	if err != nil {
		fail(writer, request, err)
		return
	}

	authors, err := h.catalog.ListAuthors(ctx, nil)
	if err != nil {
		fail(writer, request, err)
		return
	}

	lang := requestutil.Language(request)
	respond.OK(writer, PlayOptionsView{
		PlayOptions: catalog.DerivePlayOptions(plays, h.now()),
		Authors:     authorChoices(authors, lang, i18n.T(lang, i18n.MsgAllAuthors)),
		AllGenres:   i18n.T(lang, i18n.MsgAllGenres),
		AllThemes:   i18n.T(lang, i18n.MsgAllThemes),
	})
}

func (h *Handler) getPlay(writer http.ResponseWriter, request *http.Request) {
	playID, err := requestutil.IntParam(request, "id")
	if err != nil {
		fail(writer, request, err)
		return
	}

	play, err := h.catalog.GetPlay(request.Context(), playID)
	if err != nil {
		fail(writer, request, err)
		return
	}

	page, err := h.playPage(*play, requestutil.Language(request))
	if err != nil {
		fail(writer, request, apperr.Internal(err))
		return
	}
	respond.OK(writer, page)
}

// # Library

func (h *Handler) listLibrary(writer http.ResponseWriter, request *http.Request) {
	criteria := catalog.LibraryCriteriaFromQuery(request.URL.Query())

	pieces, err := h.catalog.ListLibrary(request.Context(), criteria.Query())
	if err != nil {
		fail(writer, request, err)
		return
	}

	lang := requestutil.Language(request)
	respond.OK(writer, listing(h.pieceCards(pieces, lang), lang))
}

// libraryOptions lists every author and the plays of the selected author.
func (h *Handler) libraryOptions(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	authors, err := h.catalog.ListAuthors(ctx, nil)
	if err != nil {
		fail(writer, request, err)
		return
	}

	plays, err := h.catalog.ListPlays(ctx, nil)
	if err != nil {
		fail(writer, request, err)
		return
	}

	lang := requestutil.Language(request)
	authorID := convert.ToOptionalInt(request.URL.Query().Get(catalog.ParamAuthorID))

	respond.OK(writer, LibraryOptions{
		Authors: authorChoices(authors, lang, i18n.T(lang, i18n.MsgAllAuthors)),
		Plays:   playChoices(catalog.PlaysByAuthor(plays, authorID), lang, i18n.T(lang, i18n.MsgAllPlays)),
	})
}

func (h *Handler) getPiece(writer http.ResponseWriter, request *http.Request) {
	pieceID, err := requestutil.IntParam(request, "id")
	if err != nil {
		fail(writer, request, err)
		return
	}

	piece, err := h.catalog.GetLiteraryPiece(request.Context(), pieceID)
	if err != nil {
		fail(writer, request, err)
		return
	}

	lang := requestutil.Language(request)
	descriptionHTML, err := h.renderer.HTML(piece.Description(lang))
	if err != nil {
		fail(writer, request, apperr.Internal(err))
		return
	}

	page := PiecePage{PieceCard: h.pieceCard(*piece, lang), DescriptionHTML: descriptionHTML}
	if piece.HasPDF() {
		page.PDFURL = h.catalog.LiteraryPiecePDFURL(piece.ID)
	}
	respond.OK(writer, page)
}
