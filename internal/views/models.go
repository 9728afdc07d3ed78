// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package views

import (
	"time"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/pkg/slice"
)

// # Localized View Models

// AuthorCard is an author as shown in listings.
type AuthorCard struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// AuthorPage is the author detail view.
type AuthorPage struct {
	AuthorCard
	Biography     string     `json:"biography"`
	BiographyHTML string     `json:"biography_html"`
	Plays         []PlayCard `json:"plays"`
}

// PlayCard is a play as shown in listings.
type PlayCard struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Year               *int    `json:"year,omitempty"`
	Genre              *string `json:"genre,omitempty"`
	Theme              *string `json:"theme,omitempty"`
	Duration           *int    `json:"duration,omitempty"`
	MaleParticipants   *int    `json:"male_participants,omitempty"`
	FemaleParticipants *int    `json:"female_participants,omitempty"`
	AuthorID           int     `json:"author_id"`
	AuthorName         string  `json:"author_name,omitempty"`
}

// PlayPage is the play detail view with its assets.
type PlayPage struct {
	PlayCard
	DescriptionHTML string      `json:"description_html"`
	PDFURL          string      `json:"pdf_url,omitempty"`
	Images          []ImageView `json:"images"`
	Files           []FileView  `json:"files"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ImageView is a captioned stage photograph.
type ImageView struct {
	ID      int    `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// FileView is a captioned play attachment with its inline view link.
type FileView struct {
	ID      int    `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// PieceCard is a literary piece as shown in listings.
type PieceCard struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AuthorID    int    `json:"author_id"`
	AuthorName  string `json:"author_name,omitempty"`
	PlayID      *int   `json:"play_id,omitempty"`
	PlayTitle   string `json:"play_title,omitempty"`
	HasPDF      bool   `json:"has_pdf"`
}

// PiecePage is the literary piece detail view.
type PiecePage struct {
	PieceCard
	DescriptionHTML string `json:"description_html"`
	PDFURL          string `json:"pdf_url,omitempty"`
}

// HomePage is the landing view.
type HomePage struct {
	Authors []AuthorCard `json:"authors"`
	Plays   []PlayCard   `json:"plays"`
}

// Listing wraps a result list with its notice for an empty result.
type Listing[T any] struct {
	Items  []T    `json:"items"`
	Notice string `json:"notice,omitempty"`
}

// LibraryOptions are the selectable values of the library filter panel.
type LibraryOptions struct {
	Authors []Choice `json:"authors"`
	Plays   []Choice `json:"plays"`
}

// Choice is one entry of a selector; ID 0 stands for "all".
type Choice struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// PlayOptionsView are the selectable values of the plays filter panel.
type PlayOptionsView struct {
	catalog.PlayOptions
	Authors   []Choice `json:"authors"`
	AllGenres string   `json:"all_genres_label"`
	AllThemes string   `json:"all_themes_label"`
}

// # Builders

func (h *Handler) authorCard(author catalog.Author, lang i18n.Lang) AuthorCard {
	card := AuthorCard{ID: author.ID, Name: author.Name(lang)}
	if author.PhotoURL != nil {
		card.PhotoURL = h.catalog.AssetURL(*author.PhotoURL)
	}
	return card
}

func (h *Handler) authorCards(authors []catalog.Author, lang i18n.Lang) []AuthorCard {
	return slice.Map(authors, func(author catalog.Author) AuthorCard {
		return h.authorCard(author, lang)
	})
}

func (h *Handler) playCard(play catalog.Play, lang i18n.Lang) PlayCard {
	card := PlayCard{
		ID:                 play.ID,
		Title:              play.Title(lang),
		Description:        h.renderer.Plain(play.Description(lang)),
		Year:               play.Year,
		Genre:              play.Genre,
		Theme:              play.Theme,
		Duration:           play.Duration,
		MaleParticipants:   play.MaleParticipants,
		FemaleParticipants: play.FemaleParticipants,
		AuthorID:           play.AuthorID,
	}
	if play.Author != nil {
		card.AuthorName = play.Author.Name(lang)
	}
	return card
}

func (h *Handler) playCards(plays []catalog.Play, lang i18n.Lang) []PlayCard {
	return slice.Map(plays, func(play catalog.Play) PlayCard {
		return h.playCard(play, lang)
	})
}

func (h *Handler) playPage(play catalog.Play, lang i18n.Lang) (PlayPage, error) {
	descriptionHTML, err := h.renderer.HTML(play.Description(lang))
	if err != nil {
		return PlayPage{}, err
	}

	page := PlayPage{
		PlayCard:        h.playCard(play, lang),
		DescriptionHTML: descriptionHTML,
		Images:          make([]ImageView, 0, len(play.Images)),
		Files:           make([]FileView, 0, len(play.Files)),
		UpdatedAt:       play.UpdatedAt.Time,
	}
	if play.HasPDF() {
		page.PDFURL = h.catalog.PlayPDFURL(play.ID)
	}
	for _, image := range play.Images {
		page.Images = append(page.Images, ImageView{ID: image.ID, URL: h.catalog.AssetURL(image.ImageURL), Caption: image.Caption(lang)})
	}
	for _, file := range play.Files {
		page.Files = append(page.Files, FileView{ID: file.ID, URL: h.catalog.PlayFileViewURL(play.ID, file.ID), Caption: file.Caption(lang)})
	}
	return page, nil
}

func (h *Handler) pieceCard(piece catalog.LiteraryPiece, lang i18n.Lang) PieceCard {
	card := PieceCard{
		ID:          piece.ID,
		Title:       piece.Title(lang),
		Description: h.renderer.Plain(piece.Description(lang)),
		AuthorID:    piece.AuthorID,
		PlayID:      piece.PlayID,
		HasPDF:      piece.HasPDF(),
	}
	if piece.Author != nil {
		card.AuthorName = piece.Author.Name(lang)
	}
	if piece.Play != nil {
		card.PlayTitle = piece.Play.Title(lang)
	}
	return card
}

func (h *Handler) pieceCards(pieces []catalog.LiteraryPiece, lang i18n.Lang) []PieceCard {
	return slice.Map(pieces, func(piece catalog.LiteraryPiece) PieceCard {
		return h.pieceCard(piece, lang)
	})
}

func authorChoices(authors []catalog.Author, lang i18n.Lang, allLabel string) []Choice {
	choices := make([]Choice, 0, len(authors)+1)
	choices = append(choices, Choice{Label: allLabel})
	for _, author := range authors {
		choices = append(choices, Choice{ID: author.ID, Label: author.Name(lang)})
	}
	return choices
}

func playChoices(plays []catalog.Play, lang i18n.Lang, allLabel string) []Choice {
	choices := make([]Choice, 0, len(plays)+1)
	choices = append(choices, Choice{Label: allLabel})
	for _, play := range plays {
		choices = append(choices, Choice{ID: play.ID, Label: play.Title(lang)})
	}
	return choices
}

func listing[T any](items []T, lang i18n.Lang) Listing[T] {
	if len(items) == 0 {
		return Listing[T]{Items: []T{}, Notice: i18n.T(lang, i18n.MsgNoResults)}
	}
	return Listing[T]{Items: items}
}
