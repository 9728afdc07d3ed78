// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the theatre catalog entities served by the backend and
the client-side criteria used to query them.

Core Responsibility:

  - Entities: Author, Play (with images and files) and LiteraryPiece, mirroring
    the backend JSON representation. They are owned by the backend and are
    read-only here.
  - Criteria: filter selections for each listing, using tagged optional values.
  - Query building: the canonical, ordered query-parameter form of a criteria.
  - Options: selectable filter values derived from an unfiltered dataset.

Every bilingual field is a Bulgarian value plus an optional English value,
resolved for display by package i18n.
*/
package catalog

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/bgpiesa/internal/i18n"
)

// # Timestamps

// timestampLayouts are the formats the backend emits. Naive UTC datetimes
// (no offset) are common.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Timestamp is a [time.Time] that tolerates offset-less datetimes.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements [json.Unmarshaler].
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}

	raw := strings.Trim(string(data), `"`)
	if raw == "" {
		ts.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			ts.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("catalog: unrecognised timestamp %q", raw)
}

// MarshalJSON implements [json.Marshaler].
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.UTC().Format(time.RFC3339) + `"`), nil
}

// # Core Entities

// Author is a playwright or writer in the catalog.
type Author struct {
	ID          int       `json:"id"`
	NameBG      string    `json:"name_bg"`
	NameEN      *string   `json:"name_en"`
	BiographyBG string    `json:"biography_bg"`
	BiographyEN *string   `json:"biography_en"`
	PhotoURL    *string   `json:"photo_url"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// Name returns the display name in lang.
func (a Author) Name(lang i18n.Lang) string {
	return i18n.Resolve(a.NameBG, a.NameEN, lang)
}

// Biography returns the display biography in lang.
func (a Author) Biography(lang i18n.Lang) string {
	return i18n.Resolve(a.BiographyBG, a.BiographyEN, lang)
}

// AuthorDetail is an [Author] with the plays it owns.
type AuthorDetail struct {
	Author
	Plays []Play `json:"plays"`
}

// PlayImage is a stage photograph attached to a [Play].
type PlayImage struct {
	ID        int     `json:"id"`
	ImageURL  string  `json:"image_url"`
	CaptionBG *string `json:"caption_bg"`
	CaptionEN *string `json:"caption_en"`
}

// Caption returns the display caption in lang.
func (i PlayImage) Caption(lang i18n.Lang) string {
	return i18n.ResolveOptional(i.CaptionBG, i.CaptionEN, lang)
}

// PlayFile is a generic document attached to a [Play].
type PlayFile struct {
	ID        int     `json:"id"`
	FileURL   string  `json:"file_url"`
	CaptionBG *string `json:"caption_bg"`
	CaptionEN *string `json:"caption_en"`
}

// Caption returns the display caption in lang.
func (f PlayFile) Caption(lang i18n.Lang) string {
	return i18n.ResolveOptional(f.CaptionBG, f.CaptionEN, lang)
}

// Play is a theatrical play with optional staging metadata.
type Play struct {
	ID                 int         `json:"id"`
	TitleBG            string      `json:"title_bg"`
	TitleEN            *string     `json:"title_en"`
	DescriptionBG      string      `json:"description_bg"`
	DescriptionEN      *string     `json:"description_en"`
	Year               *int        `json:"year"`
	Genre              *string     `json:"genre"`
	Theme              *string     `json:"theme"`
	Duration           *int        `json:"duration"` // minutes
	MaleParticipants   *int        `json:"male_participants"`
	FemaleParticipants *int        `json:"female_participants"`
	AuthorID           int         `json:"author_id"`
	Author             *Author     `json:"author,omitempty"`
	PDFPath            *string     `json:"pdf_path"`
	Images             []PlayImage `json:"images,omitempty"`
	Files              []PlayFile  `json:"files,omitempty"`
	CreatedAt          Timestamp   `json:"created_at"`
	UpdatedAt          Timestamp   `json:"updated_at"`
}

// Title returns the display title in lang.
func (p Play) Title(lang i18n.Lang) string {
	return i18n.Resolve(p.TitleBG, p.TitleEN, lang)
}

// Description returns the display description in lang.
func (p Play) Description(lang i18n.Lang) string {
	return i18n.Resolve(p.DescriptionBG, p.DescriptionEN, lang)
}

// HasPDF reports whether a script has been uploaded.
func (p Play) HasPDF() bool {
	return p.PDFPath != nil && *p.PDFPath != ""
}

// LiteraryPiece is a library entry, optionally tied to a [Play].
type LiteraryPiece struct {
	ID            int       `json:"id"`
	TitleBG       string    `json:"title_bg"`
	TitleEN       *string   `json:"title_en"`
	DescriptionBG string    `json:"description_bg"`
	DescriptionEN *string   `json:"description_en"`
	AuthorID      int       `json:"author_id"`
	Author        *Author   `json:"author,omitempty"`
	PlayID        *int      `json:"play_id"`
	Play          *Play     `json:"play,omitempty"`
	PDFPath       *string   `json:"pdf_path"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

// Title returns the display title in lang.
func (l LiteraryPiece) Title(lang i18n.Lang) string {
	return i18n.Resolve(l.TitleBG, l.TitleEN, lang)
}

// Description returns the display description in lang.
func (l LiteraryPiece) Description(lang i18n.Lang) string {
	return i18n.Resolve(l.DescriptionBG, l.DescriptionEN, lang)
}

// HasPDF reports whether a PDF has been uploaded.
func (l LiteraryPiece) HasPDF() bool {
	return l.PDFPath != nil && *l.PDFPath != ""
}

// # Admin Inputs

// AuthorInput is the create/update payload for an [Author].
type AuthorInput struct {
	NameBG      string  `json:"name_bg" yaml:"name_bg"`
	NameEN      *string `json:"name_en,omitempty" yaml:"name_en,omitempty"`
	BiographyBG string  `json:"biography_bg" yaml:"biography_bg"`
	BiographyEN *string `json:"biography_en,omitempty" yaml:"biography_en,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty" yaml:"photo_url,omitempty"`
}

// PlayInput is the create/update payload for a [Play].
type PlayInput struct {
	TitleBG            string   `json:"title_bg" yaml:"title_bg"`
	TitleEN            *string  `json:"title_en,omitempty" yaml:"title_en,omitempty"`
	DescriptionBG      string   `json:"description_bg" yaml:"description_bg"`
	DescriptionEN      *string  `json:"description_en,omitempty" yaml:"description_en,omitempty"`
	Year               *int     `json:"year,omitempty" yaml:"year,omitempty"`
	Genre              *string  `json:"genre,omitempty" yaml:"genre,omitempty"`
	Theme              *string  `json:"theme,omitempty" yaml:"theme,omitempty"`
	Duration           *int     `json:"duration,omitempty" yaml:"duration,omitempty"`
	MaleParticipants   *int     `json:"male_participants,omitempty" yaml:"male_participants,omitempty"`
	FemaleParticipants *int     `json:"female_participants,omitempty" yaml:"female_participants,omitempty"`
	AuthorID           int      `json:"author_id" yaml:"author_id"`
	ImageURLs          []string `json:"image_urls,omitempty" yaml:"image_urls,omitempty"`
}

// LiteraryPieceInput is the create/update payload for a [LiteraryPiece].
type LiteraryPieceInput struct {
	TitleBG       string  `json:"title_bg" yaml:"title_bg"`
	TitleEN       *string `json:"title_en,omitempty" yaml:"title_en,omitempty"`
	DescriptionBG string  `json:"description_bg" yaml:"description_bg"`
	DescriptionEN *string `json:"description_en,omitempty" yaml:"description_en,omitempty"`
	AuthorID      int     `json:"author_id" yaml:"author_id"`
	PlayID        *int    `json:"play_id,omitempty" yaml:"play_id,omitempty"`
}

// Captions is the optional bilingual caption of an uploaded image or file.
type Captions struct {
	CaptionBG *string `json:"caption_bg,omitempty" yaml:"caption_bg,omitempty"`
	CaptionEN *string `json:"caption_en,omitempty" yaml:"caption_en,omitempty"`
}

// # Field Names

// Field names shared by validation and admin forms.
const (
	FieldNameBG        = "name_bg"
	FieldBiographyBG   = "biography_bg"
	FieldPhotoURL      = "photo_url"
	FieldTitleBG       = "title_bg"
	FieldDescriptionBG = "description_bg"
	FieldYear          = "year"
	FieldDuration      = "duration"
	FieldMale          = "male_participants"
	FieldFemale        = "female_participants"
	FieldAuthorID      = "author_id"
	FieldPlayID        = "play_id"
	FieldFile          = "file"
)
