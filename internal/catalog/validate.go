// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"github.com/taibuivan/bgpiesa/internal/platform/validate"
)

// # Input Limits

const (
	maxNameLength  = 255
	maxTitleLength = 500
	maxYear        = 9999
	maxDuration    = 24 * 60
	maxCast        = 500
)

// Validate checks the fields the backend requires of an author.
func (in AuthorInput) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldNameBG, in.NameBG).MaxLen(FieldNameBG, in.NameBG, maxNameLength)
	validator.Required(FieldBiographyBG, in.BiographyBG)
	if in.PhotoURL != nil && *in.PhotoURL != "" {
		validator.URL(FieldPhotoURL, *in.PhotoURL)
	}

	return validator.Err()
}

// Validate checks the fields the backend requires of a play.
func (in PlayInput) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldTitleBG, in.TitleBG).MaxLen(FieldTitleBG, in.TitleBG, maxTitleLength)
	validator.Required(FieldDescriptionBG, in.DescriptionBG)
	validator.Positive(FieldAuthorID, in.AuthorID)
	validator.OptionalRange(FieldYear, in.Year, 1, maxYear)
	validator.OptionalRange(FieldDuration, in.Duration, 0, maxDuration)
	validator.OptionalRange(FieldMale, in.MaleParticipants, 0, maxCast)
	validator.OptionalRange(FieldFemale, in.FemaleParticipants, 0, maxCast)

	return validator.Err()
}

// Validate checks the fields the backend requires of a literary piece.
func (in LiteraryPieceInput) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldTitleBG, in.TitleBG).MaxLen(FieldTitleBG, in.TitleBG, maxTitleLength)
	validator.Required(FieldDescriptionBG, in.DescriptionBG)
	validator.Positive(FieldAuthorID, in.AuthorID)
	if in.PlayID != nil {
		validator.Positive(FieldPlayID, *in.PlayID)
	}

	return validator.Err()
}
