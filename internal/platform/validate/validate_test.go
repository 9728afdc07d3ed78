// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/platform/validate"
	"github.com/taibuivan/bgpiesa/pkg/pointer"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name_bg", "Йордан Йовков", false},
		{"empty_string", "name_bg", "", true},
		{"whitespace_only", "name_bg", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_URL checks the photo URL rule.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"absolute_https", "https://cdn.example.bg/a.jpg", true},
		{"site_relative", "/uploads/authors/1.jpg", true},
		{"missing_host", "https://", false},
		{"other_scheme", "ftp://example.bg/a.jpg", false},
		{"bare_word", "photo", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("photo_url", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("title_bg", "Железният светилник").
		MaxLen("title_bg", "Железният светилник", 255).
		OptionalRange("year", pointer.To(1952), 0, 3000).
		OptionalRange("duration", nil, 0, 1000).
		Positive("author_id", 3).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	// Every rule below fails
	err := v.
		Required("title_bg", "").
		OptionalRange("male_participants", pointer.To(-1), 0, 500).
		Positive("author_id", 0).
		OneOf("lang", "de", "bg", "en").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 4 errors
	assert.Len(t, ae.Details, 4)
}
