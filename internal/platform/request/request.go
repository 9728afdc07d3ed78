// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the router's parameter extraction and common body decoding
patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
	"github.com/taibuivan/bgpiesa/internal/platform/ctxutil"
	"github.com/taibuivan/bgpiesa/internal/platform/validate"
	"github.com/taibuivan/bgpiesa/internal/session"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
IntParam retrieves a named URL parameter as a positive integer ID.

Returns:
  - int: the parsed value
  - error: apperr validation error naming the parameter
*/
func IntParam(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, validate.RequiredError(name, "must be a positive integer")
	}

	return value, nil
}

// Language returns the display language resolved by the Language middleware.
func Language(request *http.Request) i18n.Lang {
	return ctxutil.GetLanguage(request.Context())
}

/*
Credential extracts the admin credential from the request context.

Returns nil outside the admin route group.
*/
func Credential(request *http.Request) *session.Credential {
	return ctxutil.GetCredential(request.Context())
}

/*
RequiredCredential ensures the request carries an admin credential.

Returns:
  - *session.Credential: the credential forwarded to the backend
  - error: apperr.Unauthorized when missing
*/
func RequiredCredential(request *http.Request) (*session.Credential, error) {
	credential := ctxutil.GetCredential(request.Context())
	if credential == nil {
		return nil, apperr.Unauthorized("Admin login required")
	}
	return credential, nil
}
