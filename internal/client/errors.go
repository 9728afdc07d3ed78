// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"encoding/json"
	"errors"
	"strings"
)

// FallbackMessage is shown when a failed response carries no body.
const FallbackMessage = "Request failed."

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// ErrNoCredential is returned by admin operations when the credential is
// missing or expired. No request is sent.
var ErrNoCredential = errors.New("client: admin credential missing or expired")

// RequestError is a non-success response from the backend. The status is
// carried for logging only; callers surface [RequestError.Message].
type RequestError struct {
	Status int
	Body   string
}

// Error implements error.
func (e *RequestError) Error() string {
	return e.Message()
}

// Message is the text to show the user: the backend "detail" field when the
// body is a JSON error, otherwise the raw body, otherwise [FallbackMessage].
func (e *RequestError) Message() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return FallbackMessage
	}

	var envelope struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err == nil {
		if detail, ok := envelope.Detail.(string); ok && strings.TrimSpace(detail) != "" {
			return detail
		}
	}

	return body
}

// AsRequestError unwraps err into a [*RequestError].
func AsRequestError(err error) (*RequestError, bool) {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr, true
	}
	return nil, false
}
