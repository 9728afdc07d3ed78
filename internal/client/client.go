// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the request/response layer to the catalog backend.

Core Responsibility:

  - Reads: list and fetch authors, plays and literary pieces, with the query
    parameters produced by package catalog.
  - Login: exchange the admin password for a bearer [session.Credential].
  - Admin: mutations and asset uploads, available only through [Client.Admin]
    with a valid credential.

Failures are not interpreted: any non-success status becomes one
[*RequestError] carrying the response body, and transport failures are
returned wrapped.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/session"
)

// DefaultTimeout bounds a single backend call when no HTTP client is supplied.
const DefaultTimeout = 30 * time.Second

// # Backend Routes

// Route templates double as metric labels.
const (
	routeAuthors       = "/api/authors"
	routeAuthor        = "/api/authors/{id}"
	routePlays         = "/api/plays"
	routePlay          = "/api/plays/{id}"
	routeLibrary       = "/api/library"
	routeLiteraryPiece = "/api/library/{id}"
	routeLogin         = "/api/admin/login"
	routeHealth        = "/api/health"
	routeDownload      = "download"
)

// # Contracts

// Observer receives one observation per backend call. A status of 0 means no
// response arrived.
type Observer interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Options configures a [Client].
type Options struct {
	// HTTPClient performs the requests. Defaults to a client with Timeout.
	HTTPClient *http.Client

	// Timeout is used when HTTPClient is nil. Defaults to [DefaultTimeout].
	Timeout time.Duration

	// Observer records request metrics. Optional.
	Observer Observer

	// Logger receives request failures. Defaults to [slog.Default].
	Logger *slog.Logger

	// Now is the clock used for credential expiry. Defaults to [time.Now].
	Now func() time.Time
}

// Client talks to the catalog backend. It is safe for concurrent use.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a [Client] for the backend at baseURL.
func New(baseURL string, options Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: invalid base URL %q", baseURL)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		timeout := options.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := options.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:  parsed,
		http:     httpClient,
		observer: options.Observer,
		logger:   logger,
		now:      now,
	}, nil
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// # Reads

// ListAuthors returns the authors matching params (see [catalog.AuthorCriteria.Query]).
func (c *Client) ListAuthors(ctx context.Context, params catalog.Params) ([]catalog.Author, error) {
	var authors []catalog.Author
	err := c.send(ctx, call{method: http.MethodGet, route: routeAuthors, path: routeAuthors, query: params}, &authors)
	return authors, err
}

// GetAuthor returns one author with its plays, optionally narrowed by a
// search over those plays.
func (c *Client) GetAuthor(ctx context.Context, id int, playSearch string) (*catalog.AuthorDetail, error) {
	var query catalog.Params
	if term := strings.TrimSpace(playSearch); term != "" {
		query = catalog.Params{{Key: catalog.ParamPlaySearch, Value: term}}
	}

	author := &catalog.AuthorDetail{}
	err := c.send(ctx, call{method: http.MethodGet, route: routeAuthor, path: "/api/authors/" + strconv.Itoa(id), query: query}, author)
	if err != nil {
		return nil, err
	}
	return author, nil
}

// ListPlays returns the plays matching params (see [catalog.PlayCriteria.Query]).
func (c *Client) ListPlays(ctx context.Context, params catalog.Params) ([]catalog.Play, error) {
	var plays []catalog.Play
	err := c.send(ctx, call{method: http.MethodGet, route: routePlays, path: routePlays, query: params}, &plays)
	return plays, err
}

// GetPlay returns one play with its author, images and files.
func (c *Client) GetPlay(ctx context.Context, id int) (*catalog.Play, error) {
	play := &catalog.Play{}
	if err := c.send(ctx, call{method: http.MethodGet, route: routePlay, path: "/api/plays/" + strconv.Itoa(id)}, play); err != nil {
		return nil, err
	}
	return play, nil
}

// ListLibrary returns the literary pieces matching params (see [catalog.LibraryCriteria.Query]).
func (c *Client) ListLibrary(ctx context.Context, params catalog.Params) ([]catalog.LiteraryPiece, error) {
	var pieces []catalog.LiteraryPiece
	err := c.send(ctx, call{method: http.MethodGet, route: routeLibrary, path: routeLibrary, query: params}, &pieces)
	return pieces, err
}

// GetLiteraryPiece returns one literary piece with its author and play.
func (c *Client) GetLiteraryPiece(ctx context.Context, id int) (*catalog.LiteraryPiece, error) {
	piece := &catalog.LiteraryPiece{}
	if err := c.send(ctx, call{method: http.MethodGet, route: routeLiteraryPiece, path: "/api/library/" + strconv.Itoa(id)}, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

// # Health

// Health is the backend's liveness answer.
type Health struct {
	Status string `json:"status"`
	App    string `json:"app"`
}

// Health reports whether the backend is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	health := &Health{}
	if err := c.send(ctx, call{method: http.MethodGet, route: routeHealth, path: routeHealth}, health); err != nil {
		return nil, err
	}
	return health, nil
}

// # Authentication

type loginRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges the admin password for a bearer credential.
func (c *Client) Login(ctx context.Context, password string) (*session.Credential, error) {
	body, err := jsonBody(loginRequest{Password: password})
	if err != nil {
		return nil, err
	}

	var token tokenResponse
	if err := c.send(ctx, call{method: http.MethodPost, route: routeLogin, path: routeLogin, body: body, contentType: contentTypeJSON}, &token); err != nil {
		return nil, err
	}

	if strings.TrimSpace(token.AccessToken) == "" {
		return nil, errors.New("client: login response carries no access token")
	}

	return session.NewCredential(token.AccessToken, token.TokenType), nil
}

// # Downloads

// PlayPDFURL is the download link of a play script.
func (c *Client) PlayPDFURL(playID int) string {
	return c.absolute("/api/plays/" + strconv.Itoa(playID) + "/download-pdf")
}

// PlayFileViewURL is the inline view link of a play attachment.
func (c *Client) PlayFileViewURL(playID, fileID int) string {
	return c.absolute("/api/plays/" + strconv.Itoa(playID) + "/files/" + strconv.Itoa(fileID) + "/view")
}

// LiteraryPiecePDFURL is the download link of a literary piece.
func (c *Client) LiteraryPiecePDFURL(pieceID int) string {
	return c.absolute("/api/library/" + strconv.Itoa(pieceID) + "/download-pdf")
}

// AssetURL resolves a backend-relative asset path (photos, images) to an
// absolute URL. Absolute inputs are returned unchanged.
func (c *Client) AssetURL(path string) string {
	if path == "" {
		return ""
	}
	if parsed, err := url.Parse(path); err == nil && parsed.IsAbs() {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.absolute(path)
}

// Download is an open response body of a backend file.
type Download struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// Open starts downloading rawURL, which must point at this backend.
func (c *Client) Open(ctx context.Context, rawURL string) (*Download, error) {
	if !strings.HasPrefix(rawURL, c.baseURL.String()+"/") {
		return nil, fmt.Errorf("client: %q is not a backend URL", rawURL)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}

	response, err := c.do(request, routeDownload)
	if err != nil {
		return nil, err
	}

	return &Download{
		Body:        response.Body,
		Size:        response.ContentLength,
		ContentType: response.Header.Get(constants.HeaderContentType),
	}, nil
}

// # Transport

const contentTypeJSON = "application/json"

// call describes one backend request.
type call struct {
	method      string
	route       string
	path        string
	query       catalog.Params
	body        io.Reader
	contentType string
	credential  *session.Credential
}

// send performs c and decodes a JSON response into out. A 204 response, or a
// nil out, skips decoding.
func (c *Client) send(ctx context.Context, op call, out any) error {
	target := c.absolute(op.path)
	if encoded := op.query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	request, err := http.NewRequestWithContext(ctx, op.method, target, op.body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}

	request.Header.Set("Accept", contentTypeJSON)
	if op.contentType != "" {
		request.Header.Set(constants.HeaderContentType, op.contentType)
	}
	if op.credential != nil {
		request.Header.Set(constants.HeaderAuthorization, op.credential.Header())
	}

	response, err := c.do(request, op.route)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", op.method, op.route, err)
	}

	return nil
}

// do executes request, observes it, and turns non-success statuses into a
// [*RequestError]. On success the caller owns the response body.
func (c *Client) do(request *http.Request, route string) (*http.Response, error) {
	startTime := time.Now()
	response, err := c.http.Do(request)
	if err != nil {
		c.observe(request.Method, route, 0, startTime)
		c.logger.WarnContext(request.Context(), "catalog_request_failed",
			slog.String("method", request.Method),
			slog.String("route", route),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("client: %s %s: %w", request.Method, route, err)
	}
	c.observe(request.Method, route, response.StatusCode, startTime)

	if response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices {
		return response, nil
	}

	defer response.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))

	c.logger.InfoContext(request.Context(), "catalog_request_rejected",
		slog.String("method", request.Method),
		slog.String("route", route),
		slog.Int("status", response.StatusCode),
	)

	return nil, &RequestError{Status: response.StatusCode, Body: string(body)}
}

func (c *Client) observe(method, route string, status int, startTime time.Time) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, route, status, time.Since(startTime))
	}
}

func (c *Client) absolute(path string) string {
	return c.baseURL.String() + path
}

func jsonBody(payload any) (io.Reader, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("client: encode body: %w", err)
	}
	return bytes.NewReader(data), nil
}
