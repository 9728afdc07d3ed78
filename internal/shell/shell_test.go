// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/session"
	"github.com/taibuivan/bgpiesa/internal/shell"
	"github.com/taibuivan/bgpiesa/pkg/pointer"
)

var pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// script feeds fixed lines to the shell.
type script struct {
	lines    []string
	password string
}

func (s *script) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *script) PasswordPrompt(string) (string, error) { return s.password, nil }
func (s *script) AppendHistory(string)                  {}

type memoryCredentials struct {
	credential *session.Credential
}

func (m *memoryCredentials) Load() (*session.Credential, error) {
	if m.credential == nil {
		return nil, session.ErrNotFound
	}
	return m.credential, nil
}

func (m *memoryCredentials) Save(credential *session.Credential) error {
	m.credential = credential
	return nil
}

func (m *memoryCredentials) Clear() error {
	m.credential = nil
	return nil
}

// backend records every request it receives.
type backend struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

func (b *backend) record(request *http.Request) {
	body, _ := io.ReadAll(request.Body)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, request)
	b.bodies = append(b.bodies, body)
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func (b *backend) last() (*http.Request, []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[len(b.requests)-1], b.bodies[len(b.bodies)-1]
}

func writeJSON(writer http.ResponseWriter, payload any) {
	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(payload)
}

func newShell(t *testing.T, handler http.HandlerFunc, credentials shell.CredentialStore) (*shell.Shell, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, client.Options{})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return shell.New(shell.Options{
		Client:      c,
		Credentials: credentials,
		Language:    i18n.Bulgarian,
		Out:         out,
	}), out
}

func run(t *testing.T, s *shell.Shell, lines ...string) {
	t.Helper()
	require.NoError(t, s.Run(context.Background(), &script{lines: lines, password: "secret"}))
}

func catalogBackend(recorder *backend) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		recorder.record(request)

		switch request.URL.Path {
		case "/api/authors":
			writeJSON(writer, []catalog.Author{
				{ID: 1, NameBG: "Иван Вазов", NameEN: pointer.To("Ivan Vazov")},
				{ID: 2, NameBG: "Йордан Йовков"},
			})
		case "/api/plays":
			writeJSON(writer, []catalog.Play{
				{ID: 3, TitleBG: "Хъшове", TitleEN: pointer.To("The Outlaws"), AuthorID: 1, Genre: pointer.To("Драма"), Year: pointer.To(1894)},
				{ID: 4, TitleBG: "Албена", AuthorID: 2, Genre: pointer.To("Драма"), Year: pointer.To(1930)},
			})
		case "/api/library":
			writeJSON(writer, []catalog.LiteraryPiece{})
		case "/api/admin/authors":
			writeJSON(writer, catalog.Author{ID: 9, NameBG: "Алеко Константинов"})
		case "/api/admin/login":
			writeJSON(writer, map[string]string{"access_token": "admin-token", "token_type": "bearer"})
		case "/api/plays/3/download-pdf":
			writer.Header().Set("Content-Type", "application/pdf")
			_, _ = writer.Write([]byte("%PDF-1.4 script"))
		default:
			writer.WriteHeader(http.StatusNoContent)
		}
	}
}

/*
TestAuthors prints names in the display language.
*/
func TestAuthors(t *testing.T) {
	s, out := newShell(t, catalogBackend(&backend{}), nil)

	run(t, s, "authors", "lang en", "authors")

	assert.Contains(t, out.String(), "Иван Вазов")
	assert.Contains(t, out.String(), "Ivan Vazov")
	assert.Contains(t, out.String(), "Йордан Йовков")
}

/*
TestPlays_FilterLifecycle edits pending filters without fetching, applies them
in one request, and clears them back to the baseline.
*/
func TestPlays_FilterLifecycle(t *testing.T) {
	recorder := &backend{}
	s, out := newShell(t, catalogBackend(recorder), nil)

	// 1. Opening the listing loads the options and the baseline
	run(t, s, "plays")
	require.Equal(t, 2, recorder.count())
	request, _ := recorder.last()
	assert.Empty(t, request.URL.RawQuery)
	assert.Contains(t, out.String(), "Хъшове")

	// 2. Pending edits never fetch
	run(t, s, "set genre Драма", "set year_min 1900", "pending")
	assert.Equal(t, 2, recorder.count())
	assert.Contains(t, out.String(), "pending: genre=Драма year_min=1900")
	assert.Contains(t, out.String(), "(not applied)")

	// 3. Apply commits both in one request
	run(t, s, "apply")
	require.Equal(t, 3, recorder.count())
	request, _ = recorder.last()
	assert.Equal(t, "Драма", request.URL.Query().Get(catalog.ParamGenre))
	assert.Equal(t, "1900", request.URL.Query().Get(catalog.ParamYearMin))
	assert.Contains(t, out.String(), i18n.T(i18n.Bulgarian, i18n.MsgFiltersApplied))

	// 4. Search refetches with the applied criteria
	run(t, s, "search Вазов")
	require.Equal(t, 4, recorder.count())
	request, _ = recorder.last()
	assert.Equal(t, "Вазов", request.URL.Query().Get(catalog.ParamSearch))
	assert.Equal(t, "Драма", request.URL.Query().Get(catalog.ParamGenre))

	// 5. Clear resets filters and keeps the search term
	run(t, s, "clear")
	require.Equal(t, 5, recorder.count())
	request, _ = recorder.last()
	assert.Equal(t, "Вазов", request.URL.Query().Get(catalog.ParamSearch))
	assert.Empty(t, request.URL.Query().Get(catalog.ParamGenre))
	assert.Empty(t, request.URL.Query().Get(catalog.ParamYearMin))
}

/*
TestPlays_BoundsClamped keeps numeric bounds inside the observed range and
omits bounds equal to its edges.
*/
func TestPlays_BoundsClamped(t *testing.T) {
	recorder := &backend{}
	s, _ := newShell(t, catalogBackend(recorder), nil)

	run(t, s, "plays", "set year_min 1800", "set year_max 1900", "apply")

	request, _ := recorder.last()
	assert.Empty(t, request.URL.Query().Get(catalog.ParamYearMin))
	assert.Equal(t, "1900", request.URL.Query().Get(catalog.ParamYearMax))
}

/*
TestPlays_SearchFirstLoadsOptions loads the observed range on a search that
opens the listing, so later bounds are still clamped.
*/
func TestPlays_SearchFirstLoadsOptions(t *testing.T) {
	recorder := &backend{}
	s, _ := newShell(t, catalogBackend(recorder), nil)

	run(t, s, "search Вазов")
	require.Equal(t, 2, recorder.count())
	request, _ := recorder.last()
	assert.Equal(t, "Вазов", request.URL.Query().Get(catalog.ParamSearch))

	run(t, s, "plays", "set year_min 1800", "apply")
	request, _ = recorder.last()
	assert.Equal(t, "Вазов", request.URL.Query().Get(catalog.ParamSearch))
	assert.Empty(t, request.URL.Query().Get(catalog.ParamYearMin))
}

/*
TestLibrary_AuthorResetsPlay drops the selected play when the author changes
and clears the search term on clear.
*/
func TestLibrary_AuthorResetsPlay(t *testing.T) {
	recorder := &backend{}
	s, out := newShell(t, catalogBackend(recorder), nil)

	run(t, s, "library", "set play 4", "set author 2", "pending")
	assert.Contains(t, out.String(), "pending: author_id=2\n")
	assert.Contains(t, out.String(), i18n.T(i18n.Bulgarian, i18n.MsgNoResults))

	run(t, s, "search Бай Ганьо", "clear")
	request, _ := recorder.last()
	assert.Empty(t, request.URL.RawQuery)
}

/*
TestFilterCommands_NeedListing rejects filter edits before a listing is open.
*/
func TestFilterCommands_NeedListing(t *testing.T) {
	s, out := newShell(t, catalogBackend(&backend{}), nil)

	run(t, s, "set genre Драма")
	assert.Contains(t, out.String(), "open a listing first")
}

/*
TestLogin persists the credential and authorizes admin commands.
*/
func TestLogin(t *testing.T) {
	recorder := &backend{}
	credentials := &memoryCredentials{}
	s, out := newShell(t, catalogBackend(recorder), credentials)

	// 1. Without login nothing is sent
	run(t, s, "admin delete author 3")
	assert.Contains(t, out.String(), i18n.T(i18n.Bulgarian, i18n.MsgLoginRequired))
	assert.Zero(t, recorder.count())

	// 2. Login stores the credential
	run(t, s, "login")
	require.NotNil(t, credentials.credential)
	assert.Equal(t, "admin-token", credentials.credential.Token)

	// 3. A new shell restores it
	restored, _ := newShell(t, catalogBackend(recorder), credentials)
	run(t, restored, "admin delete author 3")
	request, _ := recorder.last()
	assert.Equal(t, http.MethodDelete, request.Method)
	assert.Equal(t, "/api/admin/authors/3", request.URL.Path)
	assert.Equal(t, "Bearer admin-token", request.Header.Get("Authorization"))

	// 4. Logout clears it
	run(t, restored, "logout")
	assert.Nil(t, credentials.credential)
}

/*
TestAdmin_CreateFromFile reads the entity from YAML.
*/
func TestAdmin_CreateFromFile(t *testing.T) {
	recorder := &backend{}
	credentials := &memoryCredentials{credential: &session.Credential{Token: "admin-token", TokenType: "bearer"}}
	s, out := newShell(t, catalogBackend(recorder), credentials)

	path := filepath.Join(t.TempDir(), "author.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name_bg: Алеко Константинов\nbiography_bg: Писател.\nname_en: Aleko Konstantinov\n"), 0o600))

	run(t, s, "admin create author "+path)

	request, body := recorder.last()
	assert.Equal(t, "/api/admin/authors", request.URL.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "Алеко Константинов", sent["name_bg"])
	assert.Equal(t, "Aleko Konstantinov", sent["name_en"])
	assert.Contains(t, out.String(), i18n.T(i18n.Bulgarian, i18n.MsgSaved))
}

/*
TestAdmin_UploadImage sends the file with its captions.
*/
func TestAdmin_UploadImage(t *testing.T) {
	var captionBG string
	var filename string
	handler := func(writer http.ResponseWriter, request *http.Request) {
		if assert.NoError(t, request.ParseMultipartForm(1<<20)) {
			captionBG = request.FormValue("caption_bg")
		}
		if _, header, err := request.FormFile("file"); assert.NoError(t, err) {
			filename = header.Filename
		}
		writeJSON(writer, catalog.Play{ID: 3})
	}

	credentials := &memoryCredentials{credential: &session.Credential{Token: "admin-token", TokenType: "bearer"}}
	s, out := newShell(t, handler, credentials)

	path := filepath.Join(t.TempDir(), "stage.png")
	require.NoError(t, os.WriteFile(path, pngContent, 0o600))

	run(t, s, `admin upload image 3 `+path+` bg="Премиера в София"`)

	assert.Equal(t, "Премиера в София", captionBG)
	assert.Equal(t, "stage.png", filename)
	assert.Contains(t, out.String(), i18n.T(i18n.Bulgarian, i18n.MsgUploaded))
}

/*
TestDownload writes the play script to disk.
*/
func TestDownload(t *testing.T) {
	s, out := newShell(t, catalogBackend(&backend{}), nil)

	target := filepath.Join(t.TempDir(), "hashove.pdf")
	run(t, s, "download play 3 "+target)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 script", string(content))
	assert.Contains(t, out.String(), "15 bytes")
}

/*
TestUnknownCommand prints a localized hint.
*/
func TestUnknownCommand(t *testing.T) {
	s, out := newShell(t, catalogBackend(&backend{}), nil)

	run(t, s, "lang en", "frobnicate")
	assert.Contains(t, out.String(), i18n.T(i18n.English, i18n.MsgUnknownCommand))
}
