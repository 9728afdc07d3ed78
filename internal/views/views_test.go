// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package views_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/internal/platform/constants"
	"github.com/taibuivan/bgpiesa/internal/platform/middleware"
	"github.com/taibuivan/bgpiesa/internal/session"
	"github.com/taibuivan/bgpiesa/internal/views"
	"github.com/taibuivan/bgpiesa/pkg/pointer"
)

var pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type memoryStore struct {
	mu          sync.Mutex
	credentials map[string]*session.Credential
}

func (s *memoryStore) Save(_ context.Context, id string, credential *session.Credential, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[id] = credential
	return nil
}

func (s *memoryStore) Load(_ context.Context, id string) (*session.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	credential, ok := s.credentials[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return credential, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.credentials, id)
	return nil
}

type harness struct {
	router   http.Handler
	sessions *memoryStore
}

// newFixture serves the views under /api/v1 in front of backend.
func newFixture(t *testing.T, backend http.Handler) harness {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	catalogClient, err := client.New(server.URL, client.Options{})
	require.NoError(t, err)

	sessions := &memoryStore{credentials: map[string]*session.Credential{}}
	handler := views.NewHandler(views.Options{
		Catalog:      catalogClient,
		Sessions:     sessions,
		SessionTTL:   time.Hour,
		NewSessionID: func() string { return "session-1" },
	})

	router := chi.NewRouter()
	router.Use(middleware.Language(i18n.Bulgarian))
	router.Mount("/api/v1", handler.Routes(middleware.RequireAdmin(sessions, time.Now)))

	return harness{router: router, sessions: sessions}
}

func (h harness) serve(request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, request)
	return recorder
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, payload any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	require.NoError(t, json.NewEncoder(writer).Encode(payload))
}

func decodeData[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope.Data
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope.Error, envelope.Code
}

func samplePlay() catalog.Play {
	return catalog.Play{
		ID:            3,
		TitleBG:       "Хъшове",
		TitleEN:       pointer.To("The Outlaws"),
		DescriptionBG: "Пиеса за **емигрантите**.",
		AuthorID:      1,
		Author:        &catalog.Author{ID: 1, NameBG: "Иван Вазов", NameEN: pointer.To("Ivan Vazov")},
		Year:          pointer.To(1894),
		PDFPath:       pointer.To("uploads/plays/3.pdf"),
		Images: []catalog.PlayImage{
			{ID: 8, ImageURL: "/uploads/images/8.png", CaptionBG: pointer.To("Премиера")},
		},
	}
}

/*
TestListPlays resolves bilingual fields for the request language and falls
back to Bulgarian when the English value is missing.
*/
func TestListPlays(t *testing.T) {
	var rawQuery string
	fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		rawQuery = request.URL.RawQuery
		writeJSON(t, writer, http.StatusOK, []catalog.Play{samplePlay(), {ID: 4, TitleBG: "Снаха", AuthorID: 2}})
	}))

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{"default bulgarian", "/api/v1/plays", []string{"Хъшове", "Снаха"}},
		{"english with fallback", "/api/v1/plays?lang=en", []string{"The Outlaws", "Снаха"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := fixture.serve(httptest.NewRequest(http.MethodGet, tc.target, nil))
			require.Equal(t, http.StatusOK, recorder.Code)

			listing := decodeData[views.Listing[views.PlayCard]](t, recorder)
			require.Len(t, listing.Items, 2)
			assert.Equal(t, tc.want[0], listing.Items[0].Title)
			assert.Equal(t, tc.want[1], listing.Items[1].Title)
			assert.Empty(t, listing.Notice)
		})
	}

	t.Run("criteria forwarded", func(t *testing.T) {
		recorder := fixture.serve(httptest.NewRequest(http.MethodGet, "/api/v1/plays?search=%D0%92%D0%B0%D0%B7%D0%BE%D0%B2&genre=Drama&year_min=1890", nil))
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, rawQuery, "search=")
		assert.Contains(t, rawQuery, "genre=Drama")
		assert.Contains(t, rawQuery, "year_min=1890")
	})
}

/*
TestListLibrary_Empty reports the localized no-results notice.
*/
func TestListLibrary_Empty(t *testing.T) {
	fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, http.StatusOK, []catalog.LiteraryPiece{})
	}))

	recorder := fixture.serve(httptest.NewRequest(http.MethodGet, "/api/v1/library?lang=en", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	listing := decodeData[views.Listing[views.PieceCard]](t, recorder)
	assert.Empty(t, listing.Items)
	assert.Equal(t, i18n.T(i18n.English, i18n.MsgNoResults), listing.Notice)
}

/*
TestGetPlay renders the description and resolves asset links against the
backend base URL.
*/
func TestGetPlay(t *testing.T) {
	fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/plays/3", request.URL.Path)
		writeJSON(t, writer, http.StatusOK, samplePlay())
	}))

	recorder := fixture.serve(httptest.NewRequest(http.MethodGet, "/api/v1/plays/3", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	page := decodeData[views.PlayPage](t, recorder)
	assert.Equal(t, "Хъшове", page.Title)
	assert.Equal(t, "Иван Вазов", page.AuthorName)
	assert.Contains(t, page.DescriptionHTML, "<strong>емигрантите</strong>")
	assert.Equal(t, "Пиеса за емигрантите.", page.Description)
	assert.True(t, strings.HasSuffix(page.PDFURL, "/api/plays/3/download-pdf"))
	require.Len(t, page.Images, 1)
	assert.True(t, strings.HasPrefix(page.Images[0].URL, "http://"))
	assert.True(t, strings.HasSuffix(page.Images[0].URL, "/uploads/images/8.png"))
	assert.Equal(t, "Премиера", page.Images[0].Caption)
	assert.Empty(t, page.Files)
}

/*
TestUpstreamError reports any backend failure as 502 with the backend's own
message.
*/
func TestUpstreamError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"detail", http.StatusNotFound, `{"detail":"Play not found"}`, "Play not found"},
		{"plain text", http.StatusInternalServerError, "boom", "boom"},
		{"empty", http.StatusServiceUnavailable, "", client.FallbackMessage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(tc.status)
				_, _ = writer.Write([]byte(tc.body))
			}))

			recorder := fixture.serve(httptest.NewRequest(http.MethodGet, "/api/v1/plays/9", nil))
			assert.Equal(t, http.StatusBadGateway, recorder.Code)

			message, code := decodeError(t, recorder)
			assert.Equal(t, tc.message, message)
			assert.Equal(t, "UPSTREAM_ERROR", code)
		})
	}
}

/*
TestInvalidID rejects non-numeric path ids without calling the backend.
*/
func TestInvalidID(t *testing.T) {
	hits := 0
	fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		hits++
		writer.WriteHeader(http.StatusOK)
	}))

	recorder := fixture.serve(httptest.NewRequest(http.MethodGet, "/api/v1/authors/abc", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Zero(t, hits)
}

/*
TestAdminSession covers login, an authorized mutation with the session
cookie, and logout.
*/
func TestAdminSession(t *testing.T) {
	var authorization string
	backend := http.NewServeMux()
	backend.HandleFunc("POST /api/admin/login", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		if body.Password != "secret" {
			writeJSON(t, writer, http.StatusUnauthorized, map[string]string{"detail": "Invalid password"})
			return
		}
		writeJSON(t, writer, http.StatusOK, map[string]string{"access_token": "admin-token", "token_type": "bearer"})
	})
	backend.HandleFunc("POST /api/admin/authors", func(writer http.ResponseWriter, request *http.Request) {
		authorization = request.Header.Get("Authorization")
		writeJSON(t, writer, http.StatusOK, catalog.Author{ID: 5, NameBG: "Йордан Йовков"})
	})

	fixture := newFixture(t, backend)

	// 1. Wrong password surfaces the backend message
	recorder := fixture.serve(httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"nope"}`)))
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	message, _ := decodeError(t, recorder)
	assert.Equal(t, "Invalid password", message)

	// 2. Login stores the credential and sets the cookie
	recorder = fixture.serve(httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"secret"}`)))
	require.Equal(t, http.StatusOK, recorder.Code)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "session-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Contains(t, fixture.sessions.credentials, "session-1")

	// 3. The cookie authorizes admin mutations
	request := httptest.NewRequest(http.MethodPost, "/api/v1/admin/authors", strings.NewReader(`{"name_bg":"Йордан Йовков","biography_bg":"Писател."}`))
	request.AddCookie(cookies[0])
	recorder = fixture.serve(request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "Bearer admin-token", authorization)
	assert.Equal(t, 5, decodeData[catalog.Author](t, recorder).ID)

	// 4. Logout removes the session and expires the cookie
	request = httptest.NewRequest(http.MethodPost, "/api/v1/admin/logout", nil)
	request.AddCookie(cookies[0])
	recorder = fixture.serve(request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, fixture.sessions.credentials)

	cleared := recorder.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)
}

/*
TestAdmin_RequiresLogin rejects mutations without a credential before any
backend call.
*/
func TestAdmin_RequiresLogin(t *testing.T) {
	hits := 0
	fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		hits++
		writer.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/v1/admin/authors"},
		{http.MethodPut, "/api/v1/admin/plays/3"},
		{http.MethodDelete, "/api/v1/admin/library/2"},
		{http.MethodPost, "/api/v1/admin/plays/3/upload-image"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			recorder := fixture.serve(httptest.NewRequest(tc.method, tc.target, strings.NewReader("{}")))
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
	assert.Zero(t, hits)
}

/*
TestAdmin_Validation rejects invalid payloads locally.
*/
func TestAdmin_Validation(t *testing.T) {
	hits := 0
	fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		hits++
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodPost, "/api/v1/admin/plays", strings.NewReader(`{"title_bg":""}`))
	request.Header.Set("Authorization", "Bearer admin-token")
	recorder := fixture.serve(request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Zero(t, hits)
}

/*
TestAdmin_UploadPlayImage relays the file and captions as a new multipart
request to the backend.
*/
func TestAdmin_UploadPlayImage(t *testing.T) {
	var received struct {
		filename    string
		contentType string
		content     []byte
		captionBG   string
		hasEnglish  bool
	}

	backend := http.NewServeMux()
	backend.HandleFunc("POST /api/admin/plays/3/upload-image", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer admin-token", request.Header.Get("Authorization"))
		require.NoError(t, request.ParseMultipartForm(1<<20))

		file, header, err := request.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		buffer := &bytes.Buffer{}
		_, err = buffer.ReadFrom(file)
		require.NoError(t, err)

		received.filename = header.Filename
		received.contentType = header.Header.Get("Content-Type")
		received.content = buffer.Bytes()
		received.captionBG = request.FormValue("caption_bg")
		_, received.hasEnglish = request.MultipartForm.Value["caption_en"]

		writeJSON(t, writer, http.StatusOK, samplePlay())
	})

	fixture := newFixture(t, backend)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", "stage.png")
	require.NoError(t, err)
	_, err = part.Write(pngContent)
	require.NoError(t, err)
	require.NoError(t, form.WriteField("caption_bg", "Премиера"))
	require.NoError(t, form.WriteField("caption_en", "  "))
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/v1/admin/plays/3/upload-image", body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	request.Header.Set("Authorization", "Bearer admin-token")

	recorder := fixture.serve(request)
	require.Equal(t, http.StatusOK, recorder.Code)

	assert.Equal(t, "stage.png", received.filename)
	assert.Equal(t, "image/png", received.contentType)
	assert.Equal(t, pngContent, received.content)
	assert.Equal(t, "Премиера", received.captionBG)
	assert.False(t, received.hasEnglish)
	assert.Equal(t, 3, decodeData[catalog.Play](t, recorder).ID)
}

/*
TestAdmin_UploadMissingFile requires the file part.
*/
func TestAdmin_UploadMissingFile(t *testing.T) {
	fixture := newFixture(t, http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	require.NoError(t, form.WriteField("caption_bg", "Премиера"))
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/v1/admin/library/2/upload-pdf", body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	request.Header.Set("Authorization", "Bearer admin-token")

	recorder := fixture.serve(request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
