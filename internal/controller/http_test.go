package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"rockspec-notes/internal/dto"
	"rockspec-notes/internal/pkg/password"
	"rockspec-notes/internal/pkg/serverutils"
	"rockspec-notes/internal/pkg/session"
	"rockspec-notes/internal/pkg/throttle"
	"rockspec-notes/internal/repository/memory"
	"rockspec-notes/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type testEnv struct {
	app      *fiber.App
	sessions *session.Manager
	authSvc  service.IAuthService
	noteSvc  service.INoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	factory := memory.NewRepositoryFactory(memory.NewStore())
	hasher := password.NewHasher(bcrypt.MinCost)
	sessions := session.NewManager("test-secret")
	guard := serverutils.NewAuthGuard(sessions)

	authSvc := service.NewAuthService(factory, hasher)
	noteSvc := service.NewNoteService(factory, nil, memory.NewPreviewCache(), nil)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(noopLogger{}))
	NewAuthController(authSvc, sessions, throttle.New(nil, noopLogger{})).RegisterRoutes(app, guard)
	NewNoteController(noteSvc).RegisterRoutes(app, guard)

	return &testEnv{app: app, sessions: sessions, authSvc: authSvc, noteSvc: noteSvc}
}

func (e *testEnv) request(t *testing.T, method, target string, form url.Values, cookie string) *http.Response {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// sessionFor registers a user directly through the service and returns a
// signed session token for them.
func (e *testEnv) sessionFor(t *testing.T, email string) string {
	t.Helper()

	user, err := e.authSvc.Join(context.Background(), &dto.JoinRequest{
		Email:    email,
		Password: "twixrox99",
	})
	require.NoError(t, err)

	token, err := e.sessions.Issue(user.Id, false)
	require.NoError(t, err)
	return token
}

type errBody struct {
	Errors map[string]string `json:"errors"`
}

func decodeErrors(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body errBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Errors
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestNotesRequireLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/notes", nil, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirectTo=/notes", resp.Header.Get("Location"))

	resp = env.request(t, http.MethodGet, "/notes", nil, "forged-token")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestJoinSetsSessionAndRedirects(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/join", url.Values{
		"email":    {"kody@remix.run"},
		"password": {"twixrox99"},
	}, "")

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/notes", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	_, ok := env.sessions.Read(cookie.Value)
	assert.True(t, ok, "issued cookie must resolve to a user")
}

func TestJoinValidationResponses(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/join", url.Values{
		"email":    {"not-an-email"},
		"password": {"twixrox99"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email is invalid", decodeErrors(t, resp)["email"])

	resp = env.request(t, http.MethodPost, "/join", url.Values{
		"email":    {"kody@remix.run"},
		"password": {"short"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Password is too short", decodeErrors(t, resp)["password"])
}

func TestJoinDuplicateEmailIsConflict(t *testing.T) {
	env := newTestEnv(t)
	env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodPost, "/join", url.Values{
		"email":    {"kody@remix.run"},
		"password": {"different99"},
	}, "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "A user already exists with this email", decodeErrors(t, resp)["email"])
}

func TestLoginFailureShapes(t *testing.T) {
	env := newTestEnv(t)
	env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodPost, "/login", url.Values{
		"email":    {"ghost@remix.run"},
		"password": {"whatever1"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeErrors(t, resp)["email"])

	resp = env.request(t, http.MethodPost, "/login", url.Values{
		"email":    {"kody@remix.run"},
		"password": {"wrongwrong"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", decodeErrors(t, resp)["password"])
}

func TestLoginRedirectToIsSanitized(t *testing.T) {
	env := newTestEnv(t)
	env.sessionFor(t, "kody@remix.run")

	login := func(redirectTo string) string {
		resp := env.request(t, http.MethodPost, "/login", url.Values{
			"email":      {"kody@remix.run"},
			"password":   {"twixrox99"},
			"redirectTo": {redirectTo},
		}, "")
		require.Equal(t, http.StatusFound, resp.StatusCode)
		return resp.Header.Get("Location")
	}

	assert.Equal(t, "/notes/new", login("/notes/new"))
	assert.Equal(t, "/notes", login("https://evil.example"))
	assert.Equal(t, "/notes", login("//evil.example"))
	assert.Equal(t, "/notes", login(""))
}

func TestLoginPageRedirectsWhenAuthenticated(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodGet, "/login", nil, token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/notes", resp.Header.Get("Location"))

	resp = env.request(t, http.MethodGet, "/join", nil, token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/notes", resp.Header.Get("Location"))
}

func TestNoteLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionFor(t, "kody@remix.run")

	// Create redirects to the fresh note.
	resp := env.request(t, http.MethodPost, "/notes/new", url.Values{
		"title": {"Groceries"},
		"body":  {"eggs, milk"},
	}, token)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/notes/"))

	// The detail page serves it back.
	resp = env.request(t, http.MethodGet, location, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var note dto.NoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
	assert.Equal(t, "Groceries", note.Title)

	// The list includes it.
	resp = env.request(t, http.MethodGet, "/notes", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Notes []dto.NoteSummary `json:"notes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Notes, 1)

	// Update via the form mode.
	resp = env.request(t, http.MethodPost, location, url.Values{
		"mode":  {dto.ModeUpdateNote},
		"title": {"Groceries v2"},
		"body":  {"eggs, milk, bread"},
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.request(t, http.MethodGet, location, nil, token)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
	assert.Equal(t, "Groceries v2", note.Title)

	// Delete via the form mode.
	resp = env.request(t, http.MethodPost, location, url.Values{
		"mode": {dto.ModeDeleteNote},
	}, token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/notes", resp.Header.Get("Location"))

	resp = env.request(t, http.MethodGet, location, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNoteOwnershipIsInvisible(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.sessionFor(t, "owner@remix.run")
	strangerToken := env.sessionFor(t, "stranger@remix.run")

	resp := env.request(t, http.MethodPost, "/notes/new", url.Values{
		"title": {"Private"},
		"body":  {"mine"},
	}, ownerToken)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")

	// Another user's note is indistinguishable from a missing one.
	resp = env.request(t, http.MethodGet, location, nil, strangerToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodPost, location, url.Values{
		"mode": {dto.ModeDeleteNote},
	}, strangerToken)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The owner still has it.
	resp = env.request(t, http.MethodGet, location, nil, ownerToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNoteFormValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodPost, "/notes/new", url.Values{
		"title": {""},
		"body":  {""},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title is required", decodeErrors(t, resp)["title"])

	resp = env.request(t, http.MethodPost, "/notes/new", url.Values{
		"title": {"Has title"},
		"body":  {""},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Body is required", decodeErrors(t, resp)["body"])
}

func TestNoteActionRejectsUnknownMode(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodPost, "/notes/new", url.Values{
		"title": {"Note"},
		"body":  {"body"},
	}, token)
	location := resp.Header.Get("Location")

	resp = env.request(t, http.MethodPost, location, url.Values{
		"mode":  {"EXPLODE_NOTE"},
		"title": {"x"},
		"body":  {"y"},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Mode is invalid", decodeErrors(t, resp)["mode"])
}

func TestMalformedNoteIdIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodGet, "/notes/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/preview/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPreviewIsPublic(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.sessionFor(t, "owner@remix.run")
	visitorToken := env.sessionFor(t, "visitor@remix.run")

	resp := env.request(t, http.MethodPost, "/notes/new", url.Values{
		"title": {"Shared"},
		"body":  {"for everyone"},
	}, ownerToken)
	noteId := strings.TrimPrefix(resp.Header.Get("Location"), "/notes/")

	// Anonymous read works.
	resp = env.request(t, http.MethodGet, "/preview/"+noteId, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var preview dto.PreviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
	assert.False(t, preview.Authenticated)
	assert.Equal(t, "Shared", preview.Note.Title)

	// A logged-in non-owner reads the same note, flagged authenticated.
	resp = env.request(t, http.MethodGet, "/preview/"+noteId, nil, visitorToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&preview))
	assert.True(t, preview.Authenticated)
}

func TestLogoutClearsSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodPost, "/logout", nil, token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)

	// GET /logout never mutates, it just bounces home.
	resp = env.request(t, http.MethodGet, "/logout", nil, token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Nil(t, sessionCookie(resp))
}

func TestHomeReportsAuthentication(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionFor(t, "kody@remix.run")

	resp := env.request(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["authenticated"])

	resp = env.request(t, http.MethodGet, "/", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["authenticated"])
}
