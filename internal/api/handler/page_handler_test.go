package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-portal/internal/core/domain"
)

// newPageServer wires the page handler into a full Echo instance so the
// session middleware and template renderer behave as in production.
func newPageServer(t *testing.T, auth *stubAuthService, users *stubUserService) *echo.Echo {
	t.Helper()

	e := echo.New()
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("test-secret"))))

	h := NewPageHandler(auth, users)
	e.GET("/", h.Index)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/logout", h.Logout)

	return e
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPageHandler_LoginForm(t *testing.T) {
	e := newPageServer(t, &stubAuthService{}, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<form") {
		t.Fatalf("expected login form in body")
	}
}

func TestPageHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "example" || password != "example" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: 1, Username: "example"}, nil
		},
	}
	users := &stubUserService{
		getFn: func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "example"}, nil
		},
	}
	e := newPageServer(t, auth, users)

	rec := postForm(e, "/login", url.Values{
		"username": {"example"},
		"password": {"example"},
	})

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %s", loc)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie to be set")
	}

	// The established session identifies the user on the index page.
	idxReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		idxReq.AddCookie(ck)
	}
	idxRec := httptest.NewRecorder()
	e.ServeHTTP(idxRec, idxReq)
	if idxRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", idxRec.Code)
	}
	if !strings.Contains(idxRec.Body.String(), "example") {
		t.Fatalf("expected username on index page")
	}
}

func TestPageHandler_Login_BadCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	e := newPageServer(t, auth, &stubUserService{})

	rec := postForm(e, "/login", url.Values{
		"username": {"nobody"},
		"password": {"wrong"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected form re-render with 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Username and password pair not found") {
		t.Fatalf("expected flash message in body")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no session may be established on failure")
	}
}

func TestPageHandler_Index_Anonymous(t *testing.T) {
	e := newPageServer(t, &stubAuthService{}, &stubUserService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not logged in") {
		t.Fatalf("expected anonymous index page")
	}
}

func TestPageHandler_Logout(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "example"}, nil
		},
	}
	users := &stubUserService{
		getFn: func(ctx context.Context, id uint) (*domain.User, error) {
			return &domain.User{ID: 1, Username: "example"}, nil
		},
	}
	e := newPageServer(t, auth, users)

	loginRec := postForm(e, "/login", url.Values{
		"username": {"example"},
		"password": {"example"},
	})
	cookies := loginRec.Result().Cookies()

	outReq := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, ck := range cookies {
		outReq.AddCookie(ck)
	}
	outRec := httptest.NewRecorder()
	e.ServeHTTP(outRec, outReq)

	if outRec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", outRec.Code)
	}
	if loc := outRec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}

	// Session cookie is dropped; the index page no longer knows the user.
	idxReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range outRec.Result().Cookies() {
		idxReq.AddCookie(ck)
	}
	idxRec := httptest.NewRecorder()
	e.ServeHTTP(idxRec, idxReq)
	if !strings.Contains(idxRec.Body.String(), "not logged in") {
		t.Fatalf("expected anonymous index page after logout")
	}
}
