package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-portal/internal/api/metrics"
	"github.com/userhub/user-portal/internal/api/middleware"
	"github.com/userhub/user-portal/internal/core/domain"
	"github.com/userhub/user-portal/internal/core/ports"
)

// flashLoginFailed is shown on the login form after a failed attempt.
const flashLoginFailed = "Username and password pair not found"

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds

// PageHandler serves the HTML surface: index, login form, logout.
type PageHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewPageHandler(authService ports.AuthService, userService ports.UserService) *PageHandler {
	return &PageHandler{authService: authService, userService: userService}
}

type loginPage struct {
	Message string
}

type indexPage struct {
	Username string
}

// Index handles GET /.
func (h *PageHandler) Index(c echo.Context) error {
	page := indexPage{}
	if sess, err := session.Get(middleware.SessionName, c); err == nil {
		if uid, ok := sess.Values[middleware.SessionUserKey].(uint); ok {
			if user, err := h.userService.Get(c.Request().Context(), uid); err == nil {
				page.Username = user.Username
			}
		}
	}
	return c.Render(http.StatusOK, "index.html", page)
}

// LoginForm handles GET /login.
func (h *PageHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPage{})
}

// Login handles POST /login. On success the user id is stored in the
// session cookie and the browser is redirected to the index page; on a
// credential mismatch the form is re-rendered with a message and no
// session is established.
func (h *PageHandler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := h.authService.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return c.Render(http.StatusOK, "login.html", loginPage{Message: flashLoginFailed})
		}
		return err
	}

	sess, err := session.Get(middleware.SessionName, c)
	if err != nil {
		return err
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	}
	sess.Values[middleware.SessionUserKey] = user.ID
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Logout handles GET /logout: drops the session and returns to the login
// form.
func (h *PageHandler) Logout(c echo.Context) error {
	sess, err := session.Get(middleware.SessionName, c)
	if err == nil {
		delete(sess.Values, middleware.SessionUserKey)
		sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
		_ = sess.Save(c.Request(), c.Response())
	}
	return c.Redirect(http.StatusFound, "/login")
}
