package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-portal/internal/api/metrics"
)

// SessionName is the cookie holding the browser session.
const SessionName = "session"

// SessionUserKey is the session value holding the authenticated user id.
const SessionUserKey = "user_id"

// UserIDContextKey is where the gate stores the caller's user id for
// downstream handlers.
const UserIDContextKey = "user_id"

// authRequiredMessage is the fixed description returned on every gate
// rejection.
const authRequiredMessage = "Not Authorized"

// Auth is the gate in front of protected routes. A request passes when the
// session cookie identifies a logged-in user, or when the Authorization
// header carries a valid bearer token issued by this process. Everything
// else is rejected with 401 before any further processing.
func Auth(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid, ok := sessionUserID(c); ok {
				c.Set(UserIDContextKey, uid)
				return next(c)
			}

			if uid, ok := bearerUserID(c, jwtSecret); ok {
				c.Set(UserIDContextKey, uid)
				return next(c)
			}

			metrics.UnauthorizedTotal.Inc()
			return echo.NewHTTPError(http.StatusUnauthorized, authRequiredMessage)
		}
	}
}

func sessionUserID(c echo.Context) (uint, bool) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return 0, false
	}
	uid, ok := sess.Values[SessionUserKey].(uint)
	return uid, ok
}

func bearerUserID(c echo.Context, jwtSecret []byte) (uint, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return 0, false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil || !tkn.Valid {
		return 0, false
	}

	id, ok := claims[SessionUserKey].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}
