package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/server/models"
)

type ctxKey string

const userKey ctxKey = "user"

// requireUser resolves the session cookie to a user and puts it on the
// request context. Missing, expired, or malformed tokens and tokens of
// deleted users all get the same anonymous rejection.
func (s *HTTPServer) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cookie, err := r.Cookie(common.SessionCookieName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "未登录")
			return
		}

		user, err := s.users.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "未登录")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

// recoverPanic turns a panicking handler into the localized 500 page
// instead of a dropped connection.
func (s *HTTPServer) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(r.Context(), "Panic while serving request",
					"path", r.URL.Path, "panic", fmt.Sprint(p))
				renderPage(w, http.StatusInternalServerError, pageData{Error: "服务器错误"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// setSessionCookie installs the signed token as an HTTP-only session
// cookie. Secure is set when the request itself arrived over TLS.
func setSessionCookie(w http.ResponseWriter, r *http.Request, token string, validity time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(validity),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
