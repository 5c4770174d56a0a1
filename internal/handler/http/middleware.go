package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/imvikashdev/storefront/internal/session"
	"github.com/imvikashdev/storefront/pkg/logger"
)

const sessionCookieName = "storefront_session"

type sessionCtxKey struct{}

// SessionMiddleware loads the browser session from the cookie, creating a
// fresh one when missing or expired, and stores it in the request context.
// Mount before RequestLogger so log lines carry the session and user ids.
func SessionMiddleware(store session.Store, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *session.Session
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				sess, err = store.Get(ctx, cookie.Value)
				if err != nil && !errors.Is(err, session.ErrNotFound) {
					log.ErrorContext(ctx, "session store unavailable",
						slog.String("error", err.Error()),
					)
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
			}

			if sess == nil {
				sess = session.New()
				if err := store.Save(ctx, sess); err != nil {
					log.ErrorContext(ctx, "session store unavailable",
						slog.String("error", err.Error()),
					)
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = logger.WithSessionID(ctx, sess.ID)
			if sess.UserID != "" {
				ctx = logger.WithUserID(ctx, sess.UserID)
			}
			ctx = context.WithValue(ctx, sessionCtxKey{}, sess)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFrom extracts the session placed in the context by
// SessionMiddleware. Routes below the middleware always have one.
func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return sess
}
