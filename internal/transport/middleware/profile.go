package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/nivara-backend/pkg/ctxutil"
)

// Profile identification. The header wins over the cookie.
const (
	ProfileHeader = "X-Profile-Id"
	ProfileCookie = "nivara_profile"

	profileCookieMaxAge = 365 * 24 * 60 * 60
)

// Profile resolves the anonymous browser profile of the request. A missing or
// malformed id is replaced by a fresh one, which is handed back as a cookie.
// The resolved id is always echoed in the ProfileHeader response header.
func Profile() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := profileFromRequest(r)
			if !ok {
				id = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     ProfileCookie,
					Value:    id.String(),
					Path:     "/",
					MaxAge:   profileCookieMaxAge,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(ProfileHeader, id.String())

			ctx := ctxutil.WithProfileID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func profileFromRequest(r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get(ProfileHeader)
	if raw == "" {
		if c, err := r.Cookie(ProfileCookie); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
