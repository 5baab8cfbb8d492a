package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inHttp "github.com/emberline/storefront/internal/http"
	"github.com/emberline/storefront/internal/log"
	"github.com/emberline/storefront/internal/otel"
)

// Session resolves the anonymous session for the request, issuing a new
// cookie when none exists. The session id is the key every cart is stored
// under; there is no authentication attached to it.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "Session")
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "Session").
			Logger()

		sessionID := uuid.Nil
		cookie, err := r.Cookie(inHttp.COOKIE_SESSION)
		if err == nil {
			sessionID, err = uuid.Parse(cookie.Value)
			if err != nil {
				logger.Info().Err(err).Msg("session cookie is not a valid uuid, reissuing")
				sessionID = uuid.Nil
			}
		}
		if sessionID == uuid.Nil {
			sessionID = uuid.New()
			http.SetCookie(w, &http.Cookie{
				Name:     inHttp.COOKIE_SESSION,
				Value:    sessionID.String(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			logger.Info().Str(log.KeySessionID, sessionID.String()).Msg("issued new session")
		}

		logger = logger.With().Str(log.KeySessionID, sessionID.String()).Logger()
		logger.Trace().Msg("attaching session id to context")
		c = log.AttachSessionIDToContext(c, sessionID)
		c = logger.WithContext(c)
		r = r.WithContext(c)
		logger.Trace().Msg("attached session id to context")

		next.ServeHTTP(w, r)
	})
}
