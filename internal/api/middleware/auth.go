package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/barberhub/scheduling-service/internal/api/handlers"
	"github.com/barberhub/scheduling-service/internal/integrations/authservice"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier resolves bearer tokens into identities.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*authservice.Identity, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewAuth builds the authentication middleware. Requests without a valid
// bearer token are rejected before reaching the handler; on success the
// verified identity is stored in the request context.
func NewAuth(verifier TokenVerifier, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, authservice.ErrTokenInvalid) {
					log.Warn("%s %s - invalid token", r.Method, r.URL.Path)
					handlers.RespondUnauthorized(w, "invalid or expired token")
					return
				}
				log.Error("%s %s - token verification failed: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the verified identity stored by the auth middleware.
func GetIdentity(ctx context.Context) (*authservice.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*authservice.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
