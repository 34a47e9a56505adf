// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/akazakov/keepsafe/internal/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// CertAuth is a middleware that enforces mutual TLS authentication.
//
// It checks whether the incoming HTTP request carries a valid client
// certificate. The /api/v1/register endpoint is excluded so new users can
// register and obtain a certificate.
//
// On success it reads the actor identity out of the certificate subject:
// the Common Name carries the user id and the first Organization entry
// carries the organization id. The identity is stored in the request
// context and scopes every downstream store query.
func CertAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/register" {
			// Allow registration without certificate
			next.ServeHTTP(w, r)
			return
		}
		if r.TLS == nil || len(r.TLS.PeerCertificates) == 0 {
			http.Error(w, "no client certificate provided", http.StatusUnauthorized)
			return
		}
		cert := r.TLS.PeerCertificates[0]
		if len(cert.Subject.Organization) == 0 {
			http.Error(w, "client certificate carries no organization", http.StatusUnauthorized)
			return
		}
		actor := models.Actor{
			UserID: cert.Subject.CommonName,
			OrgID:  cert.Subject.Organization[0],
		}
		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

// ContextWithActor returns a context carrying the actor identity.
func ContextWithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, identityKey, actor)
}

// GetActorFromContext extracts the authenticated actor identity from the
// request context. Returns a zero Actor if not found.
func GetActorFromContext(ctx context.Context) models.Actor {
	val := ctx.Value(identityKey)
	if actor, ok := val.(models.Actor); ok {
		return actor
	}
	return models.Actor{}
}
