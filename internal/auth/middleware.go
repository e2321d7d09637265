package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/saulo-duarte/btcportal/internal/config"
)

const CookieName = "page_token"

type ctxKey string

const claimsKey ctxKey = "page_claims"

var ErrNoClaims = errors.New("no page claims in context")

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Rejected page token")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = config.WithPageID(ctx, claims.PageID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetPageClaimsFromContext(ctx context.Context) (*PageClaims, error) {
	claims, ok := ctx.Value(claimsKey).(*PageClaims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// WithClaims is used by tests and internal callers that already validated a token.
func WithClaims(ctx context.Context, claims *PageClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func SetTokenCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func ClearTokenCookie(w http.ResponseWriter) {
	SetTokenCookie(w, "", -1)
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	// browsers cannot set headers on websocket upgrades
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
