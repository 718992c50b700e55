package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brunovale/lead-exchange/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

type sessionKey struct{}

type sessionClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth valida o bearer token e resolve o Role UMA vez, aqui na borda.
// Role desconhecido é 403 terminal — nunca retry, nunca revalidação
// espalhada pelos usecases.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				denied(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims := &sessionClaims{}
			token, err := jwt.ParseWithClaims(
				strings.TrimPrefix(header, "Bearer "),
				claims,
				func(t *jwt.Token) (any, error) { return []byte(secret), nil },
				jwt.WithValidMethods([]string{"HS256"}),
			)
			if err != nil || !token.Valid || claims.Subject == "" {
				denied(w, http.StatusUnauthorized, "invalid token")
				return
			}

			role, err := entity.ParseRole(claims.Role)
			if err != nil {
				denied(w, http.StatusForbidden, "role unknown")
				return
			}

			session := entity.Session{
				UserID: claims.Subject,
				Name:   claims.Name,
				Role:   role,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
		})
	}
}

// SessionFrom recupera o ator autenticado. ok=false só acontece em rota
// montada sem o middleware — erro de wiring, não de runtime.
func SessionFrom(ctx context.Context) (entity.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(entity.Session)
	return s, ok
}

func denied(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}
