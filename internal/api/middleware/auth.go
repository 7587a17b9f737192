package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rishav-ranjan/healthlocker/internal/config"
	"github.com/rishav-ranjan/healthlocker/internal/records"
	"github.com/rishav-ranjan/healthlocker/internal/utils"
)

type contextKey string

const ActorKey contextKey = "actor"

// AuthMiddleware resolves the JWT session cookie into a records.Actor and
// threads it through the request context. Every protected handler reads
// the actor from there; there is no ambient current-user state.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		unauthorized := func() {
			utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
				Success: false,
				Message: "Unauthorized",
			})
		}

		tokenStr, err := r.Cookie("token")
		if err != nil {
			unauthorized()
			return
		}

		token, err := jwt.Parse(tokenStr.Value, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.Envs.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			unauthorized()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized()
			return
		}

		// JSON numbers decode as float64
		userID, ok := claims["userId"].(float64)
		if !ok || userID <= 0 {
			unauthorized()
			return
		}
		username, ok := claims["username"].(string)
		if !ok || username == "" {
			unauthorized()
			return
		}

		actor := records.Actor{ID: uint(userID), Username: username}
		ctx := context.WithValue(r.Context(), ActorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext returns the authenticated actor, if any.
func ActorFromContext(ctx context.Context) (records.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(records.Actor)
	return actor, ok
}
