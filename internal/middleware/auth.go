package middleware

import (
	"net/http"

	"medicore-be/internal/apperror"
	"medicore-be/internal/auth"
	"medicore-be/internal/logger"
	"medicore-be/internal/utils"

	"go.uber.org/zap"
)

// Authenticator resolves the caller from the access token. It is passive:
// requests without a token pass through anonymous, route guards decide access.
type Authenticator struct {
	tokens *auth.TokenManager
}

func NewAuthenticator(tokens *auth.TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.TokenFromRequest(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.tokens.Parse(tokenStr)
		if err != nil {
			logger.FromCtx(r.Context()).Debug("rejected access token",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			writeError(w, r, apperror.ErrUnauthorized.WithMessage("Invalid token"))
			return
		}

		ctx := utils.WithPrincipal(r.Context(), utils.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		})
		ctx = logger.WithUserID(ctx, claims.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
