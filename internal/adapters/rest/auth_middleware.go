package rest

import (
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/port/usecases_port"
	"net/http"
	"strings"
)

type AuthMiddleware struct {
	validateUC usecases_port.ValidateTokenUseCasePort
}

func NewAuthMiddleware(validateUC usecases_port.ValidateTokenUseCasePort) *AuthMiddleware {
	return &AuthMiddleware{validateUC: validateUC}
}

// Authenticate - middleware для проверки JWT из заголовка Authorization.
// Нет токена - 401, токен не прошел проверку - 403.
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := contextkeys.LoggerFromContext(r.Context())

		tokenString := bearerToken(r.Header.Get("Authorization"))
		if tokenString == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := am.validateUC.Execute(r.Context(), tokenString)
		if err != nil {
			logger.Warn("Token validation failed", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		// Дальше по цепочке логи идут с user_id
		ctx := contextkeys.ContextWithClaims(r.Context(), claims)
		ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"user_id": claims.UserID}))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только пользователей с одной из ролей.
func (am *AuthMiddleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := contextkeys.ClaimsFromContext(r.Context())
			if !ok {
				WriteJSONError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			for _, role := range roles {
				if claims.UserType == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteJSONError(w, http.StatusForbidden, roleDeniedMessage(roles))
		})
	}
}

func roleDeniedMessage(roles []string) string {
	if len(roles) == 1 {
		switch roles[0] {
		case domain.UserTypeSeller:
			return "Seller access required"
		case domain.UserTypeBuyer:
			return "Buyer access required"
		case domain.UserTypeAdmin:
			return "Admin access required"
		}
	}
	return "Access denied"
}

// bearerToken достает токен из "Bearer <token>".
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// claimsFromRequest - данные пользователя, положенные Authenticate.
func claimsFromRequest(r *http.Request) (*domain.Claims, bool) {
	return contextkeys.ClaimsFromContext(r.Context())
}
