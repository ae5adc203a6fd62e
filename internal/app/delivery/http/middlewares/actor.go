package middlewares

import (
	"context"
	"intake-service/internal/app/services/shared/jwtmanager"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the staff actor from the bearer token and stores it
// under CONTEXT_ACTOR_KEY.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		header := r.Header.Get(constvars.HeaderAuthorization)
		token, found := strings.CutPrefix(header, constvars.AuthorizationBearerPrefix)
		if !found || strings.TrimSpace(token) == "" {
			m.Log.Info("Middlewares.Authenticate missing bearer token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		verified, err := m.JWTManager.VerifyToken(r.Context(), &jwtmanager.VerifyTokenInput{Token: strings.TrimSpace(token)})
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		if verified.Actor.Role == constvars.ActorRolePatient {
			m.Log.Info("Middlewares.Authenticate patient token on staff route",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingActorIDKey, verified.Actor.ID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrForbidden(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ACTOR_KEY, verified.Actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles rejects actors whose role is not listed. It must run after
// Authenticate.
func (m *Middlewares) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := utils.GetActor(r.Context())
			if !ok {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrMissingActor(nil))
				return
			}
			if !allowed[actor.Role] {
				m.Log.Info("Middlewares.RequireRoles role not allowed",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.String(constvars.LoggingActorIDKey, actor.ID),
					zap.String(constvars.LoggingActorRoleKey, actor.Role),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrForbidden(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
