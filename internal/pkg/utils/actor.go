package utils

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
)

// GetActor returns the actor the request was authenticated as.
func GetActor(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(constvars.CONTEXT_ACTOR_KEY).(models.Actor)
	if !ok || actor.IsZero() {
		return models.Actor{}, false
	}
	return actor, true
}
