package middlewares

import (
	"intake-service/internal/app/config"
	"intake-service/internal/app/services/shared/jwtmanager"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	JWTManager     *jwtmanager.JWTManager
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, jwtManager *jwtmanager.JWTManager, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		JWTManager:     jwtManager,
		InternalConfig: internalConfig,
	}
}
