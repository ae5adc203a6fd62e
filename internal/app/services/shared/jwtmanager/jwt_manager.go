package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// ActorClaims identifies the staff member or patient acting on a request.
type ActorClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 actor tokens.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	issuer string
	ttl    time.Duration
}

type CreateTokenInput struct {
	Actor models.Actor
	// TTL falls back to one hour when zero
	TTL time.Duration
}

type CreateTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}

type VerifyTokenInput struct {
	Token string
}

type VerifyTokenOutput struct {
	Actor     models.Actor
	ExpiresAt time.Time
}

func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, errors.New("JWT_SECRET is empty")
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		issuer: cfg.JWT.Issuer,
		ttl:    time.Hour,
	}, nil
}

func (j *JWTManager) CreateToken(ctx context.Context, in *CreateTokenInput) (*CreateTokenOutput, error) {
	j.log.Debug("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)))

	if in == nil || strings.TrimSpace(in.Actor.ID) == "" {
		return nil, fmt.Errorf("actor id is required")
	}
	ttl := in.TTL
	if ttl <= 0 {
		ttl = j.ttl
	}

	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := ActorClaims{
		Name: in.Actor.Name,
		Role: in.Actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   in.Actor.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return nil, err
	}
	return &CreateTokenOutput{Token: signed, ExpiresAt: expiresAt}, nil
}

// VerifyToken checks signature, expiry and issuer and returns the actor
// the token was issued to.
func (j *JWTManager) VerifyToken(ctx context.Context, in *VerifyTokenInput) (*VerifyTokenOutput, error) {
	requestID := utils.GetRequestID(ctx)

	if in == nil || strings.TrimSpace(in.Token) == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	claims := &ActorClaims{}
	parsed, err := jwt.ParseWithClaims(in.Token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: %v", constvars.ErrDevAuthSigningMethod, t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !parsed.Valid {
		j.log.Info("JWTManager.VerifyToken rejected token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return nil, exceptions.ErrTokenInvalidOrExpired(fmt.Errorf("unexpected issuer %q", claims.Issuer))
	}
	if claims.Subject == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New("token has no subject"))
	}

	out := &VerifyTokenOutput{
		Actor: models.Actor{ID: claims.Subject, Name: claims.Name, Role: claims.Role},
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
