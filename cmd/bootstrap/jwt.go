package bootstrap

import (
	"time"

	"approval-service/internal/handler/middleware"
	"approval-service/internal/pkg/config"
	"approval-service/internal/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		fx.Annotate(
			NewTokenValidator,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, tokenDuration)
}

// tokenValidator narrows the JWT service to the identity tuple the middleware
// needs.
type tokenValidator struct {
	service *jwt.Service
}

func NewTokenValidator(service *jwt.Service) *tokenValidator {
	return &tokenValidator{service: service}
}

func (v *tokenValidator) Validate(token string) (uuid.UUID, string, error) {
	claims, err := v.service.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.ActorID, claims.Role, nil
}
