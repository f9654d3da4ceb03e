package commands

import (
	"context"
	"crypto/subtle"

	"mokka-api/internal/pkg/config"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/pkg/jwt"
	"mokka-api/internal/pkg/password"
)

var ErrInvalidCredentials = errs.New("invalid credentials")

type AuthCommands interface {
	Login(ctx context.Context, username, plainPassword string) (string, error)
}

type authUseCaseImpl struct {
	admin      config.AdminConfig
	jwtService *jwt.Service
}

func NewAuthUseCase(admin config.AdminConfig, jwtService *jwt.Service) AuthCommands {
	return &authUseCaseImpl{
		admin:      admin,
		jwtService: jwtService,
	}
}

// Login checks the single admin account held in configuration. Username and
// password failures are indistinguishable to the caller.
func (a *authUseCaseImpl) Login(_ context.Context, username, plainPassword string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.admin.Username)) == 1
	passwordOK := password.ComparePassword(a.admin.PasswordHash, plainPassword) == nil
	if !usernameOK || !passwordOK {
		return "", ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(a.admin.Username, jwt.RoleAdmin)
	if err != nil {
		return "", errs.Wrap(err, "failed to generate token")
	}
	return token, nil
}
