package services

import (
	"context"
	"log/slog"

	"uiventures-tps/internal/apiclient"
	"uiventures-tps/internal/errors"
	"uiventures-tps/internal/models"
)

const (
	msgSignInFailed = "Failed to sign in. Please check your details and try again."
	msgSignUpFailed = "Failed to sign up. Please check your details and try again."
)

type AuthAPI interface {
	SignIn(ctx context.Context, c apiclient.Credentials) (models.User, error)
	SignUp(ctx context.Context, r apiclient.Registration) (models.User, error)
}

// Auth exchanges the login and signup forms for the user record that
// becomes the session.
type Auth struct {
	api    AuthAPI
	logger *slog.Logger
}

func NewAuth(api AuthAPI, logger *slog.Logger) *Auth {
	return &Auth{api: api, logger: logger}
}

func (a *Auth) SignIn(ctx context.Context, form SignInForm) (models.User, error) {
	creds, err := form.Validate()
	if err != nil {
		return models.User{}, err
	}

	user, err := a.api.SignIn(ctx, creds)
	if err != nil {
		return models.User{}, errors.UpstreamWrap(err, msgSignInFailed)
	}

	a.logger.Info("user signed in", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (a *Auth) SignUp(ctx context.Context, form SignUpForm) (models.User, error) {
	reg, err := form.Validate()
	if err != nil {
		return models.User{}, err
	}

	user, err := a.api.SignUp(ctx, reg)
	if err != nil {
		return models.User{}, errors.UpstreamWrap(err, msgSignUpFailed)
	}

	a.logger.Info("user signed up", "user_id", user.ID, "role", user.Role, "department", user.Department)
	return user, nil
}
