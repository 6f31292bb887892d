package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/metrics"
	"github.com/princinho/todoapi/models"
	"github.com/princinho/todoapi/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserServiceConfig struct {
	BcryptCost        int
	PasswordMinLength int
}

type UserService struct {
	users    database.UserStore
	tokens   *TokenService
	validate *validator.Validate
	cfg      UserServiceConfig
}

func NewUserService(users database.UserStore, tokens *TokenService, cfg UserServiceConfig) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfg:      cfg,
	}
}

func (s *UserService) validateCredentials(email, password string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return validationError(fmt.Sprintf("%q is not a valid email", email))
	}
	if len(password) < s.cfg.PasswordMinLength {
		return validationError(fmt.Sprintf("password must be at least %d characters", s.cfg.PasswordMinLength))
	}
	if len(password) > utils.MaxPasswordBytes {
		return validationError(fmt.Sprintf("password must be at most %d bytes", utils.MaxPasswordBytes))
	}
	return nil
}

// SignUp creates the account and its first session. An email that is
// already registered is a validation failure, same as a malformed one.
// The user is inserted together with its first token, so a failed signup
// leaves nothing behind.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := s.validateCredentials(email, password); err != nil {
		return nil, "", err
	}

	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", internalError("hash password", err)
	}

	user := &models.User{
		ID:           bson.NewObjectID(),
		Email:        email,
		PasswordHash: hash,
	}
	entry, err := s.tokens.authEntry(user.ID)
	if err != nil {
		return nil, "", err
	}
	user.Tokens = []models.Token{entry}

	if err := s.users.InsertUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, "", validationError("email already in use")
		}
		return nil, "", internalError("insert user", err)
	}
	metrics.AuthTokensIssued.Inc()
	return user, entry.Token, nil
}

// LogIn adds a session without touching the user's other sessions. Unknown
// email and wrong password are indistinguishable.
func (s *UserService) LogIn(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			metrics.AuthFailures.WithLabelValues(metrics.StageLogin).Inc()
			return nil, "", ErrUnauthorized
		}
		return nil, "", internalError("find user by email", err)
	}

	if !utils.PasswordMatches(user.PasswordHash, password) {
		metrics.AuthFailures.WithLabelValues(metrics.StageLogin).Inc()
		return nil, "", ErrUnauthorized
	}

	token, err := s.tokens.grant(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) LogOut(ctx context.Context, user *models.User, token string) error {
	return s.tokens.Revoke(ctx, user, token)
}

func (s *UserService) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internalError("find user", err)
	}
	return user, nil
}

// Seed creates the account unless the email is already registered. It
// reports whether a user was inserted.
func (s *UserService) Seed(ctx context.Context, email, password string) (bool, error) {
	if err := s.validateCredentials(email, password); err != nil {
		return false, err
	}
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return false, internalError("hash password", err)
	}

	err = s.users.InsertUser(ctx, &models.User{Email: email, PasswordHash: hash})
	switch {
	case errors.Is(err, database.ErrDuplicateKey):
		return false, nil
	case err != nil:
		return false, internalError("seed user", err)
	}
	return true, nil
}
