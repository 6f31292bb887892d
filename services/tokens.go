package services

import (
	"context"
	"errors"

	"github.com/princinho/todoapi/database"
	"github.com/princinho/todoapi/metrics"
	"github.com/princinho/todoapi/models"
	"github.com/princinho/todoapi/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenService issues and checks auth tokens. A token authenticates only
// while it is listed on its owner; removing it from the list revokes it even
// though the signature stays valid.
type TokenService struct {
	users  database.UserStore
	secret []byte
}

func NewTokenService(users database.UserStore, secret []byte) *TokenService {
	return &TokenService{users: users, secret: secret}
}

func (s *TokenService) Issue(userID bson.ObjectID, access string) (string, error) {
	token, err := utils.GenerateToken(userID, access, s.secret)
	if err != nil {
		return "", internalError("sign token", err)
	}
	return token, nil
}

// Verify checks the signature and that the token was issued for auth.
func (s *TokenService) Verify(token string) (*utils.Claims, error) {
	claims, err := utils.ValidateToken(token, s.secret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Access != models.AccessAuth {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate resolves a presented token to its user. A bad signature, a
// missing user and a revoked token all yield the same ErrUnauthorized.
func (s *TokenService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Verify(token)
	if err != nil {
		metrics.AuthFailures.WithLabelValues(metrics.StageToken).Inc()
		return nil, ErrUnauthorized
	}
	userID, _ := utils.ParseObjectID(claims.UserID)

	user, err := s.users.FindUserByToken(ctx, userID, models.AccessAuth, token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			metrics.AuthFailures.WithLabelValues(metrics.StageToken).Inc()
			return nil, ErrUnauthorized
		}
		return nil, internalError("find user by token", err)
	}
	return user, nil
}

// Revoke removes the matching token from the user's list. Revoking a token
// that is already gone succeeds.
func (s *TokenService) Revoke(ctx context.Context, user *models.User, token string) error {
	if err := s.users.PullToken(ctx, user.ID, token); err != nil {
		return internalError("pull token", err)
	}
	metrics.AuthTokensRevoked.Inc()
	return nil
}

// authEntry signs a new auth token for userID without storing it.
func (s *TokenService) authEntry(userID bson.ObjectID) (models.Token, error) {
	token, err := s.Issue(userID, models.AccessAuth)
	if err != nil {
		return models.Token{}, err
	}
	return models.Token{Access: models.AccessAuth, Token: token}, nil
}

// grant issues a new auth token and appends it to the user's list.
func (s *TokenService) grant(ctx context.Context, user *models.User) (string, error) {
	entry, err := s.authEntry(user.ID)
	if err != nil {
		return "", err
	}
	if err := s.users.PushToken(ctx, user.ID, entry); err != nil {
		return "", internalError("push token", err)
	}
	user.Tokens = append(user.Tokens, entry)
	metrics.AuthTokensIssued.Inc()
	return entry.Token, nil
}
