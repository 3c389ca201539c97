package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"reviewio/internal/logging"
	m "reviewio/internal/models"
	"reviewio/internal/repository"
)

// Claims is the JWT payload: the user ID plus the registered claims.
type Claims struct {
	UID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users  *repository.UserRepository
	Secret []byte
	TTL    time.Duration
}

type SignupInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*m.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &m.User{
		Name:         strings.TrimSpace(in.Name),
		Username:     strings.ToLower(strings.TrimSpace(in.Username)),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         m.RoleUser,
		Active:       true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, err := s.IssueToken(u.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	logging.Ctx(ctx).Info().Str("user", u.ID.Hex()).Msg("user signed up")
	return u, token, nil
}

// Login checks the password and ban state. An expired ban is lifted here.
func (s *AuthService) Login(ctx context.Context, email, password string) (*m.User, string, error) {
	u, err := s.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrBadCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}

	now := time.Now()
	switch {
	case u.Banned(now):
		return nil, "", ErrBanned
	case u.BanExpires != nil:
		if err := s.Users.Reactivate(ctx, u.ID); err != nil {
			return nil, "", err
		}
		u.Active, u.BanExpires = true, nil
		logging.Ctx(ctx).Info().Str("user", u.ID.Hex()).Msg("ban expired, account reactivated")
	case !u.Active:
		return nil, "", ErrAccountGone
	}

	token, err := s.IssueToken(u.ID.Hex())
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) IssueToken(uid string) (string, error) {
	now := time.Now()
	claims := Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}
