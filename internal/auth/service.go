package auth

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"stockroom/internal/models"
	"stockroom/internal/repo"
)

// Единая ошибка на любой провал логина: не раскрываем,
// что именно не совпало — идентификатор или пароль.
var ErrInvalidCredentials = errors.New("Unauthorized: Invalid credentials")

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// TokenResponse — плоский формат ответа логина (не конверт).
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        *models.User `json:"user"`
}

type Service struct {
	Users  *repo.UserStore
	Tokens TokenProvider
}

func NewService(users *repo.UserStore, tokens TokenProvider) *Service {
	return &Service{Users: users, Tokens: tokens}
}

// Login проверяет пару идентификатор/пароль и выпускает токен.
// Идентификатор, похожий на email, ищется по полю email, иначе — по username.
func (s *Service) Login(ctx context.Context, identifier, password string) (*TokenResponse, error) {
	var (
		u   *models.User
		err error
	)
	if emailRe.MatchString(identifier) {
		u, err = s.Users.ByEmail(ctx, identifier)
	} else {
		u, err = s.Users.ByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.respondWithToken(u)
}

// Refresh выпускает свежий токен для уже аутентифицированного пользователя.
// Blacklist'а нет, старый токен живёт до своего exp.
func (s *Service) Refresh(u *models.User) (*TokenResponse, error) {
	return s.respondWithToken(u)
}

func (s *Service) respondWithToken(u *models.User) (*TokenResponse, error) {
	tok, expiresIn, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		User:        u,
	}, nil
}
