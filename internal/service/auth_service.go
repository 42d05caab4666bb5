package service

import (
	"context"
	"strings"
	"time"

	"rockspec-notes/internal/dto"
	"rockspec-notes/internal/entity"
	"rockspec-notes/internal/pkg/apperr"
	"rockspec-notes/internal/pkg/password"
	"rockspec-notes/internal/repository/specification"
	"rockspec-notes/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type IAuthService interface {
	Join(ctx context.Context, req *dto.JoinRequest) (*entity.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	hasher     *password.Hasher
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, hasher *password.Hasher) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func validEmail(email string) bool {
	return len(email) > 3 && strings.Contains(email, "@")
}

// Join validates the registration form (email before password, first
// invalid field wins), rejects duplicate emails and stores a new user
// carrying only the password digest.
func (s *authService) Join(ctx context.Context, req *dto.JoinRequest) (*entity.User, error) {
	if !validEmail(req.Email) {
		return nil, apperr.NewValidation("email", "Email is invalid")
	}
	if len(req.Password) < minPasswordLength {
		if req.Password == "" {
			return nil, apperr.NewValidation("password", "Password is required")
		}
		return nil, apperr.NewValidation("password", "Password is too short")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NewConflict("email", "A user already exists with this email")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login resolves credentials to a user. Unknown email and wrong password
// carry the same message so account existence is not leaked through the
// response text.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, error) {
	if !validEmail(req.Email) {
		return nil, apperr.NewValidation("email", "Email is invalid")
	}
	if req.Password == "" {
		return nil, apperr.NewValidation("password", "Password is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NewValidation("email", "Invalid email or password")
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, apperr.NewValidation("password", "Invalid email or password")
	}

	return user, nil
}
