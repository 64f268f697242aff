package service

import (
	"context"
	"strings"
	"time"

	"github.com/alimikegami/apparel-store/config"
	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/repository"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/alimikegami/apparel-store/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	config config.Config
}

func CreateUserService(repo repository.UserRepository, config config.Config) UserService {
	return &UserServiceImpl{repo: repo, config: config}
}

func (s *UserServiceImpl) Signup(ctx context.Context, data dto.SignupRequest) (resp dto.UserResponse, err error) {
	email := normalizeEmail(data.Email)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}

	if !user.ID.IsZero() {
		return resp, errs.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Signup").Msg("")
		return
	}

	now := time.Now().UTC()
	user = domain.User{
		Name:           strings.TrimSpace(data.Name),
		Email:          email,
		HashedPassword: string(hash),
		Role:           false,
		ExternalID:     ulid.Make().String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	user.ID, err = s.repo.AddUser(ctx, user)
	if err != nil {
		return
	}

	return toUserResponse(user), nil
}

func (s *UserServiceImpl) Signin(ctx context.Context, data dto.SigninRequest) (resp dto.LoginResponse, err error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(data.Email))
	if err != nil {
		return
	}

	if user.ID.IsZero() {
		return resp, errs.ErrInvalidCredentialsEmail
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(data.Password))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "Signin").Msg("")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ID.Hex(), user.Name, user.ExternalID, s.config.JWTSecret)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Signin").Msg("")
		return
	}

	return dto.LoginResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	}, nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context) (users []dto.UserResponse, err error) {
	data, err := s.repo.GetUsers(ctx)
	if err != nil {
		return
	}

	users = make([]dto.UserResponse, 0, len(data))
	for _, u := range data {
		users = append(users, toUserResponse(u))
	}

	return users, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id string) (user dto.UserResponse, err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	data, err := s.repo.GetUserByID(ctx, oid)
	if err != nil {
		return
	}

	return toUserResponse(data), nil
}

// UpdatePassword only lets a user change their own password.
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id string, requesterID string, data dto.UpdatePasswordRequest) (err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	user, err := s.repo.GetUserByID(ctx, oid)
	if err != nil {
		return
	}

	if requesterID != user.ID.Hex() {
		return errs.ErrUnauthorized
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(data.CurrentPassword)); err != nil {
		return errs.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdatePassword").Msg("")
		return
	}

	return s.repo.UpdateUserPassword(ctx, oid, string(hash))
}

func toUserResponse(u domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
