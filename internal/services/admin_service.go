package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/models/request_models"
	"storefront/internal/models/response_models"
	"storefront/pkg/utils"
)

const RoleAdmin = "admin"

type AdminServiceInterface interface {
	Login(ctx context.Context, req request_models.AdminLoginRequest) (*response_models.LoginResponse, error)
}

// AdminService authenticates the single operator account configured
// through the environment.
type AdminService struct {
	email        string
	passwordHash string
	tokens       *utils.TokenIssuer
	log          *zap.Logger

	// decoyHash is compared on unknown emails so both rejections cost a
	// bcrypt round.
	decoyHash string
	compare   func(hash, plain string) error
}

func NewAdminService(email, passwordHash string, tokens *utils.TokenIssuer, log *zap.Logger) AdminServiceInterface {
	decoy, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		log.Warn("generating decoy password hash", zap.Error(err))
	}
	return &AdminService{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		tokens:       tokens,
		log:          log.Named("admin"),
		decoyHash:    decoy,
		compare:      utils.ComparePasswords,
	}
}

func (s *AdminService) Login(_ context.Context, req request_models.AdminLoginRequest) (*response_models.LoginResponse, error) {
	if s.email == "" || s.passwordHash == "" {
		return nil, utils.ErrInvalidCredentials
	}

	hash := s.passwordHash
	known := strings.ToLower(strings.TrimSpace(req.Email)) == s.email
	if !known {
		hash = s.decoyHash
	}
	if err := s.compare(hash, req.Password); err != nil || !known {
		s.log.Warn("admin login rejected")
		return nil, utils.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(s.email, RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &response_models.LoginResponse{Token: token}, nil
}
