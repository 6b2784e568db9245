package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/repository"
	"github.com/gildecio/ezion/internal/util/validator"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive or blocked")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmpresaUnavailable = errors.New("empresa not found or inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	bearer           = "Bearer"
)

type AuthConfig struct {
	SecretKey  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type tokenClaims struct {
	UserID    int64  `json:"user_id"`
	EmpresaID int64  `json:"empresa_id"`
	Type      string `json:"typ"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo    repository.UsuarioRepository
	empresaRepo repository.EmpresaRepository
	tokens      repository.TokenStore
	validator   *validator.Validator
	cfg         AuthConfig
	logger      *zap.Logger
	now         func() time.Time
}

func NewAuthService(
	userRepo repository.UsuarioRepository,
	empresaRepo repository.EmpresaRepository,
	tokens repository.TokenStore,
	v *validator.Validator,
	cfg AuthConfig,
	logger *zap.Logger,
) core.AuthService {
	return &authService{
		userRepo:    userRepo,
		empresaRepo: empresaRepo,
		tokens:      tokens,
		validator:   v,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, empresaID int64, username, senha string) (*model.LoginResult, error) {
	empresa, err := s.empresaRepo.GetByID(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil || !empresa.Ativa {
		return nil, ErrEmpresaUnavailable
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(senha)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Ativo || user.Bloqueado {
		return nil, ErrUserInactive
	}

	pair, err := s.issuePair(user.ID, empresa.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.userRepo.TouchUltimoAcesso(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to record last access",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
	} else {
		user.UltimoAcesso = &now
	}

	return &model.LoginResult{
		Tokens:  *pair,
		Usuario: user,
		Empresa: empresa.Resumo(),
	}, nil
}

func (s *authService) Register(ctx context.Context, r *model.Registro) (*model.Usuario, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.NomeCompleto = strings.TrimSpace(r.NomeCompleto)
	if err := s.validator.Struct(r); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, r.Username)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing, err = s.userRepo.GetByEmail(ctx, r.Email)
		if err != nil {
			return nil, err
		}
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	user, err := s.create(ctx, r.Username, r.Email, r.NomeCompleto, r.Senha)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))
	return user, nil
}

func (s *authService) create(ctx context.Context, username, email, nome, senha string) (*model.Usuario, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.Usuario{
		Username:     username,
		Email:        email,
		SenhaHash:    string(hashed),
		NomeCompleto: nome,
		Ativo:        true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Refresh trades a refresh token for a new pair. The presented refresh token is revoked.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.parse(ctx, refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Ativo || user.Bloqueado {
		return nil, ErrUserInactive
	}

	empresa, err := s.empresaRepo.GetByID(ctx, claims.EmpresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil || !empresa.Ativa {
		return nil, ErrEmpresaUnavailable
	}

	first, err := s.revoke(ctx, claims)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, ErrTokenRevoked
	}
	return s.issuePair(user.ID, empresa.ID)
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*model.Session, error) {
	claims, err := s.parse(ctx, tokenString, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	return &model.Session{
		UserID:    claims.UserID,
		EmpresaID: claims.EmpresaID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) Logout(ctx context.Context, session *model.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if _, err := s.tokens.Revoke(ctx, session.TokenID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("User logged out", zap.Int64("user_id", session.UserID))
	return nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*model.Usuario, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *authService) EmpresasLogin(ctx context.Context) ([]model.EmpresaResumo, error) {
	empresas, err := s.empresaRepo.ListByAtiva(ctx, true)
	if err != nil {
		return nil, err
	}

	resumo := make([]model.EmpresaResumo, 0, len(empresas))
	for _, e := range empresas {
		resumo = append(resumo, e.Resumo())
	}
	return resumo, nil
}

// EnsureAdmin creates the bootstrap account when it does not exist yet. An existing account is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context, username, senha string) error {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	user, err := s.create(ctx, username, username+"@localhost", "Administrador", senha)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.Info("Admin user created", zap.Int64("user_id", user.ID), zap.String("username", username))
	return nil
}

func (s *authService) issuePair(userID, empresaID int64) (*model.TokenPair, error) {
	access, err := s.generateToken(userID, empresaID, tokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(userID, empresaID, tokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{Token: access, RefreshToken: refresh, Type: bearer}, nil
}

func (s *authService) generateToken(userID, empresaID int64, typ string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:    userID,
		EmpresaID: empresaID,
		Type:      typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *authService) parse(ctx context.Context, tokenString, typ string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Type != typ || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// revoke reports false when another request already spent the token.
func (s *authService) revoke(ctx context.Context, claims *tokenClaims) (bool, error) {
	return s.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time.Sub(s.now()))
}
