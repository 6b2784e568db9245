package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/middlewareinternal"
	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/util/validator"
)

type AuthController struct {
	authService core.AuthService
	validator   *validator.Validator
	logger      *zap.Logger
	cookieTTL   time.Duration
}

func NewAuthController(authService core.AuthService, v *validator.Validator, logger *zap.Logger, cookieTTL time.Duration) *AuthController {
	return &AuthController{
		authService: authService,
		validator:   v,
		logger:      logger,
		cookieTTL:   cookieTTL,
	}
}

type loginRequest struct {
	EmpresaID int64  `json:"empresa_id" validate:"required,gt=0"`
	Usuario   string `json:"usuario" validate:"required,max=50"`
	Senha     string `json:"senha" validate:"required"`
}

type loginResponse struct {
	Token        string              `json:"token"`
	RefreshToken string              `json:"refreshToken"`
	Type         string              `json:"type"`
	ID           int64               `json:"id"`
	Username     string              `json:"username"`
	Email        string              `json:"email"`
	NomeCompleto string              `json:"nomeCompleto"`
	Empresa      model.EmpresaResumo `json:"empresa"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		badRequest(w, r, "formato de requisição inválido")
		return
	}

	request.Usuario = strings.TrimSpace(request.Usuario)
	if err := c.validator.Struct(request); err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	result, err := c.authService.Login(r.Context(), request.EmpresaID, request.Usuario, request.Senha)
	if err != nil {
		c.logger.Warn("Login failed",
			zap.String("usuario", request.Usuario),
			zap.Int64("empresa_id", request.EmpresaID),
			zap.Error(err))
		respondError(w, r, c.logger, err)
		return
	}

	c.logger.Info("User logged in successfully",
		zap.Int64("user_id", result.Usuario.ID),
		zap.Int64("empresa_id", result.Empresa.ID))

	c.setCookie(w, result.Tokens.Token)
	render.JSON(w, r, loginResponse{
		Token:        result.Tokens.Token,
		RefreshToken: result.Tokens.RefreshToken,
		Type:         result.Tokens.Type,
		ID:           result.Usuario.ID,
		Username:     result.Usuario.Username,
		Email:        result.Usuario.Email,
		NomeCompleto: result.Usuario.NomeCompleto,
		Empresa:      result.Empresa,
	})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var request model.Registro
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		badRequest(w, r, "formato de requisição inválido")
		return
	}

	user, err := c.authService.Register(r.Context(), &request)
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, user)
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var request struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := render.DecodeJSON(r.Body, &request); err != nil || request.RefreshToken == "" {
		writeError(w, r, http.StatusBadRequest, "dados inválidos", map[string]string{"refreshToken": "campo obrigatório"})
		return
	}

	pair, err := c.authService.Refresh(r.Context(), request.RefreshToken)
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	c.setCookie(w, pair.Token)
	render.JSON(w, r, pair)
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewareinternal.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "não autorizado", nil)
		return
	}

	user, err := c.authService.Me(r.Context(), userID)
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, user)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewareinternal.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "não autorizado", nil)
		return
	}

	if err := c.authService.Logout(r.Context(), session); err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (c *AuthController) Empresas(w http.ResponseWriter, r *http.Request) {
	empresas, err := c.authService.EmpresasLogin(r.Context())
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, empresas)
}

func (c *AuthController) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(c.cookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
