package model

import "time"

type Usuario struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	SenhaHash    string     `json:"-"`
	NomeCompleto string     `json:"nomeCompleto"`
	Ativo        bool       `json:"ativo"`
	Bloqueado    bool       `json:"bloqueado"`
	CriadoEm     time.Time  `json:"criadoEm"`
	AtualizadoEm time.Time  `json:"atualizadoEm"`
	UltimoAcesso *time.Time `json:"ultimoAcesso,omitempty"`
}

// Session is the identity carried by a validated access token.
type Session struct {
	UserID    int64
	EmpresaID int64
	TokenID   string
	ExpiresAt time.Time
}

// TokenPair is issued on login and refresh.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Type         string `json:"type"`
}

type LoginResult struct {
	Tokens  TokenPair
	Usuario *Usuario
	Empresa EmpresaResumo
}

// Registro is the self-service sign-up payload.
type Registro struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email,max=150"`
	Senha        string `json:"senha" validate:"required,min=6,max=72"`
	NomeCompleto string `json:"nomeCompleto" validate:"required,max=150"`
}
