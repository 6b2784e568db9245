package core

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gildecio/ezion/internal/model"
)

type (
	AuthService interface {
		Login(ctx context.Context, empresaID int64, username, senha string) (*model.LoginResult, error)
		Register(ctx context.Context, registro *model.Registro) (*model.Usuario, error)
		Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
		ValidateToken(ctx context.Context, tokenString string) (*model.Session, error)
		Logout(ctx context.Context, session *model.Session) error
		Me(ctx context.Context, userID int64) (*model.Usuario, error)
		EmpresasLogin(ctx context.Context) ([]model.EmpresaResumo, error)
		EnsureAdmin(ctx context.Context, username, senha string) error
	}

	EmpresaService interface {
		Create(ctx context.Context, empresa *model.Empresa) error
		Get(ctx context.Context, id int64) (*model.Empresa, error)
		GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error)
		GetByInscricaoEstadual(ctx context.Context, ie string) (*model.Empresa, error)
		List(ctx context.Context) ([]*model.Empresa, error)
		ListByAtiva(ctx context.Context, ativa bool) ([]*model.Empresa, error)
		ListByRegime(ctx context.Context, regime string) ([]*model.Empresa, error)
		ListByTipoContribuinte(ctx context.Context, tipo string) ([]*model.Empresa, error)
		Update(ctx context.Context, id int64, empresa *model.Empresa) (*model.Empresa, error)
		SetAtiva(ctx context.Context, id int64, ativa bool) (*model.Empresa, error)
		Delete(ctx context.Context, id int64) error
	}

	UnidadeService interface {
		Create(ctx context.Context, unidade *model.Unidade) error
		Get(ctx context.Context, id int64) (*model.Unidade, error)
		GetBySigla(ctx context.Context, sigla string) (*model.Unidade, error)
		List(ctx context.Context) ([]*model.Unidade, error)
		ListAtivas(ctx context.Context) ([]*model.Unidade, error)
		ListBase(ctx context.Context) ([]*model.Unidade, error)
		ListDerivadas(ctx context.Context, paiID int64) ([]*model.Unidade, error)
		ListComFator(ctx context.Context) ([]*model.Unidade, error)
		Update(ctx context.Context, id int64, unidade *model.Unidade) (*model.Unidade, error)
		SetAtivo(ctx context.Context, id int64, ativo bool) (*model.Unidade, error)
		Delete(ctx context.Context, id int64) error
		FatorTotal(ctx context.Context, id int64) (decimal.Decimal, error)
	}

	LocalService interface {
		Create(ctx context.Context, local *model.Local) error
		Get(ctx context.Context, id int64) (*model.Local, error)
		GetByNome(ctx context.Context, nome string) (*model.Local, error)
		List(ctx context.Context) ([]*model.Local, error)
		ListAtivos(ctx context.Context) ([]*model.Local, error)
		SearchAtivos(ctx context.Context, nome string) ([]*model.Local, error)
		Update(ctx context.Context, id int64, local *model.Local) (*model.Local, error)
		SetAtivo(ctx context.Context, id int64, ativo bool) (*model.Local, error)
		Delete(ctx context.Context, id int64) error
	}
)
