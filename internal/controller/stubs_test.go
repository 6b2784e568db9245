package controller

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
)

type mockEmpresaService struct {
	core.EmpresaService
	mock.Mock
}

func (m *mockEmpresaService) Create(ctx context.Context, e *model.Empresa) error {
	args := m.Called(e)
	if fn, ok := args.Get(0).(func(*model.Empresa) error); ok {
		return fn(e)
	}
	return args.Error(0)
}

func (m *mockEmpresaService) Get(ctx context.Context, id int64) (*model.Empresa, error) {
	args := m.Called(id)
	e, _ := args.Get(0).(*model.Empresa)
	return e, args.Error(1)
}

func (m *mockEmpresaService) GetByCNPJ(ctx context.Context, v string) (*model.Empresa, error) {
	args := m.Called(v)
	e, _ := args.Get(0).(*model.Empresa)
	return e, args.Error(1)
}

func (m *mockEmpresaService) List(ctx context.Context) ([]*model.Empresa, error) {
	args := m.Called()
	l, _ := args.Get(0).([]*model.Empresa)
	return l, args.Error(1)
}

func (m *mockEmpresaService) ListByAtiva(ctx context.Context, ativa bool) ([]*model.Empresa, error) {
	args := m.Called(ativa)
	l, _ := args.Get(0).([]*model.Empresa)
	return l, args.Error(1)
}

func (m *mockEmpresaService) ListByTipoContribuinte(ctx context.Context, tipo string) ([]*model.Empresa, error) {
	args := m.Called(tipo)
	l, _ := args.Get(0).([]*model.Empresa)
	return l, args.Error(1)
}

func (m *mockEmpresaService) Update(ctx context.Context, id int64, e *model.Empresa) (*model.Empresa, error) {
	args := m.Called(id, e)
	out, _ := args.Get(0).(*model.Empresa)
	return out, args.Error(1)
}

func (m *mockEmpresaService) SetAtiva(ctx context.Context, id int64, ativa bool) (*model.Empresa, error) {
	args := m.Called(id, ativa)
	e, _ := args.Get(0).(*model.Empresa)
	return e, args.Error(1)
}

func (m *mockEmpresaService) Delete(ctx context.Context, id int64) error {
	return m.Called(id).Error(0)
}

type mockUnidadeService struct {
	core.UnidadeService
	mock.Mock
}

func (m *mockUnidadeService) Create(ctx context.Context, u *model.Unidade) error {
	args := m.Called(u)
	if fn, ok := args.Get(0).(func(*model.Unidade) error); ok {
		return fn(u)
	}
	return args.Error(0)
}

func (m *mockUnidadeService) ListDerivadas(ctx context.Context, paiID int64) ([]*model.Unidade, error) {
	args := m.Called(paiID)
	l, _ := args.Get(0).([]*model.Unidade)
	return l, args.Error(1)
}

func (m *mockUnidadeService) Delete(ctx context.Context, id int64) error {
	return m.Called(id).Error(0)
}

func (m *mockUnidadeService) FatorTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	args := m.Called(id)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

type mockLocalService struct {
	core.LocalService
	mock.Mock
}

func (m *mockLocalService) Create(ctx context.Context, l *model.Local) error {
	return m.Called(l).Error(0)
}

func (m *mockLocalService) Update(ctx context.Context, id int64, l *model.Local) (*model.Local, error) {
	args := m.Called(id, l)
	out, _ := args.Get(0).(*model.Local)
	return out, args.Error(1)
}

func (m *mockLocalService) SearchAtivos(ctx context.Context, nome string) ([]*model.Local, error) {
	args := m.Called(nome)
	l, _ := args.Get(0).([]*model.Local)
	return l, args.Error(1)
}

type mockAuthService struct {
	core.AuthService
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, empresaID int64, username, senha string) (*model.LoginResult, error) {
	args := m.Called(empresaID, username, senha)
	res, _ := args.Get(0).(*model.LoginResult)
	return res, args.Error(1)
}

func (m *mockAuthService) Register(ctx context.Context, r *model.Registro) (*model.Usuario, error) {
	args := m.Called(r)
	u, _ := args.Get(0).(*model.Usuario)
	return u, args.Error(1)
}

func (m *mockAuthService) Refresh(ctx context.Context, token string) (*model.TokenPair, error) {
	args := m.Called(token)
	p, _ := args.Get(0).(*model.TokenPair)
	return p, args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, userID int64) (*model.Usuario, error) {
	args := m.Called(userID)
	u, _ := args.Get(0).(*model.Usuario)
	return u, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, session *model.Session) error {
	return m.Called(session).Error(0)
}

func (m *mockAuthService) EmpresasLogin(ctx context.Context) ([]model.EmpresaResumo, error) {
	args := m.Called()
	l, _ := args.Get(0).([]model.EmpresaResumo)
	return l, args.Error(1)
}
