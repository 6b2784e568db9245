package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/repository"
)

type mockEmpresaRepo struct {
	mock.Mock
}

func (m *mockEmpresaRepo) Create(ctx context.Context, e *model.Empresa) error {
	args := m.Called(ctx, e)
	if fn, ok := args.Get(0).(func(*model.Empresa) error); ok {
		return fn(e)
	}
	return args.Error(0)
}

func (m *mockEmpresaRepo) GetByID(ctx context.Context, id int64) (*model.Empresa, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*model.Empresa)
	return e, args.Error(1)
}

func (m *mockEmpresaRepo) GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	args := m.Called(ctx, cnpj)
	e, _ := args.Get(0).(*model.Empresa)
	return e, args.Error(1)
}

func (m *mockEmpresaRepo) GetByInscricaoEstadual(ctx context.Context, ie string) (*model.Empresa, error) {
	args := m.Called(ctx, ie)
	e, _ := args.Get(0).(*model.Empresa)
	return e, args.Error(1)
}

func (m *mockEmpresaRepo) List(ctx context.Context) ([]*model.Empresa, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*model.Empresa)
	return l, args.Error(1)
}

func (m *mockEmpresaRepo) ListByAtiva(ctx context.Context, ativa bool) ([]*model.Empresa, error) {
	args := m.Called(ctx, ativa)
	l, _ := args.Get(0).([]*model.Empresa)
	return l, args.Error(1)
}

func (m *mockEmpresaRepo) ListByRegime(ctx context.Context, regime model.Regime) ([]*model.Empresa, error) {
	args := m.Called(ctx, regime)
	l, _ := args.Get(0).([]*model.Empresa)
	return l, args.Error(1)
}

func (m *mockEmpresaRepo) ListByTipoContribuinte(ctx context.Context, tipo model.TipoContribuinte) ([]*model.Empresa, error) {
	args := m.Called(ctx, tipo)
	l, _ := args.Get(0).([]*model.Empresa)
	return l, args.Error(1)
}

func (m *mockEmpresaRepo) Update(ctx context.Context, e *model.Empresa) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEmpresaRepo) SetAtiva(ctx context.Context, id int64, ativa bool) error {
	return m.Called(ctx, id, ativa).Error(0)
}

func (m *mockEmpresaRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsuarioRepo struct {
	mock.Mock
}

func (m *mockUsuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	args := m.Called(ctx, u)
	if fn, ok := args.Get(0).(func(*model.Usuario) error); ok {
		return fn(u)
	}
	return args.Error(0)
}

func (m *mockUsuarioRepo) GetByID(ctx context.Context, id int64) (*model.Usuario, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.Usuario)
	return u, args.Error(1)
}

func (m *mockUsuarioRepo) GetByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.Usuario)
	return u, args.Error(1)
}

func (m *mockUsuarioRepo) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.Usuario)
	return u, args.Error(1)
}

func (m *mockUsuarioRepo) TouchUltimoAcesso(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// fakeUnidadeRepo keeps unidades in a map so parent chains can be walked.
type fakeUnidadeRepo struct {
	byID   map[int64]*model.Unidade
	nextID int64
}

func newFakeUnidadeRepo(unidades ...*model.Unidade) *fakeUnidadeRepo {
	r := &fakeUnidadeRepo{byID: make(map[int64]*model.Unidade)}
	for _, u := range unidades {
		r.byID[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUnidadeRepo) Create(_ context.Context, u *model.Unidade) error {
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUnidadeRepo) GetByID(_ context.Context, id int64) (*model.Unidade, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUnidadeRepo) GetBySigla(_ context.Context, sigla string) (*model.Unidade, error) {
	for _, u := range r.byID {
		if u.Sigla == sigla {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUnidadeRepo) filter(keep func(*model.Unidade) bool) []*model.Unidade {
	out := make([]*model.Unidade, 0)
	for _, u := range r.byID {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func (r *fakeUnidadeRepo) List(context.Context) ([]*model.Unidade, error) {
	return r.filter(func(*model.Unidade) bool { return true }), nil
}

func (r *fakeUnidadeRepo) ListAtivas(context.Context) ([]*model.Unidade, error) {
	return r.filter(func(u *model.Unidade) bool { return u.Ativo }), nil
}

func (r *fakeUnidadeRepo) ListBase(context.Context) ([]*model.Unidade, error) {
	return r.filter(func(u *model.Unidade) bool { return u.UnidadePaiID == nil }), nil
}

func (r *fakeUnidadeRepo) ListDerivadas(_ context.Context, paiID int64) ([]*model.Unidade, error) {
	return r.filter(func(u *model.Unidade) bool { return u.UnidadePaiID != nil && *u.UnidadePaiID == paiID }), nil
}

func (r *fakeUnidadeRepo) ListComFator(context.Context) ([]*model.Unidade, error) {
	return r.filter(func(u *model.Unidade) bool { return u.Fator.Valid }), nil
}

func (r *fakeUnidadeRepo) CountDerivadas(ctx context.Context, paiID int64) (int, error) {
	l, _ := r.ListDerivadas(ctx, paiID)
	return len(l), nil
}

func (r *fakeUnidadeRepo) Update(_ context.Context, u *model.Unidade) error {
	if _, ok := r.byID[u.ID]; !ok {
		return errNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUnidadeRepo) SetAtivo(_ context.Context, id int64, ativo bool) error {
	u, ok := r.byID[id]
	if !ok {
		return errNotFound
	}
	u.Ativo = ativo
	return nil
}

func (r *fakeUnidadeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return errNotFound
	}
	delete(r.byID, id)
	return nil
}

type mockLocalRepo struct {
	mock.Mock
}

func (m *mockLocalRepo) Create(ctx context.Context, l *model.Local) error {
	args := m.Called(ctx, l)
	if fn, ok := args.Get(0).(func(*model.Local) error); ok {
		return fn(l)
	}
	return args.Error(0)
}

func (m *mockLocalRepo) GetByID(ctx context.Context, id int64) (*model.Local, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*model.Local)
	return l, args.Error(1)
}

func (m *mockLocalRepo) GetByNome(ctx context.Context, nome string) (*model.Local, error) {
	args := m.Called(ctx, nome)
	l, _ := args.Get(0).(*model.Local)
	return l, args.Error(1)
}

func (m *mockLocalRepo) List(ctx context.Context) ([]*model.Local, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*model.Local)
	return l, args.Error(1)
}

func (m *mockLocalRepo) ListAtivos(ctx context.Context) ([]*model.Local, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]*model.Local)
	return l, args.Error(1)
}

func (m *mockLocalRepo) SearchAtivosByNome(ctx context.Context, nome string) ([]*model.Local, error) {
	args := m.Called(ctx, nome)
	l, _ := args.Get(0).([]*model.Local)
	return l, args.Error(1)
}

func (m *mockLocalRepo) Update(ctx context.Context, l *model.Local) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockLocalRepo) SetAtivo(ctx context.Context, id int64, ativo bool) error {
	return m.Called(ctx, id, ativo).Error(0)
}

func (m *mockLocalRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var errNotFound = repository.ErrNotFound
