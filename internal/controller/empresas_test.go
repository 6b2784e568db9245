package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/service"
	"github.com/gildecio/ezion/internal/util/cnpj"
)

func newEmpresaRouter(svc *mockEmpresaService) http.Handler {
	return NewEmpresaController(svc, zap.NewNop()).Routes()
}

func TestEmpresaController_Create(t *testing.T) {
	svc := &mockEmpresaService{}
	h := newEmpresaRouter(svc)

	svc.On("Create", mock.MatchedBy(func(e *model.Empresa) bool { return e.CNPJ == "11.222.333/0001-81" })).
		Return(func(e *model.Empresa) error {
			e.ID = 1
			e.CNPJ = "11222333000181"
			e.Ativa = true
			return nil
		}).Once()

	rec := serve(h, http.MethodPost, "/", `{"razaoSocial":"Acme Ltda","cnpj":"11.222.333/0001-81","regimeEscal":"MEI"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cnpj":"11222333000181"`)
	assert.Contains(t, rec.Body.String(), `"regimeEscal":"MEI"`)
	assert.Contains(t, rec.Body.String(), `"ativa":true`)
	svc.AssertExpectations(t)
}

func TestEmpresaController_CreateErrors(t *testing.T) {
	svc := &mockEmpresaService{}
	h := newEmpresaRouter(svc)

	svc.On("Create", mock.MatchedBy(func(e *model.Empresa) bool { return e.CNPJ == "bad" })).
		Return(cnpj.Check("11222333000182")).Once()
	svc.On("Create", mock.MatchedBy(func(e *model.Empresa) bool { return e.CNPJ == "dup" })).
		Return(service.ErrEmpresaCNPJExists).Once()

	rec := serve(h, http.MethodPost, "/", `{"razaoSocial":"Acme","cnpj":"bad"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"erro":"CNPJ inválido","campos":{"cnpj":"CNPJ inválido"}}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/", `{"razaoSocial":"Acme","cnpj":"dup"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(h, http.MethodPost, "/", `{"razaoSocial":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmpresaController_Get(t *testing.T) {
	svc := &mockEmpresaService{}
	h := newEmpresaRouter(svc)

	svc.On("Get", int64(1)).Return(&model.Empresa{ID: 1, RazaoSocial: "Acme"}, nil)
	svc.On("Get", int64(2)).Return(nil, service.ErrEmpresaNotFound)

	rec := serve(h, http.MethodGet, "/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"razaoSocial":"Acme"`)

	rec = serve(h, http.MethodGet, "/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"erro":"empresa não encontrada"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmpresaController_Lists(t *testing.T) {
	svc := &mockEmpresaService{}
	h := newEmpresaRouter(svc)

	svc.On("List").Return(nil, nil)
	svc.On("ListByAtiva", true).Return([]*model.Empresa{{ID: 1}}, nil)
	svc.On("ListByAtiva", false).Return([]*model.Empresa{{ID: 2}, {ID: 3}}, nil)
	svc.On("ListByTipoContribuinte", "desconhecido").Return(nil, service.ErrInvalidTipoContribuinte)

	rec := serve(h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/ativas", "")
	assert.Contains(t, rec.Body.String(), `"id":1`)

	rec = serve(h, http.MethodGet, "/inativas", "")
	assert.Contains(t, rec.Body.String(), `"id":3`)

	rec = serve(h, http.MethodGet, "/tipo-contribuinte/desconhecido", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmpresaController_GetByCNPJ(t *testing.T) {
	svc := &mockEmpresaService{}
	h := newEmpresaRouter(svc)

	svc.On("GetByCNPJ", "11222333000181").Return(&model.Empresa{ID: 1}, nil)

	rec := serve(h, http.MethodGet, "/cnpj/11222333000181", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEmpresaController_UpdateAndStatus(t *testing.T) {
	svc := &mockEmpresaService{}
	h := newEmpresaRouter(svc)

	svc.On("Update", int64(1), mock.AnythingOfType("*model.Empresa")).Return(&model.Empresa{ID: 1, RazaoSocial: "Nova"}, nil)
	svc.On("Update", int64(2), mock.Anything).Return(nil, service.ErrEmpresaCNPJImmutable)
	svc.On("SetAtiva", int64(1), false).Return(&model.Empresa{ID: 1, Ativa: false}, nil)
	svc.On("SetAtiva", int64(1), true).Return(&model.Empresa{ID: 1, Ativa: true}, nil)

	rec := serve(h, http.MethodPut, "/1", `{"razaoSocial":"Nova"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"razaoSocial":"Nova"`)

	rec = serve(h, http.MethodPut, "/2", `{"razaoSocial":"Nova","cnpj":"34028316000103"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(h, http.MethodPost, "/1/desativar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ativa":false`)

	rec = serve(h, http.MethodPut, "/1/ativar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ativa":true`)
}

func TestEmpresaController_Delete(t *testing.T) {
	svc := &mockEmpresaService{}
	h := newEmpresaRouter(svc)

	svc.On("Delete", int64(1)).Return(nil)
	svc.On("Delete", int64(2)).Return(service.ErrEmpresaNotFound)

	rec := serve(h, http.MethodDelete, "/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(h, http.MethodDelete, "/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
