package controller

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/service"
)

func TestUnidadeController_CreateWithParentObject(t *testing.T) {
	svc := &mockUnidadeService{}
	h := NewUnidadeController(svc, zap.NewNop()).Routes()

	svc.On("Create", mock.MatchedBy(func(u *model.Unidade) bool {
		p := u.ParentID()
		return u.Sigla == "cx" && p != nil && *p == 1 && u.Fator.Valid
	})).Return(func(u *model.Unidade) error {
		u.ID = 2
		u.Sigla = "CX"
		u.Ativo = true
		return nil
	}).Once()

	rec := serve(h, http.MethodPost, "/", `{"sigla":"cx","descricao":"Caixa","fator":"12","unidadePai":{"id":1}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sigla":"CX"`)
	svc.AssertExpectations(t)
}

func TestUnidadeController_CreateCycle(t *testing.T) {
	svc := &mockUnidadeService{}
	h := NewUnidadeController(svc, zap.NewNop()).Routes()

	svc.On("Create", mock.Anything).Return(service.ErrUnidadePaiInvalid).Once()

	rec := serve(h, http.MethodPost, "/", `{"sigla":"CX","descricao":"Caixa","unidadePaiId":99}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"erro":"unidade pai inexistente ou inativa"}`, rec.Body.String())
}

func TestUnidadeController_FatorTotal(t *testing.T) {
	svc := &mockUnidadeService{}
	h := NewUnidadeController(svc, zap.NewNop()).Routes()

	svc.On("FatorTotal", int64(3)).Return(decimal.RequireFromString("120"), nil)
	svc.On("FatorTotal", int64(9)).Return(decimal.Zero, service.ErrUnidadeNotFound)

	rec := serve(h, http.MethodGet, "/3/fator-total", "")
	require.Equal(t, http.StatusOK, rec.Code)
	total, err := decimal.NewFromString(trimQuotes(rec.Body.String()))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(120)))

	rec = serve(h, http.MethodGet, "/9/fator-total", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnidadeController_DerivadasAndDelete(t *testing.T) {
	svc := &mockUnidadeService{}
	h := NewUnidadeController(svc, zap.NewNop()).Routes()

	svc.On("ListDerivadas", int64(1)).Return([]*model.Unidade{{ID: 2, Sigla: "CX"}}, nil)
	svc.On("Delete", int64(1)).Return(service.ErrUnidadeHasDerivadas)

	rec := serve(h, http.MethodGet, "/derivadas/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sigla":"CX"`)

	rec = serve(h, http.MethodGet, "/derivadas/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodDelete, "/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// trimQuotes accepts the decimal whether or not it is rendered as a JSON string.
func trimQuotes(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '"') {
		s = s[:len(s)-1]
	}
	for len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	return s
}
