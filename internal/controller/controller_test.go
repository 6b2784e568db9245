package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/service"
	"github.com/gildecio/ezion/internal/util/cnpj"
	"github.com/gildecio/ezion/internal/util/validator"
)

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	return serveCtx(context.Background(), h, method, target, body)
}

func serveCtx(ctx context.Context, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader).WithContext(ctx)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRespondError(t *testing.T) {
	type form struct {
		Nome string `json:"nome" validate:"required"`
	}
	validationErr := validator.New().Struct(form{})

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    validationErr,
			status: http.StatusBadRequest,
			body:   `{"erro":"dados inválidos","campos":{"nome":"campo obrigatório"}}`,
		},
		{
			name:   "cnpj",
			err:    cnpj.Check("123"),
			status: http.StatusUnprocessableEntity,
			body:   `{"erro":"CNPJ deve conter 14 dígitos","campos":{"cnpj":"CNPJ deve conter 14 dígitos"}}`,
		},
		{
			name:   "not found wrapped",
			err:    errors.Join(errors.New("lookup"), service.ErrEmpresaNotFound),
			status: http.StatusNotFound,
			body:   `{"erro":"empresa não encontrada"}`,
		},
		{
			name:   "conflict",
			err:    service.ErrUnidadeSiglaExists,
			status: http.StatusConflict,
			body:   `{"erro":"já existe uma unidade com esta sigla"}`,
		},
		{
			name:   "unauthorized",
			err:    service.ErrInvalidCredentials,
			status: http.StatusUnauthorized,
			body:   `{"erro":"usuário ou senha inválidos"}`,
		},
		{
			name:   "unknown",
			err:    errors.New("driver: bad connection"),
			status: http.StatusInternalServerError,
			body:   `{"erro":"erro interno do servidor"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				respondError(w, r, zap.NewNop(), tt.err)
			})
			rec := serve(h, http.MethodGet, "/", "")

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestCNPJController_Validar(t *testing.T) {
	c := NewCNPJController()
	h := http.HandlerFunc(c.Validar)

	rec := serve(h, http.MethodGet, "/api/cnpj/validar?valor=11.222.333/0001-81", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valido":true,"cnpj":"11222333000181","formatado":"11.222.333/0001-81"}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/cnpj/validar", `{"cnpj":"11111111111111"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valido":false,"cnpj":"11111111111111","formatado":"11.111.111/1111-11",
		"erro":"ALL_DIGITS_EQUAL","mensagem":"CNPJ inválido"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/api/cnpj/validar?valor=123", "")
	assert.JSONEq(t, `{"valido":false,"cnpj":"123","formatado":"12.3",
		"erro":"INVALID_LENGTH","mensagem":"CNPJ deve conter 14 dígitos"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/api/cnpj/validar", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodPost, "/api/cnpj/validar", `{"cnpj":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCNPJController_Mascara(t *testing.T) {
	h := http.HandlerFunc(NewCNPJController().Mascara)

	rec := serve(h, http.MethodGet, "/api/cnpj/mascara?valor=11222", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"formatado":"11.222"}`, rec.Body.String())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthController(t *testing.T) {
	ok := NewHealthController(pingerFunc(func(context.Context) error { return nil }), zap.NewNop())
	rec := serve(http.HandlerFunc(ok.Health), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := NewHealthController(pingerFunc(func(context.Context) error { return errors.New("down") }), zap.NewNop())
	rec = serve(http.HandlerFunc(down.Health), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
