package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/service"
	"github.com/gildecio/ezion/internal/util/cnpj"
	"github.com/gildecio/ezion/internal/util/validator"
)

type errorResponse struct {
	Erro   string            `json:"erro"`
	Campos map[string]string `json:"campos,omitempty"`
}

var errInvalidID = errors.New("invalid id")

// errorStatus maps service sentinels onto HTTP answers. First match wins.
var errorStatus = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrEmpresaNotFound, http.StatusNotFound, "empresa não encontrada"},
	{service.ErrUnidadeNotFound, http.StatusNotFound, "unidade não encontrada"},
	{service.ErrLocalNotFound, http.StatusNotFound, "local não encontrado"},
	{service.ErrUserNotFound, http.StatusNotFound, "usuário não encontrado"},

	{service.ErrEmpresaCNPJExists, http.StatusConflict, "já existe uma empresa com este CNPJ"},
	{service.ErrEmpresaCNPJImmutable, http.StatusConflict, "o CNPJ de uma empresa não pode ser alterado"},
	{service.ErrEmpresaInUse, http.StatusConflict, "empresa possui registros vinculados"},
	{service.ErrUnidadeSiglaExists, http.StatusConflict, "já existe uma unidade com esta sigla"},
	{service.ErrUnidadeHasDerivadas, http.StatusConflict, "unidade possui unidades derivadas"},
	{service.ErrLocalNomeExists, http.StatusConflict, "já existe um local com este nome"},
	{service.ErrUserAlreadyExists, http.StatusConflict, "usuário ou e-mail já cadastrado"},

	{service.ErrUnidadeCycle, http.StatusUnprocessableEntity, "unidade pai criaria um ciclo"},
	{service.ErrUnidadePaiInvalid, http.StatusUnprocessableEntity, "unidade pai inexistente ou inativa"},
	{service.ErrUnidadeChainTooDeep, http.StatusUnprocessableEntity, "hierarquia de unidades muito profunda"},
	{service.ErrLocalEmpresa, http.StatusUnprocessableEntity, "empresa do local não encontrada"},

	{service.ErrInvalidRegime, http.StatusBadRequest, "regime fiscal inválido"},
	{service.ErrInvalidTipoContribuinte, http.StatusBadRequest, "tipo de contribuinte inválido"},
	{errInvalidID, http.StatusBadRequest, "identificador inválido"},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, "usuário ou senha inválidos"},
	{service.ErrUserInactive, http.StatusUnauthorized, "usuário inativo ou bloqueado"},
	{service.ErrEmpresaUnavailable, http.StatusUnauthorized, "empresa inexistente ou inativa"},
	{service.ErrInvalidToken, http.StatusUnauthorized, "token inválido"},
	{service.ErrTokenRevoked, http.StatusUnauthorized, "token revogado"},
}

func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if fields := validator.Fields(err); fields != nil {
		writeError(w, r, http.StatusBadRequest, "dados inválidos", fields)
		return
	}

	var cnpjErr *cnpj.ValidationError
	if errors.As(err, &cnpjErr) {
		writeError(w, r, http.StatusUnprocessableEntity, cnpjErr.Message(), map[string]string{"cnpj": cnpjErr.Message()})
		return
	}

	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			if e.status == http.StatusUnauthorized {
				logger.Warn("Request rejected", zap.String("path", r.URL.Path), zap.Error(err))
			} else {
				logger.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Error(err))
			}
			writeError(w, r, e.status, e.message, nil)
			return
		}
	}

	logger.Error("Internal server error",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "erro interno do servidor", nil)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, fields map[string]string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Erro: message, Campos: fields})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, message, nil)
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
