package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
)

type EmpresaController struct {
	empresaService core.EmpresaService
	logger         *zap.Logger
}

func NewEmpresaController(empresaService core.EmpresaService, logger *zap.Logger) *EmpresaController {
	return &EmpresaController{
		empresaService: empresaService,
		logger:         logger,
	}
}

func (c *EmpresaController) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/ativas", c.ListAtivas)
	r.Get("/inativas", c.ListInativas)
	r.Get("/cnpj/{cnpj}", c.GetByCNPJ)
	r.Get("/inscricao-estadual/{ie}", c.GetByInscricaoEstadual)
	r.Get("/regime/{regime}", c.ListByRegime)
	r.Get("/tipo-contribuinte/{tipo}", c.ListByTipoContribuinte)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", c.Get)
		r.Put("/", c.Update)
		r.Delete("/", c.Delete)
		r.Post("/ativar", c.Ativar)
		r.Put("/ativar", c.Ativar)
		r.Post("/desativar", c.Desativar)
		r.Put("/desativar", c.Desativar)
	})

	return r
}

func (c *EmpresaController) Create(w http.ResponseWriter, r *http.Request) {
	var empresa model.Empresa
	if err := render.DecodeJSON(r.Body, &empresa); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		badRequest(w, r, "formato de requisição inválido")
		return
	}

	if err := c.empresaService.Create(r.Context(), &empresa); err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, empresa)
}

func (c *EmpresaController) List(w http.ResponseWriter, r *http.Request) {
	empresas, err := c.empresaService.List(r.Context())
	c.renderList(w, r, empresas, err)
}

func (c *EmpresaController) ListAtivas(w http.ResponseWriter, r *http.Request) {
	empresas, err := c.empresaService.ListByAtiva(r.Context(), true)
	c.renderList(w, r, empresas, err)
}

func (c *EmpresaController) ListInativas(w http.ResponseWriter, r *http.Request) {
	empresas, err := c.empresaService.ListByAtiva(r.Context(), false)
	c.renderList(w, r, empresas, err)
}

func (c *EmpresaController) ListByRegime(w http.ResponseWriter, r *http.Request) {
	empresas, err := c.empresaService.ListByRegime(r.Context(), chi.URLParam(r, "regime"))
	c.renderList(w, r, empresas, err)
}

func (c *EmpresaController) ListByTipoContribuinte(w http.ResponseWriter, r *http.Request) {
	empresas, err := c.empresaService.ListByTipoContribuinte(r.Context(), chi.URLParam(r, "tipo"))
	c.renderList(w, r, empresas, err)
}

func (c *EmpresaController) renderList(w http.ResponseWriter, r *http.Request, empresas []*model.Empresa, err error) {
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	if empresas == nil {
		empresas = []*model.Empresa{}
	}
	render.JSON(w, r, empresas)
}

func (c *EmpresaController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	empresa, err := c.empresaService.Get(r.Context(), id)
	c.renderOne(w, r, empresa, err)
}

func (c *EmpresaController) GetByCNPJ(w http.ResponseWriter, r *http.Request) {
	empresa, err := c.empresaService.GetByCNPJ(r.Context(), chi.URLParam(r, "cnpj"))
	c.renderOne(w, r, empresa, err)
}

func (c *EmpresaController) GetByInscricaoEstadual(w http.ResponseWriter, r *http.Request) {
	empresa, err := c.empresaService.GetByInscricaoEstadual(r.Context(), chi.URLParam(r, "ie"))
	c.renderOne(w, r, empresa, err)
}

func (c *EmpresaController) renderOne(w http.ResponseWriter, r *http.Request, empresa *model.Empresa, err error) {
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, empresa)
}

func (c *EmpresaController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	var empresa model.Empresa
	if err := render.DecodeJSON(r.Body, &empresa); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		badRequest(w, r, "formato de requisição inválido")
		return
	}

	updated, err := c.empresaService.Update(r.Context(), id, &empresa)
	c.renderOne(w, r, updated, err)
}

func (c *EmpresaController) Ativar(w http.ResponseWriter, r *http.Request) {
	c.setAtiva(w, r, true)
}

func (c *EmpresaController) Desativar(w http.ResponseWriter, r *http.Request) {
	c.setAtiva(w, r, false)
}

func (c *EmpresaController) setAtiva(w http.ResponseWriter, r *http.Request, ativa bool) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	empresa, err := c.empresaService.SetAtiva(r.Context(), id, ativa)
	c.renderOne(w, r, empresa, err)
}

func (c *EmpresaController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	if err := c.empresaService.Delete(r.Context(), id); err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	c.logger.Info("Empresa deleted", zap.Int64("empresa_id", id))
	w.WriteHeader(http.StatusNoContent)
}
