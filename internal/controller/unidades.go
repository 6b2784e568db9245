package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
)

type UnidadeController struct {
	unidadeService core.UnidadeService
	logger         *zap.Logger
}

func NewUnidadeController(unidadeService core.UnidadeService, logger *zap.Logger) *UnidadeController {
	return &UnidadeController{
		unidadeService: unidadeService,
		logger:         logger,
	}
}

func (c *UnidadeController) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/ativas", c.ListAtivas)
	r.Get("/base", c.ListBase)
	r.Get("/com-fator", c.ListComFator)
	r.Get("/derivadas/{paiId}", c.ListDerivadas)
	r.Get("/sigla/{sigla}", c.GetBySigla)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", c.Get)
		r.Put("/", c.Update)
		r.Delete("/", c.Delete)
		r.Get("/fator-total", c.FatorTotal)
		r.Post("/ativar", c.Ativar)
		r.Put("/ativar", c.Ativar)
		r.Post("/desativar", c.Desativar)
		r.Put("/desativar", c.Desativar)
	})

	return r
}

func (c *UnidadeController) Create(w http.ResponseWriter, r *http.Request) {
	var unidade model.Unidade
	if err := render.DecodeJSON(r.Body, &unidade); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		badRequest(w, r, "formato de requisição inválido")
		return
	}

	if err := c.unidadeService.Create(r.Context(), &unidade); err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, unidade)
}

func (c *UnidadeController) List(w http.ResponseWriter, r *http.Request) {
	unidades, err := c.unidadeService.List(r.Context())
	c.renderList(w, r, unidades, err)
}

func (c *UnidadeController) ListAtivas(w http.ResponseWriter, r *http.Request) {
	unidades, err := c.unidadeService.ListAtivas(r.Context())
	c.renderList(w, r, unidades, err)
}

func (c *UnidadeController) ListBase(w http.ResponseWriter, r *http.Request) {
	unidades, err := c.unidadeService.ListBase(r.Context())
	c.renderList(w, r, unidades, err)
}

func (c *UnidadeController) ListComFator(w http.ResponseWriter, r *http.Request) {
	unidades, err := c.unidadeService.ListComFator(r.Context())
	c.renderList(w, r, unidades, err)
}

func (c *UnidadeController) ListDerivadas(w http.ResponseWriter, r *http.Request) {
	paiID, err := idParam(r, "paiId")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	unidades, err := c.unidadeService.ListDerivadas(r.Context(), paiID)
	c.renderList(w, r, unidades, err)
}

func (c *UnidadeController) renderList(w http.ResponseWriter, r *http.Request, unidades []*model.Unidade, err error) {
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	if unidades == nil {
		unidades = []*model.Unidade{}
	}
	render.JSON(w, r, unidades)
}

func (c *UnidadeController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	unidade, err := c.unidadeService.Get(r.Context(), id)
	c.renderOne(w, r, unidade, err)
}

func (c *UnidadeController) GetBySigla(w http.ResponseWriter, r *http.Request) {
	unidade, err := c.unidadeService.GetBySigla(r.Context(), chi.URLParam(r, "sigla"))
	c.renderOne(w, r, unidade, err)
}

func (c *UnidadeController) renderOne(w http.ResponseWriter, r *http.Request, unidade *model.Unidade, err error) {
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, unidade)
}

func (c *UnidadeController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	var unidade model.Unidade
	if err := render.DecodeJSON(r.Body, &unidade); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		badRequest(w, r, "formato de requisição inválido")
		return
	}

	updated, err := c.unidadeService.Update(r.Context(), id, &unidade)
	c.renderOne(w, r, updated, err)
}

func (c *UnidadeController) Ativar(w http.ResponseWriter, r *http.Request) {
	c.setAtivo(w, r, true)
}

func (c *UnidadeController) Desativar(w http.ResponseWriter, r *http.Request) {
	c.setAtivo(w, r, false)
}

func (c *UnidadeController) setAtivo(w http.ResponseWriter, r *http.Request, ativo bool) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	unidade, err := c.unidadeService.SetAtivo(r.Context(), id, ativo)
	c.renderOne(w, r, unidade, err)
}

func (c *UnidadeController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	if err := c.unidadeService.Delete(r.Context(), id); err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FatorTotal answers with the bare conversion factor to the base unit.
func (c *UnidadeController) FatorTotal(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	total, err := c.unidadeService.FatorTotal(r.Context(), id)
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, total)
}
