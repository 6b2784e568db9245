package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/middlewareinternal"
	"github.com/gildecio/ezion/internal/model"
)

type LocalController struct {
	localService core.LocalService
	logger       *zap.Logger
}

func NewLocalController(localService core.LocalService, logger *zap.Logger) *LocalController {
	return &LocalController{
		localService: localService,
		logger:       logger,
	}
}

func (c *LocalController) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/ativos", c.ListAtivos)
	r.Get("/buscar", c.Search)
	r.Get("/nome/{nome}", c.GetByNome)

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

// decode reads a local from the body. With fromSession an omitted empresaId is taken from the caller's token.
func (c *LocalController) decode(w http.ResponseWriter, r *http.Request, fromSession bool) (*model.Local, bool) {
	var local model.Local
	if err := render.DecodeJSON(r.Body, &local); err != nil {
		c.logger.Debug("Invalid request format", zap.Error(err))
		badRequest(w, r, "formato de requisição inválido")
		return nil, false
	}

	if local.EmpresaID == 0 && fromSession {
		if empresaID, ok := middlewareinternal.GetEmpresaIDFromContext(r.Context()); ok {
			local.EmpresaID = empresaID
		}
	}
	return &local, true
}

func (c *LocalController) Create(w http.ResponseWriter, r *http.Request) {
	local, ok := c.decode(w, r, true)
	if !ok {
		return
	}

	if err := c.localService.Create(r.Context(), local); err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, local)
}

func (c *LocalController) List(w http.ResponseWriter, r *http.Request) {
	locais, err := c.localService.List(r.Context())
	c.renderList(w, r, locais, err)
}

func (c *LocalController) ListAtivos(w http.ResponseWriter, r *http.Request) {
	locais, err := c.localService.ListAtivos(r.Context())
	c.renderList(w, r, locais, err)
}

func (c *LocalController) Search(w http.ResponseWriter, r *http.Request) {
	locais, err := c.localService.SearchAtivos(r.Context(), r.URL.Query().Get("nome"))
	c.renderList(w, r, locais, err)
}

func (c *LocalController) renderList(w http.ResponseWriter, r *http.Request, locais []*model.Local, err error) {
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	if locais == nil {
		locais = []*model.Local{}
	}
	render.JSON(w, r, locais)
}

func (c *LocalController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	local, err := c.localService.Get(r.Context(), id)
	c.renderOne(w, r, local, err)
}

func (c *LocalController) GetByNome(w http.ResponseWriter, r *http.Request) {
	local, err := c.localService.GetByNome(r.Context(), chi.URLParam(r, "nome"))
	c.renderOne(w, r, local, err)
}

func (c *LocalController) renderOne(w http.ResponseWriter, r *http.Request, local *model.Local, err error) {
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	render.JSON(w, r, local)
}

func (c *LocalController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	local, ok := c.decode(w, r, false)
	if !ok {
		return
	}

	updated, err := c.localService.Update(r.Context(), id, local)
	c.renderOne(w, r, updated, err)
}

func (c *LocalController) Ativar(w http.ResponseWriter, r *http.Request) {
	c.setAtivo(w, r, true)
}

func (c *LocalController) Desativar(w http.ResponseWriter, r *http.Request) {
	c.setAtivo(w, r, false)
}

func (c *LocalController) setAtivo(w http.ResponseWriter, r *http.Request, ativo bool) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	local, err := c.localService.SetAtivo(r.Context(), id, ativo)
	c.renderOne(w, r, local, err)
}

func (c *LocalController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		respondError(w, r, c.logger, err)
		return
	}

	if err := c.localService.Delete(r.Context(), id); err != nil {
		respondError(w, r, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
