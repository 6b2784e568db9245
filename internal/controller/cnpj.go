package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/gildecio/ezion/internal/util/cnpj"
)

type CNPJController struct{}

func NewCNPJController() *CNPJController {
	return &CNPJController{}
}

type cnpjResult struct {
	Valido    bool   `json:"valido"`
	CNPJ      string `json:"cnpj"`
	Formatado string `json:"formatado"`
	Erro      string `json:"erro,omitempty"`
	Mensagem  string `json:"mensagem,omitempty"`
}

func checkCNPJ(value string) cnpjResult {
	res := cnpjResult{
		Valido:    true,
		CNPJ:      cnpj.Normalize(value),
		Formatado: cnpj.Mask(value),
	}

	var verr *cnpj.ValidationError
	if err := cnpj.Check(value); errors.As(err, &verr) {
		res.Valido = false
		res.Erro = verr.Code()
		res.Mensagem = verr.Message()
	}
	return res
}

// Validar takes the value from ?valor= on GET or {"cnpj": ...} on POST.
func (c *CNPJController) Validar(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("valor")
	if r.Method == http.MethodPost {
		var request struct {
			CNPJ string `json:"cnpj"`
		}
		if err := render.DecodeJSON(r.Body, &request); err != nil {
			badRequest(w, r, "formato de requisição inválido")
			return
		}
		value = request.CNPJ
	}

	if strings.TrimSpace(value) == "" {
		writeError(w, r, http.StatusBadRequest, "dados inválidos", map[string]string{"cnpj": "campo obrigatório"})
		return
	}
	render.JSON(w, r, checkCNPJ(value))
}

func (c *CNPJController) Mascara(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"formatado": cnpj.Mask(r.URL.Query().Get("valor"))})
}
