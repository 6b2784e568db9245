package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidade is a unit of measure. A unit with a parent converts to it by Fator.
type Unidade struct {
	ID              int64               `json:"id"`
	Sigla           string              `json:"sigla" validate:"required,max=10"`
	Descricao       string              `json:"descricao" validate:"required,max=100"`
	Fator           decimal.NullDecimal `json:"fator" validate:"omitempty,dec_positive,dec_digits=10_4"`
	UnidadePaiID    *int64              `json:"unidadePaiId,omitempty"`
	UnidadePai      *UnidadeRef         `json:"unidadePai,omitempty"`
	Ativo           bool                `json:"ativo"`
	DataCriacao     time.Time           `json:"dataCriacao"`
	DataAtualizacao time.Time           `json:"dataAtualizacao"`
}

type UnidadeRef struct {
	ID    int64  `json:"id"`
	Sigla string `json:"sigla,omitempty"`
}

// ParentID resolves the parent from either unidadePaiId or unidadePai.id.
func (u *Unidade) ParentID() *int64 {
	if u.UnidadePaiID != nil {
		return u.UnidadePaiID
	}
	if u.UnidadePai != nil && u.UnidadePai.ID != 0 {
		id := u.UnidadePai.ID
		return &id
	}
	return nil
}

func (u *Unidade) IsBase() bool {
	return u.ParentID() == nil
}
