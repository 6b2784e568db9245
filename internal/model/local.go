package model

import "time"

// Local is a storage location owned by an empresa.
type Local struct {
	ID              int64     `json:"id"`
	EmpresaID       int64     `json:"empresaId"`
	Nome            string    `json:"nome" validate:"required,max=100"`
	Ativo           bool      `json:"ativo"`
	DataCriacao     time.Time `json:"dataCriacao"`
	DataAtualizacao time.Time `json:"dataAtualizacao"`
}
