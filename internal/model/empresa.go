package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Regime string

const (
	RegimeLucroReal       Regime = "LUCRO_REAL"
	RegimeLucroPresumido  Regime = "LUCRO_PRESUMIDO"
	RegimeSimplesNacional Regime = "SIMPLES_NACIONAL"
	RegimeMEI             Regime = "MEI"
)

type TipoContribuinte string

const (
	ContribuinteICMS   TipoContribuinte = "CONTRIBUINTE_ICMS"
	ContribuinteIsento TipoContribuinte = "CONTRIBUINTE_ISENTO"
	NaoContribuinte    TipoContribuinte = "NAO_CONTRIBUINTE"
)

// ParseRegime accepts any letter case.
func ParseRegime(s string) (Regime, bool) {
	switch r := Regime(strings.ToUpper(strings.TrimSpace(s))); r {
	case RegimeLucroReal, RegimeLucroPresumido, RegimeSimplesNacional, RegimeMEI:
		return r, true
	}
	return "", false
}

func ParseTipoContribuinte(s string) (TipoContribuinte, bool) {
	switch t := TipoContribuinte(strings.ToUpper(strings.TrimSpace(s))); t {
	case ContribuinteICMS, ContribuinteIsento, NaoContribuinte:
		return t, true
	}
	return "", false
}

// Empresa is a company registered in the system. CNPJ is stored as 14 bare digits.
type Empresa struct {
	ID                  int64               `json:"id"`
	RazaoSocial         string              `json:"razaoSocial" validate:"required,max=150"`
	NomeFantasia        string              `json:"nomeFantasia" validate:"max=150"`
	CNPJ                string              `json:"cnpj" validate:"required,cnpj"`
	InscricaoEstadual   string              `json:"inscricaoEstadual,omitempty" validate:"max=20"`
	InscricaoMunicipal  string              `json:"inscricaoMunicipal,omitempty" validate:"max=20"`
	Email               string              `json:"email,omitempty" validate:"omitempty,email,max=150"`
	Telefone            string              `json:"telefone,omitempty" validate:"max=20"`
	Logradouro          string              `json:"logradouro,omitempty" validate:"max=150"`
	Numero              string              `json:"numero,omitempty" validate:"max=10"`
	Complemento         string              `json:"complemento,omitempty" validate:"max=60"`
	Bairro              string              `json:"bairro,omitempty" validate:"max=60"`
	Cidade              string              `json:"cidade,omitempty" validate:"max=60"`
	Estado              string              `json:"estado,omitempty" validate:"omitempty,len=2"`
	CEP                 string              `json:"cep,omitempty" validate:"max=9"`
	RegimeFiscal        Regime              `json:"regimeEscal,omitempty" validate:"omitempty,oneof=LUCRO_REAL LUCRO_PRESUMIDO SIMPLES_NACIONAL MEI"`
	TipoContribuinte    TipoContribuinte    `json:"tipoContribuinte,omitempty" validate:"omitempty,oneof=CONTRIBUINTE_ICMS CONTRIBUINTE_ISENTO NAO_CONTRIBUINTE"`
	AliquotaPIS         decimal.NullDecimal `json:"aliquotaPIS" validate:"omitempty,dec_nonneg,dec_digits=3_4"`
	AliquotaCOFINS      decimal.NullDecimal `json:"aliquotaCOFINS" validate:"omitempty,dec_nonneg,dec_digits=3_4"`
	AliquotaIRRF        decimal.NullDecimal `json:"aliquotaIRRF" validate:"omitempty,dec_nonneg,dec_digits=3_4"`
	AliquotaINSS        decimal.NullDecimal `json:"aliquotaINSS" validate:"omitempty,dec_nonneg,dec_digits=3_4"`
	FaturamentoAnual    decimal.NullDecimal `json:"faturamentoAnual" validate:"omitempty,dec_nonneg,dec_digits=15_2"`
	ResponsavelNome     string              `json:"responsavelNome,omitempty" validate:"max=150"`
	ResponsavelCPF      string              `json:"responsavelCPF,omitempty" validate:"max=14"`
	ResponsavelEmail    string              `json:"responsavelEmail,omitempty" validate:"omitempty,email,max=150"`
	ResponsavelTelefone string              `json:"responsavelTelefone,omitempty" validate:"max=20"`
	Ativa               bool                `json:"ativa"`
	DataCriacao         time.Time           `json:"dataCriacao"`
	DataAtualizacao     time.Time           `json:"dataAtualizacao"`
}

// EmpresaResumo is what the login screen needs to offer a company.
type EmpresaResumo struct {
	ID           int64  `json:"id"`
	NomeFantasia string `json:"nomeFantasia,omitempty"`
	RazaoSocial  string `json:"razaoSocial,omitempty"`
	CNPJ         string `json:"cnpj"`
}

func (e *Empresa) Resumo() EmpresaResumo {
	return EmpresaResumo{
		ID:           e.ID,
		NomeFantasia: e.NomeFantasia,
		RazaoSocial:  e.RazaoSocial,
		CNPJ:         e.CNPJ,
	}
}
