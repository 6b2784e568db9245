package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gildecio/ezion/internal/model"
)

type EmpresaRepository interface {
	Create(ctx context.Context, empresa *model.Empresa) error
	GetByID(ctx context.Context, id int64) (*model.Empresa, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error)
	GetByInscricaoEstadual(ctx context.Context, ie string) (*model.Empresa, error)
	List(ctx context.Context) ([]*model.Empresa, error)
	ListByAtiva(ctx context.Context, ativa bool) ([]*model.Empresa, error)
	ListByRegime(ctx context.Context, regime model.Regime) ([]*model.Empresa, error)
	ListByTipoContribuinte(ctx context.Context, tipo model.TipoContribuinte) ([]*model.Empresa, error)
	Update(ctx context.Context, empresa *model.Empresa) error
	SetAtiva(ctx context.Context, id int64, ativa bool) error
	Delete(ctx context.Context, id int64) error
}

type empresaRepository struct {
	db *Database
}

func NewEmpresaRepository(db *Database) EmpresaRepository {
	return &empresaRepository{db: db}
}

const empresaColumns = `id, razao_social, nome_fantasia, cnpj, inscricao_estadual, inscricao_municipal,
       email, telefone, logradouro, numero, complemento, bairro, cidade, estado, cep,
       regime_fiscal, tipo_contribuinte, aliquota_pis, aliquota_cofins, aliquota_irrf, aliquota_inss,
       faturamento_anual, responsavel_nome, responsavel_cpf, responsavel_email, responsavel_telefone,
       ativa, data_criacao, data_atualizacao`

func scanEmpresa(s scanner) (*model.Empresa, error) {
	e := &model.Empresa{}
	err := s.Scan(
		&e.ID, &e.RazaoSocial, &e.NomeFantasia, &e.CNPJ, &e.InscricaoEstadual, &e.InscricaoMunicipal,
		&e.Email, &e.Telefone, &e.Logradouro, &e.Numero, &e.Complemento, &e.Bairro, &e.Cidade, &e.Estado, &e.CEP,
		&e.RegimeFiscal, &e.TipoContribuinte, &e.AliquotaPIS, &e.AliquotaCOFINS, &e.AliquotaIRRF, &e.AliquotaINSS,
		&e.FaturamentoAnual, &e.ResponsavelNome, &e.ResponsavelCPF, &e.ResponsavelEmail, &e.ResponsavelTelefone,
		&e.Ativa, &e.DataCriacao, &e.DataAtualizacao,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *empresaRepository) Create(ctx context.Context, e *model.Empresa) error {
	query := `INSERT INTO empresa (razao_social, nome_fantasia, cnpj, inscricao_estadual, inscricao_municipal,
                  email, telefone, logradouro, numero, complemento, bairro, cidade, estado, cep,
                  regime_fiscal, tipo_contribuinte, aliquota_pis, aliquota_cofins, aliquota_irrf, aliquota_inss,
                  faturamento_anual, responsavel_nome, responsavel_cpf, responsavel_email, responsavel_telefone,
                  ativa, data_criacao, data_atualizacao)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
                  $21, $22, $23, $24, $25, $26, $27, $28)
              RETURNING id`

	err := r.db.db.QueryRowContext(ctx, query,
		e.RazaoSocial, e.NomeFantasia, e.CNPJ, e.InscricaoEstadual, e.InscricaoMunicipal,
		e.Email, e.Telefone, e.Logradouro, e.Numero, e.Complemento, e.Bairro, e.Cidade, e.Estado, e.CEP,
		e.RegimeFiscal, e.TipoContribuinte, e.AliquotaPIS, e.AliquotaCOFINS, e.AliquotaIRRF, e.AliquotaINSS,
		e.FaturamentoAnual, e.ResponsavelNome, e.ResponsavelCPF, e.ResponsavelEmail, e.ResponsavelTelefone,
		e.Ativa, e.DataCriacao, e.DataAtualizacao,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to create empresa: %w", translate(err))
	}
	return nil
}

func (r *empresaRepository) getOne(ctx context.Context, where string, arg any) (*model.Empresa, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresa WHERE ` + where

	e, err := scanEmpresa(r.db.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get empresa: %w", err)
	}
	return e, nil
}

func (r *empresaRepository) GetByID(ctx context.Context, id int64) (*model.Empresa, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *empresaRepository) GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	return r.getOne(ctx, "cnpj = $1", cnpj)
}

func (r *empresaRepository) GetByInscricaoEstadual(ctx context.Context, ie string) (*model.Empresa, error) {
	return r.getOne(ctx, "inscricao_estadual = $1 ORDER BY id LIMIT 1", ie)
}

func (r *empresaRepository) list(ctx context.Context, where string, args ...any) ([]*model.Empresa, error) {
	query := `SELECT ` + empresaColumns + ` FROM empresa`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY razao_social, id`

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	empresas := make([]*model.Empresa, 0)
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		empresas = append(empresas, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return empresas, nil
}

func (r *empresaRepository) List(ctx context.Context) ([]*model.Empresa, error) {
	return r.list(ctx, "")
}

func (r *empresaRepository) ListByAtiva(ctx context.Context, ativa bool) ([]*model.Empresa, error) {
	return r.list(ctx, "ativa = $1", ativa)
}

func (r *empresaRepository) ListByRegime(ctx context.Context, regime model.Regime) ([]*model.Empresa, error) {
	return r.list(ctx, "regime_fiscal = $1", regime)
}

func (r *empresaRepository) ListByTipoContribuinte(ctx context.Context, tipo model.TipoContribuinte) ([]*model.Empresa, error) {
	return r.list(ctx, "tipo_contribuinte = $1", tipo)
}

// Update rewrites every editable column. cnpj, ativa and data_criacao are left alone.
func (r *empresaRepository) Update(ctx context.Context, e *model.Empresa) error {
	query := `UPDATE empresa
              SET razao_social = $1, nome_fantasia = $2, inscricao_estadual = $3, inscricao_municipal = $4,
                  email = $5, telefone = $6, logradouro = $7, numero = $8, complemento = $9, bairro = $10,
                  cidade = $11, estado = $12, cep = $13, regime_fiscal = $14, tipo_contribuinte = $15,
                  aliquota_pis = $16, aliquota_cofins = $17, aliquota_irrf = $18, aliquota_inss = $19,
                  faturamento_anual = $20, responsavel_nome = $21, responsavel_cpf = $22,
                  responsavel_email = $23, responsavel_telefone = $24, data_atualizacao = $25
              WHERE id = $26`

	res, err := r.db.db.ExecContext(ctx, query,
		e.RazaoSocial, e.NomeFantasia, e.InscricaoEstadual, e.InscricaoMunicipal,
		e.Email, e.Telefone, e.Logradouro, e.Numero, e.Complemento, e.Bairro,
		e.Cidade, e.Estado, e.CEP, e.RegimeFiscal, e.TipoContribuinte,
		e.AliquotaPIS, e.AliquotaCOFINS, e.AliquotaIRRF, e.AliquotaINSS,
		e.FaturamentoAnual, e.ResponsavelNome, e.ResponsavelCPF,
		e.ResponsavelEmail, e.ResponsavelTelefone, e.DataAtualizacao,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update empresa: %w", translate(err))
	}
	return expectAffected(res)
}

func (r *empresaRepository) SetAtiva(ctx context.Context, id int64, ativa bool) error {
	query := `UPDATE empresa SET ativa = $1, data_atualizacao = NOW() WHERE id = $2`
	res, err := r.db.db.ExecContext(ctx, query, ativa, id)
	if err != nil {
		return fmt.Errorf("failed to update empresa status: %w", err)
	}
	return expectAffected(res)
}

func (r *empresaRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.db.ExecContext(ctx, `DELETE FROM empresa WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete empresa: %w", translate(err))
	}
	return expectAffected(res)
}
