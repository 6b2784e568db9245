package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gildecio/ezion/internal/model"
)

type UnidadeRepository interface {
	Create(ctx context.Context, unidade *model.Unidade) error
	GetByID(ctx context.Context, id int64) (*model.Unidade, error)
	GetBySigla(ctx context.Context, sigla string) (*model.Unidade, error)
	List(ctx context.Context) ([]*model.Unidade, error)
	ListAtivas(ctx context.Context) ([]*model.Unidade, error)
	ListBase(ctx context.Context) ([]*model.Unidade, error)
	ListDerivadas(ctx context.Context, paiID int64) ([]*model.Unidade, error)
	ListComFator(ctx context.Context) ([]*model.Unidade, error)
	CountDerivadas(ctx context.Context, paiID int64) (int, error)
	Update(ctx context.Context, unidade *model.Unidade) error
	SetAtivo(ctx context.Context, id int64, ativo bool) error
	Delete(ctx context.Context, id int64) error
}

type unidadeRepository struct {
	db *Database
}

func NewUnidadeRepository(db *Database) UnidadeRepository {
	return &unidadeRepository{db: db}
}

const unidadeSelect = `SELECT u.id, u.sigla, u.descricao, u.fator, u.unidade_pai_id, p.sigla,
       u.ativo, u.data_criacao, u.data_atualizacao
  FROM unidade u
  LEFT JOIN unidade p ON p.id = u.unidade_pai_id`

func scanUnidade(s scanner) (*model.Unidade, error) {
	u := &model.Unidade{}
	var paiID sql.NullInt64
	var paiSigla sql.NullString

	err := s.Scan(&u.ID, &u.Sigla, &u.Descricao, &u.Fator, &paiID, &paiSigla,
		&u.Ativo, &u.DataCriacao, &u.DataAtualizacao)
	if err != nil {
		return nil, err
	}

	if paiID.Valid {
		id := paiID.Int64
		u.UnidadePaiID = &id
		u.UnidadePai = &model.UnidadeRef{ID: id, Sigla: paiSigla.String}
	}
	return u, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func (r *unidadeRepository) Create(ctx context.Context, u *model.Unidade) error {
	query := `INSERT INTO unidade (sigla, descricao, fator, unidade_pai_id, ativo, data_criacao, data_atualizacao)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id`

	err := r.db.db.QueryRowContext(ctx, query,
		u.Sigla, u.Descricao, u.Fator, nullableID(u.ParentID()), u.Ativo, u.DataCriacao, u.DataAtualizacao,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("failed to create unidade: %w", translate(err))
	}
	return nil
}

func (r *unidadeRepository) getOne(ctx context.Context, where string, arg any) (*model.Unidade, error) {
	u, err := scanUnidade(r.db.db.QueryRowContext(ctx, unidadeSelect+` WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unidade: %w", err)
	}
	return u, nil
}

func (r *unidadeRepository) GetByID(ctx context.Context, id int64) (*model.Unidade, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

func (r *unidadeRepository) GetBySigla(ctx context.Context, sigla string) (*model.Unidade, error) {
	return r.getOne(ctx, "u.sigla = $1", sigla)
}

func (r *unidadeRepository) list(ctx context.Context, where string, args ...any) ([]*model.Unidade, error) {
	query := unidadeSelect
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY u.sigla`

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	unidades := make([]*model.Unidade, 0)
	for rows.Next() {
		u, err := scanUnidade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		unidades = append(unidades, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return unidades, nil
}

func (r *unidadeRepository) List(ctx context.Context) ([]*model.Unidade, error) {
	return r.list(ctx, "")
}

func (r *unidadeRepository) ListAtivas(ctx context.Context) ([]*model.Unidade, error) {
	return r.list(ctx, "u.ativo = TRUE")
}

func (r *unidadeRepository) ListBase(ctx context.Context) ([]*model.Unidade, error) {
	return r.list(ctx, "u.unidade_pai_id IS NULL")
}

func (r *unidadeRepository) ListDerivadas(ctx context.Context, paiID int64) ([]*model.Unidade, error) {
	return r.list(ctx, "u.unidade_pai_id = $1", paiID)
}

func (r *unidadeRepository) ListComFator(ctx context.Context) ([]*model.Unidade, error) {
	return r.list(ctx, "u.fator IS NOT NULL")
}

func (r *unidadeRepository) CountDerivadas(ctx context.Context, paiID int64) (int, error) {
	var n int
	err := r.db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM unidade WHERE unidade_pai_id = $1`, paiID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count derived unidades: %w", err)
	}
	return n, nil
}

func (r *unidadeRepository) Update(ctx context.Context, u *model.Unidade) error {
	query := `UPDATE unidade
              SET sigla = $1, descricao = $2, fator = $3, unidade_pai_id = $4, data_atualizacao = $5
              WHERE id = $6`

	res, err := r.db.db.ExecContext(ctx, query,
		u.Sigla, u.Descricao, u.Fator, nullableID(u.ParentID()), u.DataAtualizacao, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update unidade: %w", translate(err))
	}
	return expectAffected(res)
}

func (r *unidadeRepository) SetAtivo(ctx context.Context, id int64, ativo bool) error {
	res, err := r.db.db.ExecContext(ctx,
		`UPDATE unidade SET ativo = $1, data_atualizacao = NOW() WHERE id = $2`, ativo, id)
	if err != nil {
		return fmt.Errorf("failed to update unidade status: %w", err)
	}
	return expectAffected(res)
}

func (r *unidadeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.db.ExecContext(ctx, `DELETE FROM unidade WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unidade: %w", translate(err))
	}
	return expectAffected(res)
}
