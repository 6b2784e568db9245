package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gildecio/ezion/internal/model"
)

type LocalRepository interface {
	Create(ctx context.Context, local *model.Local) error
	GetByID(ctx context.Context, id int64) (*model.Local, error)
	GetByNome(ctx context.Context, nome string) (*model.Local, error)
	List(ctx context.Context) ([]*model.Local, error)
	ListAtivos(ctx context.Context) ([]*model.Local, error)
	SearchAtivosByNome(ctx context.Context, nome string) ([]*model.Local, error)
	Update(ctx context.Context, local *model.Local) error
	SetAtivo(ctx context.Context, id int64, ativo bool) error
	Delete(ctx context.Context, id int64) error
}

type localRepository struct {
	db *Database
}

func NewLocalRepository(db *Database) LocalRepository {
	return &localRepository{db: db}
}

const localSelect = `SELECT id, empresa_id, nome, ativo, data_criacao, data_atualizacao FROM local`

func scanLocal(s scanner) (*model.Local, error) {
	l := &model.Local{}
	if err := s.Scan(&l.ID, &l.EmpresaID, &l.Nome, &l.Ativo, &l.DataCriacao, &l.DataAtualizacao); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *localRepository) Create(ctx context.Context, l *model.Local) error {
	query := `INSERT INTO local (empresa_id, nome, ativo, data_criacao, data_atualizacao)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id`

	err := r.db.db.QueryRowContext(ctx, query,
		l.EmpresaID, l.Nome, l.Ativo, l.DataCriacao, l.DataAtualizacao,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("failed to create local: %w", translate(err))
	}
	return nil
}

func (r *localRepository) getOne(ctx context.Context, where string, arg any) (*model.Local, error) {
	l, err := scanLocal(r.db.db.QueryRowContext(ctx, localSelect+` WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get local: %w", err)
	}
	return l, nil
}

func (r *localRepository) GetByID(ctx context.Context, id int64) (*model.Local, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *localRepository) GetByNome(ctx context.Context, nome string) (*model.Local, error) {
	return r.getOne(ctx, "nome = $1", nome)
}

func (r *localRepository) list(ctx context.Context, where string, args ...any) ([]*model.Local, error) {
	query := localSelect
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY nome`

	rows, err := r.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	locais := make([]*model.Local, 0)
	for rows.Next() {
		l, err := scanLocal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		locais = append(locais, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return locais, nil
}

func (r *localRepository) List(ctx context.Context) ([]*model.Local, error) {
	return r.list(ctx, "")
}

func (r *localRepository) ListAtivos(ctx context.Context) ([]*model.Local, error) {
	return r.list(ctx, "ativo = TRUE")
}

func (r *localRepository) SearchAtivosByNome(ctx context.Context, nome string) ([]*model.Local, error) {
	return r.list(ctx, `ativo = TRUE AND nome ILIKE $1 ESCAPE '\'`, likePattern(nome))
}

func (r *localRepository) Update(ctx context.Context, l *model.Local) error {
	query := `UPDATE local SET empresa_id = $1, nome = $2, data_atualizacao = $3 WHERE id = $4`

	res, err := r.db.db.ExecContext(ctx, query, l.EmpresaID, l.Nome, l.DataAtualizacao, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update local: %w", translate(err))
	}
	return expectAffected(res)
}

func (r *localRepository) SetAtivo(ctx context.Context, id int64, ativo bool) error {
	res, err := r.db.db.ExecContext(ctx,
		`UPDATE local SET ativo = $1, data_atualizacao = NOW() WHERE id = $2`, ativo, id)
	if err != nil {
		return fmt.Errorf("failed to update local status: %w", err)
	}
	return expectAffected(res)
}

func (r *localRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.db.ExecContext(ctx, `DELETE FROM local WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete local: %w", translate(err))
	}
	return expectAffected(res)
}
