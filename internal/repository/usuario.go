package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gildecio/ezion/internal/model"
)

type UsuarioRepository interface {
	Create(ctx context.Context, usuario *model.Usuario) error
	GetByID(ctx context.Context, id int64) (*model.Usuario, error)
	GetByUsername(ctx context.Context, username string) (*model.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*model.Usuario, error)
	TouchUltimoAcesso(ctx context.Context, id int64, at time.Time) error
}

type usuarioRepository struct {
	db *Database
}

func NewUsuarioRepository(db *Database) UsuarioRepository {
	return &usuarioRepository{db: db}
}

const usuarioSelect = `SELECT id, username, email, senha, nome_completo, ativo, bloqueado,
       criado_em, atualizado_em, ultimo_acesso
  FROM usuarios`

func scanUsuario(s scanner) (*model.Usuario, error) {
	u := &model.Usuario{}
	var ultimoAcesso sql.NullTime

	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.SenhaHash, &u.NomeCompleto, &u.Ativo, &u.Bloqueado,
		&u.CriadoEm, &u.AtualizadoEm, &ultimoAcesso)
	if err != nil {
		return nil, err
	}
	if ultimoAcesso.Valid {
		t := ultimoAcesso.Time
		u.UltimoAcesso = &t
	}
	return u, nil
}

func (r *usuarioRepository) Create(ctx context.Context, u *model.Usuario) error {
	query := `INSERT INTO usuarios (username, email, senha, nome_completo, ativo, bloqueado)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, criado_em, atualizado_em`

	err := r.db.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.SenhaHash, u.NomeCompleto, u.Ativo, u.Bloqueado,
	).Scan(&u.ID, &u.CriadoEm, &u.AtualizadoEm)
	if err != nil {
		return fmt.Errorf("failed to create usuario: %w", translate(err))
	}
	return nil
}

func (r *usuarioRepository) getOne(ctx context.Context, where string, arg any) (*model.Usuario, error) {
	u, err := scanUsuario(r.db.db.QueryRowContext(ctx, usuarioSelect+` WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}
	return u, nil
}

func (r *usuarioRepository) GetByID(ctx context.Context, id int64) (*model.Usuario, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *usuarioRepository) GetByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	return r.getOne(ctx, "username = $1", username)
}

func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	return r.getOne(ctx, "lower(email) = lower($1)", email)
}

func (r *usuarioRepository) TouchUltimoAcesso(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.db.ExecContext(ctx, `UPDATE usuarios SET ultimo_acesso = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to record last access: %w", err)
	}
	return nil
}
