package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/repository"
	"github.com/gildecio/ezion/internal/util/cnpj"
	"github.com/gildecio/ezion/internal/util/validator"
)

var (
	ErrEmpresaNotFound         = errors.New("empresa not found")
	ErrEmpresaCNPJExists       = errors.New("empresa with this cnpj already exists")
	ErrEmpresaCNPJImmutable    = errors.New("empresa cnpj cannot be changed")
	ErrEmpresaInUse            = errors.New("empresa is still referenced")
	ErrInvalidRegime           = errors.New("invalid regime")
	ErrInvalidTipoContribuinte = errors.New("invalid tipo contribuinte")
)

type empresaService struct {
	repo      repository.EmpresaRepository
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

func NewEmpresaService(repo repository.EmpresaRepository, v *validator.Validator, logger *zap.Logger) core.EmpresaService {
	return &empresaService{
		repo:      repo,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

// prepare checks the CNPJ as sent, then normalizes e in place and validates it.
// CNPJ problems come back as *cnpj.ValidationError carrying the raw value.
func (s *empresaService) prepare(e *model.Empresa) error {
	if err := cnpj.Check(e.CNPJ); err != nil {
		return err
	}
	e.CNPJ = cnpj.Normalize(e.CNPJ)
	return s.validator.Struct(e)
}

func (s *empresaService) Create(ctx context.Context, e *model.Empresa) error {
	if err := s.prepare(e); err != nil {
		return err
	}

	existing, err := s.repo.GetByCNPJ(ctx, e.CNPJ)
	if err != nil {
		return fmt.Errorf("failed to check cnpj: %w", err)
	}
	if existing != nil {
		return ErrEmpresaCNPJExists
	}

	now := s.now()
	e.Ativa = true
	e.DataCriacao = now
	e.DataAtualizacao = now

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrEmpresaCNPJExists
		}
		return err
	}

	s.logger.Info("Empresa created",
		zap.Int64("empresa_id", e.ID),
		zap.String("cnpj", cnpj.Mask(e.CNPJ)))
	return nil
}

func (s *empresaService) Get(ctx context.Context, id int64) (*model.Empresa, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmpresaNotFound
	}
	return e, nil
}

// GetByCNPJ accepts the masked or the bare form.
func (s *empresaService) GetByCNPJ(ctx context.Context, value string) (*model.Empresa, error) {
	e, err := s.repo.GetByCNPJ(ctx, cnpj.Normalize(value))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmpresaNotFound
	}
	return e, nil
}

func (s *empresaService) GetByInscricaoEstadual(ctx context.Context, ie string) (*model.Empresa, error) {
	e, err := s.repo.GetByInscricaoEstadual(ctx, ie)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEmpresaNotFound
	}
	return e, nil
}

func (s *empresaService) List(ctx context.Context) ([]*model.Empresa, error) {
	return s.repo.List(ctx)
}

func (s *empresaService) ListByAtiva(ctx context.Context, ativa bool) ([]*model.Empresa, error) {
	return s.repo.ListByAtiva(ctx, ativa)
}

func (s *empresaService) ListByRegime(ctx context.Context, regime string) ([]*model.Empresa, error) {
	r, ok := model.ParseRegime(regime)
	if !ok {
		return nil, ErrInvalidRegime
	}
	return s.repo.ListByRegime(ctx, r)
}

func (s *empresaService) ListByTipoContribuinte(ctx context.Context, tipo string) ([]*model.Empresa, error) {
	t, ok := model.ParseTipoContribuinte(tipo)
	if !ok {
		return nil, ErrInvalidTipoContribuinte
	}
	return s.repo.ListByTipoContribuinte(ctx, t)
}

// Update replaces the editable fields of empresa id. An empty CNPJ in the payload keeps the stored one.
func (s *empresaService) Update(ctx context.Context, id int64, e *model.Empresa) (*model.Empresa, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.CNPJ == "" {
		e.CNPJ = current.CNPJ
	}
	if err := s.prepare(e); err != nil {
		return nil, err
	}
	if e.CNPJ != current.CNPJ {
		return nil, ErrEmpresaCNPJImmutable
	}

	e.ID = id
	e.Ativa = current.Ativa
	e.DataCriacao = current.DataCriacao
	e.DataAtualizacao = s.now()

	if err := s.repo.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *empresaService) SetAtiva(ctx context.Context, id int64, ativa bool) (*model.Empresa, error) {
	if err := s.repo.SetAtiva(ctx, id, ativa); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmpresaNotFound
		}
		return nil, err
	}

	s.logger.Info("Empresa status changed",
		zap.Int64("empresa_id", id),
		zap.Bool("ativa", ativa))
	return s.Get(ctx, id)
}

func (s *empresaService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrEmpresaNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrEmpresaInUse
	}
	return err
}
