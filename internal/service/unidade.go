package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/repository"
	"github.com/gildecio/ezion/internal/util/validator"
)

var (
	ErrUnidadeNotFound     = errors.New("unidade not found")
	ErrUnidadeSiglaExists  = errors.New("unidade with this sigla already exists")
	ErrUnidadePaiInvalid   = errors.New("parent unidade does not exist or is inactive")
	ErrUnidadeCycle        = errors.New("parent unidade would create a cycle")
	ErrUnidadeHasDerivadas = errors.New("unidade still has derived unidades")
	ErrUnidadeChainTooDeep = errors.New("unidade parent chain is too deep")
)

// maxChainDepth bounds parent walks so a corrupted chain cannot loop forever.
const maxChainDepth = 64

type unidadeService struct {
	repo      repository.UnidadeRepository
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

func NewUnidadeService(repo repository.UnidadeRepository, v *validator.Validator, logger *zap.Logger) core.UnidadeService {
	return &unidadeService{
		repo:      repo,
		validator: v,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *unidadeService) prepare(u *model.Unidade) error {
	u.Sigla = strings.ToUpper(strings.TrimSpace(u.Sigla))
	u.Descricao = strings.TrimSpace(u.Descricao)
	if pai := u.ParentID(); pai != nil {
		u.UnidadePaiID = pai
		u.UnidadePai = &model.UnidadeRef{ID: *pai}
	} else {
		u.UnidadePaiID = nil
		u.UnidadePai = nil
	}
	return s.validator.Struct(u)
}

func (s *unidadeService) checkPai(ctx context.Context, paiID *int64) (*model.Unidade, error) {
	if paiID == nil {
		return nil, nil
	}
	pai, err := s.repo.GetByID(ctx, *paiID)
	if err != nil {
		return nil, err
	}
	if pai == nil || !pai.Ativo {
		return nil, ErrUnidadePaiInvalid
	}
	return pai, nil
}

func (s *unidadeService) Create(ctx context.Context, u *model.Unidade) error {
	if err := s.prepare(u); err != nil {
		return err
	}

	existing, err := s.repo.GetBySigla(ctx, u.Sigla)
	if err != nil {
		return fmt.Errorf("failed to check sigla: %w", err)
	}
	if existing != nil {
		return ErrUnidadeSiglaExists
	}

	pai, err := s.checkPai(ctx, u.UnidadePaiID)
	if err != nil {
		return err
	}
	if pai != nil {
		u.UnidadePai.Sigla = pai.Sigla
	}

	now := s.now()
	u.Ativo = true
	u.DataCriacao = now
	u.DataAtualizacao = now

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUnidadeSiglaExists
		}
		return err
	}

	s.logger.Info("Unidade created",
		zap.Int64("unidade_id", u.ID),
		zap.String("sigla", u.Sigla))
	return nil
}

func (s *unidadeService) Get(ctx context.Context, id int64) (*model.Unidade, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnidadeNotFound
	}
	return u, nil
}

func (s *unidadeService) GetBySigla(ctx context.Context, sigla string) (*model.Unidade, error) {
	u, err := s.repo.GetBySigla(ctx, strings.ToUpper(strings.TrimSpace(sigla)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnidadeNotFound
	}
	return u, nil
}

func (s *unidadeService) List(ctx context.Context) ([]*model.Unidade, error) {
	return s.repo.List(ctx)
}

func (s *unidadeService) ListAtivas(ctx context.Context) ([]*model.Unidade, error) {
	return s.repo.ListAtivas(ctx)
}

func (s *unidadeService) ListBase(ctx context.Context) ([]*model.Unidade, error) {
	return s.repo.ListBase(ctx)
}

func (s *unidadeService) ListDerivadas(ctx context.Context, paiID int64) ([]*model.Unidade, error) {
	return s.repo.ListDerivadas(ctx, paiID)
}

func (s *unidadeService) ListComFator(ctx context.Context) ([]*model.Unidade, error) {
	return s.repo.ListComFator(ctx)
}

func (s *unidadeService) Update(ctx context.Context, id int64, u *model.Unidade) (*model.Unidade, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(u); err != nil {
		return nil, err
	}

	if u.Sigla != current.Sigla {
		other, err := s.repo.GetBySigla(ctx, u.Sigla)
		if err != nil {
			return nil, fmt.Errorf("failed to check sigla: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, ErrUnidadeSiglaExists
		}
	}

	if u.UnidadePaiID != nil {
		if err := s.checkCycle(ctx, id, *u.UnidadePaiID); err != nil {
			return nil, err
		}
		pai, err := s.checkPai(ctx, u.UnidadePaiID)
		if err != nil {
			return nil, err
		}
		u.UnidadePai.Sigla = pai.Sigla
	}

	u.ID = id
	u.Ativo = current.Ativo
	u.DataCriacao = current.DataCriacao
	u.DataAtualizacao = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUnidadeNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUnidadeSiglaExists
		}
		return nil, err
	}
	return u, nil
}

// checkCycle walks up from paiID and fails if it reaches id.
func (s *unidadeService) checkCycle(ctx context.Context, id, paiID int64) error {
	next := &paiID
	for depth := 0; next != nil; depth++ {
		if *next == id {
			return ErrUnidadeCycle
		}
		if depth >= maxChainDepth {
			return ErrUnidadeChainTooDeep
		}
		u, err := s.repo.GetByID(ctx, *next)
		if err != nil {
			return err
		}
		if u == nil {
			return nil
		}
		next = u.UnidadePaiID
	}
	return nil
}

func (s *unidadeService) SetAtivo(ctx context.Context, id int64, ativo bool) (*model.Unidade, error) {
	if err := s.repo.SetAtivo(ctx, id, ativo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnidadeNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *unidadeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountDerivadas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrUnidadeHasDerivadas
	}

	err = s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUnidadeNotFound
	case errors.Is(err, repository.ErrReferenced):
		return ErrUnidadeHasDerivadas
	}
	return err
}

// FatorTotal converts one unit of id into its base unit: its own fator times every ancestor's.
// Unset factors count as 1.
func (s *unidadeService) FatorTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if u.IsBase() {
		return decimal.NewFromInt(1), nil
	}

	total := decimal.NewFromInt(1)
	seen := make(map[int64]struct{})
	for u != nil {
		if _, ok := seen[u.ID]; ok {
			return decimal.Zero, ErrUnidadeCycle
		}
		if len(seen) >= maxChainDepth {
			return decimal.Zero, ErrUnidadeChainTooDeep
		}
		seen[u.ID] = struct{}{}

		if u.Fator.Valid {
			total = total.Mul(u.Fator.Decimal)
		}
		if u.UnidadePaiID == nil {
			break
		}
		if u, err = s.repo.GetByID(ctx, *u.UnidadePaiID); err != nil {
			return decimal.Zero, err
		}
	}
	return total, nil
}
