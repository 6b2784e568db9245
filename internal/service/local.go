package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/model"
	"github.com/gildecio/ezion/internal/repository"
	"github.com/gildecio/ezion/internal/util/validator"
)

var (
	ErrLocalNotFound   = errors.New("local not found")
	ErrLocalNomeExists = errors.New("local with this nome already exists")
	ErrLocalEmpresa    = errors.New("local empresa does not exist")
)

type localService struct {
	repo        repository.LocalRepository
	empresaRepo repository.EmpresaRepository
	validator   *validator.Validator
	logger      *zap.Logger
	now         func() time.Time
}

func NewLocalService(
	repo repository.LocalRepository,
	empresaRepo repository.EmpresaRepository,
	v *validator.Validator,
	logger *zap.Logger,
) core.LocalService {
	return &localService{
		repo:        repo,
		empresaRepo: empresaRepo,
		validator:   v,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *localService) prepare(ctx context.Context, l *model.Local) error {
	l.Nome = strings.TrimSpace(l.Nome)
	if err := s.validator.Struct(l); err != nil {
		return err
	}

	empresa, err := s.empresaRepo.GetByID(ctx, l.EmpresaID)
	if err != nil {
		return fmt.Errorf("failed to check empresa: %w", err)
	}
	if empresa == nil {
		return ErrLocalEmpresa
	}
	return nil
}

func (s *localService) checkNome(ctx context.Context, nome string, id int64) error {
	other, err := s.repo.GetByNome(ctx, nome)
	if err != nil {
		return fmt.Errorf("failed to check nome: %w", err)
	}
	if other != nil && other.ID != id {
		return ErrLocalNomeExists
	}
	return nil
}

// Create expects EmpresaID to be filled, by the caller's session when the payload has none.
func (s *localService) Create(ctx context.Context, l *model.Local) error {
	if err := s.prepare(ctx, l); err != nil {
		return err
	}
	if err := s.checkNome(ctx, l.Nome, 0); err != nil {
		return err
	}

	now := s.now()
	l.Ativo = true
	l.DataCriacao = now
	l.DataAtualizacao = now

	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrLocalNomeExists
		}
		return err
	}

	s.logger.Info("Local created",
		zap.Int64("local_id", l.ID),
		zap.Int64("empresa_id", l.EmpresaID))
	return nil
}

func (s *localService) Get(ctx context.Context, id int64) (*model.Local, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLocalNotFound
	}
	return l, nil
}

func (s *localService) GetByNome(ctx context.Context, nome string) (*model.Local, error) {
	l, err := s.repo.GetByNome(ctx, strings.TrimSpace(nome))
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLocalNotFound
	}
	return l, nil
}

func (s *localService) List(ctx context.Context) ([]*model.Local, error) {
	return s.repo.List(ctx)
}

func (s *localService) ListAtivos(ctx context.Context) ([]*model.Local, error) {
	return s.repo.ListAtivos(ctx)
}

// SearchAtivos matches nome case-insensitively anywhere in the name. A blank query lists every active local.
func (s *localService) SearchAtivos(ctx context.Context, nome string) ([]*model.Local, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return s.repo.ListAtivos(ctx)
	}
	return s.repo.SearchAtivosByNome(ctx, nome)
}

func (s *localService) Update(ctx context.Context, id int64, l *model.Local) (*model.Local, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if l.EmpresaID == 0 {
		l.EmpresaID = current.EmpresaID
	}
	if err := s.prepare(ctx, l); err != nil {
		return nil, err
	}
	if l.Nome != current.Nome {
		if err := s.checkNome(ctx, l.Nome, id); err != nil {
			return nil, err
		}
	}

	l.ID = id
	l.Ativo = current.Ativo
	l.DataCriacao = current.DataCriacao
	l.DataAtualizacao = s.now()

	if err := s.repo.Update(ctx, l); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrLocalNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrLocalNomeExists
		}
		return nil, err
	}
	return l, nil
}

func (s *localService) SetAtivo(ctx context.Context, id int64, ativo bool) (*model.Local, error) {
	if err := s.repo.SetAtivo(ctx, id, ativo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLocalNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *localService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLocalNotFound
		}
		return err
	}
	return nil
}
