package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendaflow/vendaflow/internal/cache"
	"github.com/vendaflow/vendaflow/internal/clock"
	commissiondomain "github.com/vendaflow/vendaflow/internal/commission/domain"
	obsmetrics "github.com/vendaflow/vendaflow/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Computed commissions are deterministic for a given tier table, so
// results are memoized until a tier is edited or the entry expires.
const computeCacheTTL = 6 * time.Hour

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	GenID      *snowflake.Node
	Repo       commissiondomain.Repository
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	genID      *snowflake.Node
	repo       commissiondomain.Repository
	results    cache.Cache[string, commissiondomain.Result]
	obsMetrics *obsmetrics.Metrics
}

func New(p Params) commissiondomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("commission.service"),
		clock:      p.Clock,
		genID:      p.GenID,
		repo:       p.Repo,
		results:    cache.NewTTLCache[string, commissiondomain.Result](p.Clock),
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) Compute(ctx context.Context, req commissiondomain.ComputeRequest) (*commissiondomain.Result, error) {
	tipoUsuario := strings.ToLower(strings.TrimSpace(req.TipoUsuario))
	if tipoUsuario == "" {
		return nil, commissiondomain.ErrInvalidTipoUsuario
	}

	key := fmt.Sprintf("%s|%v|%v|%v", tipoUsuario, req.Pontos, req.MetaPontos, req.VariavelSemanal)
	if cached, ok := s.results.Get(key); ok {
		s.obsMetrics.RecordCommissionCache(ctx, true)
		return &cached, nil
	}
	s.obsMetrics.RecordCommissionCache(ctx, false)

	tiers, err := s.repo.ListByTipoUsuario(ctx, s.db, tipoUsuario)
	if err != nil {
		return nil, err
	}

	result := commissiondomain.Compute(req.Pontos, req.MetaPontos, req.VariavelSemanal, tiers)
	s.results.Set(key, result, computeCacheTTL)
	return &result, nil
}

func (s *Service) List(ctx context.Context, tipoUsuario string) ([]commissiondomain.CommissionTier, error) {
	tipoUsuario = strings.ToLower(strings.TrimSpace(tipoUsuario))
	if tipoUsuario == "" {
		return nil, commissiondomain.ErrInvalidTipoUsuario
	}
	return s.repo.ListByTipoUsuario(ctx, s.db, tipoUsuario)
}

func (s *Service) Create(ctx context.Context, req commissiondomain.TierRequest) (*commissiondomain.CommissionTier, error) {
	tier, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	tier.ID = s.genID.Generate()
	tier.CreatedAt = now
	tier.UpdatedAt = now
	if err := s.repo.Insert(ctx, s.db, tier); err != nil {
		return nil, err
	}

	// Any tier change can shift already memoized payouts.
	s.results.InvalidateAll()
	s.log.Info("nivel de comissao criado",
		zap.String("tier_id", tier.ID.String()),
		zap.String("tipo_usuario", tier.TipoUsuario),
	)
	return tier, nil
}

func (s *Service) Update(ctx context.Context, id string, req commissiondomain.TierRequest) (*commissiondomain.CommissionTier, error) {
	tierID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, commissiondomain.ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, s.db, tierID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, commissiondomain.ErrNotFound
	}

	tier, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	tier.ID = tierID
	tier.CreatedAt = existing.CreatedAt
	tier.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, tier); err != nil {
		return nil, err
	}

	s.results.InvalidateAll()
	return tier, nil
}

func (s *Service) validate(req commissiondomain.TierRequest) (*commissiondomain.CommissionTier, error) {
	tipoUsuario := strings.ToLower(strings.TrimSpace(req.TipoUsuario))
	if tipoUsuario == "" {
		return nil, commissiondomain.ErrInvalidTipoUsuario
	}
	if req.PercentualMinimo < 0 || req.PercentualMaximo < req.PercentualMinimo {
		return nil, commissiondomain.ErrInvalidFaixa
	}
	if req.Multiplicador < 0 {
		return nil, commissiondomain.ErrInvalidMultiplier
	}
	return &commissiondomain.CommissionTier{
		TipoUsuario:      tipoUsuario,
		PercentualMinimo: req.PercentualMinimo,
		PercentualMaximo: req.PercentualMaximo,
		Multiplicador:    req.Multiplicador,
	}, nil
}
