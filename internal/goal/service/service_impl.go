package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/vendaflow/vendaflow/internal/clock"
	goaldomain "github.com/vendaflow/vendaflow/internal/goal/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	GenID *snowflake.Node
	Repo  goaldomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	genID *snowflake.Node
	repo  goaldomain.Repository
}

func New(p Params) goaldomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("goal.service"),
		clock: p.Clock,
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) UpsertWeekly(ctx context.Context, req goaldomain.UpsertWeeklyRequest) (*goaldomain.WeeklyGoal, error) {
	userID, err := parseUser(req.UserID)
	if err != nil {
		return nil, err
	}
	if req.Ano < 2000 || req.Semana < 1 || req.Semana > 53 {
		return nil, goaldomain.ErrInvalidPeriod
	}
	if req.MetaPontos < 0 || req.VariavelSemanal < 0 {
		return nil, goaldomain.ErrInvalidMeta
	}

	now := s.clock.Now()
	goal := &goaldomain.WeeklyGoal{
		ID:              s.genID.Generate(),
		UserID:          userID,
		Ano:             req.Ano,
		Semana:          req.Semana,
		MetaPontos:      req.MetaPontos,
		VariavelSemanal: req.VariavelSemanal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.UpsertWeekly(ctx, s.db, goal); err != nil {
		return nil, err
	}

	stored, err := s.repo.FindWeekly(ctx, s.db, userID, req.Ano, req.Semana)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Service) GetWeekly(ctx context.Context, userIDRaw string, ano, semana int) (*goaldomain.WeeklyGoal, error) {
	userID, err := parseUser(userIDRaw)
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.FindWeekly(ctx, s.db, userID, ano, semana)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, goaldomain.ErrNotFound
	}
	return goal, nil
}

func (s *Service) ListWeekly(ctx context.Context, ano, semana int) ([]goaldomain.WeeklyGoal, error) {
	return s.repo.ListWeekly(ctx, s.db, ano, semana)
}

func (s *Service) UpsertMonthly(ctx context.Context, req goaldomain.UpsertMonthlyRequest) (*goaldomain.MonthlyGoal, error) {
	userID, err := parseUser(req.UserID)
	if err != nil {
		return nil, err
	}
	if req.Ano < 2000 || req.Mes < 1 || req.Mes > 12 {
		return nil, goaldomain.ErrInvalidPeriod
	}
	if req.MetaReunioes < 0 {
		return nil, goaldomain.ErrInvalidMeta
	}

	now := s.clock.Now()
	goal := &goaldomain.MonthlyGoal{
		ID:           s.genID.Generate(),
		UserID:       userID,
		Ano:          req.Ano,
		Mes:          req.Mes,
		MetaReunioes: req.MetaReunioes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.UpsertMonthly(ctx, s.db, goal); err != nil {
		return nil, err
	}

	stored, err := s.repo.FindMonthly(ctx, s.db, userID, req.Ano, req.Mes)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Service) GetMonthly(ctx context.Context, userIDRaw string, ano, mes int) (*goaldomain.MonthlyGoal, error) {
	userID, err := parseUser(userIDRaw)
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.FindMonthly(ctx, s.db, userID, ano, mes)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, goaldomain.ErrNotFound
	}
	return goal, nil
}

func parseUser(value string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || parsed == 0 {
		return 0, goaldomain.ErrInvalidUser
	}
	return parsed, nil
}
