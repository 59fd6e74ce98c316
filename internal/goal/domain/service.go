package domain

import (
	"context"
	"errors"
)

type Service interface {
	UpsertWeekly(ctx context.Context, req UpsertWeeklyRequest) (*WeeklyGoal, error)
	GetWeekly(ctx context.Context, userID string, ano, semana int) (*WeeklyGoal, error)
	ListWeekly(ctx context.Context, ano, semana int) ([]WeeklyGoal, error)
	UpsertMonthly(ctx context.Context, req UpsertMonthlyRequest) (*MonthlyGoal, error)
	GetMonthly(ctx context.Context, userID string, ano, mes int) (*MonthlyGoal, error)
}

type UpsertWeeklyRequest struct {
	UserID          string  `json:"user_id"`
	Ano             int     `json:"ano"`
	Semana          int     `json:"semana"`
	MetaPontos      float64 `json:"meta_pontos"`
	VariavelSemanal float64 `json:"variavel_semanal"`
}

type UpsertMonthlyRequest struct {
	UserID       string `json:"user_id"`
	Ano          int    `json:"ano"`
	Mes          int    `json:"mes"`
	MetaReunioes int    `json:"meta_reunioes"`
}

var (
	ErrInvalidUser   = errors.New("invalid_user_id")
	ErrInvalidPeriod = errors.New("invalid_period")
	ErrInvalidMeta   = errors.New("invalid_meta")
	ErrNotFound      = errors.New("not_found")
)
