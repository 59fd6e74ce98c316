package domain

import (
	"context"
	"errors"
	"time"

	"github.com/vendaflow/vendaflow/internal/performance/reconcile"
)

const (
	EscopoSemana = "semana"
	EscopoMes    = "mes"

	PapelVendedor = "vendedor"
	PapelSDR      = "sdr"
)

type Service interface {
	Stats(ctx context.Context, req StatsRequest) (*StatsResponse, error)
}

type StatsRequest struct {
	// Data is any date inside the desired period, ISO-8601.
	Data   string `json:"data"`
	Escopo string `json:"escopo"`
	Papel  string `json:"papel"`
}

type PersonStats struct {
	UserID string `json:"user_id"`
	reconcile.Stats
}

type StatsResponse struct {
	Inicio time.Time     `json:"inicio"`
	Fim    time.Time     `json:"fim"`
	Escopo string        `json:"escopo"`
	Papel  string        `json:"papel"`
	Itens  []PersonStats `json:"itens"`
}

var (
	ErrInvalidData   = errors.New("invalid_data")
	ErrInvalidEscopo = errors.New("invalid_escopo")
	ErrInvalidPapel  = errors.New("invalid_papel")
)
