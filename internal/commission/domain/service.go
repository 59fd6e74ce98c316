package domain

import (
	"context"
	"errors"
)

type Service interface {
	Compute(ctx context.Context, req ComputeRequest) (*Result, error)
	List(ctx context.Context, tipoUsuario string) ([]CommissionTier, error)
	Create(ctx context.Context, req TierRequest) (*CommissionTier, error)
	Update(ctx context.Context, id string, req TierRequest) (*CommissionTier, error)
}

type ComputeRequest struct {
	TipoUsuario     string  `json:"tipo_usuario"`
	Pontos          float64 `json:"pontos"`
	MetaPontos      float64 `json:"meta_pontos"`
	VariavelSemanal float64 `json:"variavel_semanal"`
}

type TierRequest struct {
	TipoUsuario      string  `json:"tipo_usuario"`
	PercentualMinimo int     `json:"percentual_minimo"`
	PercentualMaximo int     `json:"percentual_maximo"`
	Multiplicador    float64 `json:"multiplicador"`
}

var (
	ErrInvalidTipoUsuario = errors.New("invalid_tipo_usuario")
	ErrInvalidFaixa       = errors.New("invalid_faixa_percentual")
	ErrInvalidMultiplier  = errors.New("invalid_multiplicador")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
