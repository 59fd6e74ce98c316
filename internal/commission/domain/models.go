package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MaximoAberto marks a tier's upper bound as open-ended.
const MaximoAberto = 999

type CommissionTier struct {
	ID               snowflake.ID `json:"id" gorm:"primaryKey"`
	TipoUsuario      string       `json:"tipo_usuario" gorm:"type:text;not null;index"`
	PercentualMinimo int          `json:"percentual_minimo" gorm:"not null"`
	PercentualMaximo int          `json:"percentual_maximo" gorm:"not null"`
	Multiplicador    float64      `json:"multiplicador" gorm:"not null"`
	CreatedAt        time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CommissionTier) TableName() string { return "niveis_comissao" }

// DefaultTiers is the fallback band table used when a role has no tiers
// configured. Three bands: below 60% pays nothing, 60-84% pays the weekly
// variable, 85% and up pays 1.5x.
var DefaultTiers = []CommissionTier{
	{PercentualMinimo: 0, PercentualMaximo: 59, Multiplicador: 0},
	{PercentualMinimo: 60, PercentualMaximo: 84, Multiplicador: 1},
	{PercentualMinimo: 85, PercentualMaximo: MaximoAberto, Multiplicador: 1.5},
}
