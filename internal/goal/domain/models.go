package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type WeeklyGoal struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID          snowflake.ID `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_metas_semanais_user"`
	Ano             int          `json:"ano" gorm:"not null;uniqueIndex:idx_metas_semanais_user"`
	Semana          int          `json:"semana" gorm:"not null;uniqueIndex:idx_metas_semanais_user"`
	MetaPontos      float64      `json:"meta_pontos" gorm:"not null;default:0"`
	VariavelSemanal float64      `json:"variavel_semanal" gorm:"not null;default:0"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (WeeklyGoal) TableName() string { return "metas_semanais" }

type MonthlyGoal struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID       snowflake.ID `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_metas_mensais_user"`
	Ano          int          `json:"ano" gorm:"not null;uniqueIndex:idx_metas_mensais_user"`
	Mes          int          `json:"mes" gorm:"not null;uniqueIndex:idx_metas_mensais_user"`
	MetaReunioes int          `json:"meta_reunioes" gorm:"not null;default:0"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MonthlyGoal) TableName() string { return "metas_mensais" }

// AttainmentPercent returns achieved points over the goal as a percentage.
// A zero or negative goal yields 0, never a division by zero.
func AttainmentPercent(points, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return points / goal * 100
}
