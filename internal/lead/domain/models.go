package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusNovo       = "novo"
	StatusAgendado   = "agendado"
	StatusConvertido = "convertido"
	StatusPerdido    = "perdido"
)

type Lead struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Nome      string       `json:"nome" gorm:"type:text;not null"`
	Whatsapp  *string      `json:"whatsapp,omitempty" gorm:"type:text"`
	Email     *string      `json:"email,omitempty" gorm:"type:text"`
	Status    string       `json:"status" gorm:"type:text;not null;default:novo"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Lead) TableName() string { return "leads" }
