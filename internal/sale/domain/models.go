package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusPendente    = "pendente"
	StatusMatriculado = "matriculado"
	StatusDesistiu    = "desistiu"
)

type Sale struct {
	ID                     snowflake.ID      `json:"id" gorm:"primaryKey"`
	VendedorID             snowflake.ID      `json:"vendedor_id" gorm:"column:vendedor_id;not null;index"`
	SDRID                  *snowflake.ID     `json:"sdr_id,omitempty" gorm:"column:sdr_id"`
	CursoID                *snowflake.ID     `json:"curso_id,omitempty" gorm:"column:curso_id"`
	Status                 string            `json:"status" gorm:"type:text;not null;default:pendente"`
	DataAssinaturaContrato *time.Time        `json:"data_assinatura_contrato,omitempty"`
	DataAprovacao          *time.Time        `json:"data_aprovacao,omitempty"`
	PontuacaoEsperada      float64           `json:"pontuacao_esperada" gorm:"not null;default:0"`
	PontuacaoValidada      *float64          `json:"pontuacao_validada,omitempty"`
	Metadata               datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt              time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt              time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Sale) TableName() string { return "form_entries" }

// EffectiveConversionDate picks the date a conversion is attributed to:
// contract signature when present, approval date next, submission date last.
func (s Sale) EffectiveConversionDate() time.Time {
	if s.DataAssinaturaContrato != nil {
		return *s.DataAssinaturaContrato
	}
	if s.DataAprovacao != nil {
		return *s.DataAprovacao
	}
	return s.CreatedAt
}

// Pontuacao returns validated points when the review happened, expected otherwise.
func (s Sale) Pontuacao() float64 {
	if s.PontuacaoValidada != nil {
		return *s.PontuacaoValidada
	}
	return s.PontuacaoEsperada
}

type Student struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	FormEntryID snowflake.ID `json:"form_entry_id" gorm:"column:form_entry_id;not null;uniqueIndex"`
	Nome        string       `json:"nome" gorm:"type:text;not null"`
	Email       *string      `json:"email,omitempty" gorm:"type:text"`
	Telefone    *string      `json:"telefone,omitempty" gorm:"type:text"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Student) TableName() string { return "alunos" }
