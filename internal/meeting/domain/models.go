package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusAgendado  = "agendado"
	StatusCancelado = "cancelado"
	StatusRemarcado = "remarcado"
)

// Resultado codes recorded against a meeting. The classifier in
// internal/performance understands legacy variants beyond this set.
const (
	ResultadoComprou              = "comprou"
	ResultadoCompareceuNaoComprou = "compareceu_nao_comprou"
	ResultadoPresente             = "presente"
	ResultadoCompareceu           = "compareceu"
	ResultadoNaoCompareceu        = "nao_compareceu"
	ResultadoAusente              = "ausente"
)

type Meeting struct {
	ID                    snowflake.ID      `json:"id" gorm:"primaryKey"`
	LeadID                snowflake.ID      `json:"lead_id" gorm:"column:lead_id;not null;index"`
	VendedorID            snowflake.ID      `json:"vendedor_id" gorm:"column:vendedor_id;not null;index"`
	SDRID                 *snowflake.ID     `json:"sdr_id,omitempty" gorm:"column:sdr_id;index"`
	PosGraduacaoInteresse string            `json:"pos_graduacao_interesse" gorm:"type:text;not null"`
	DataAgendamento       time.Time         `json:"data_agendamento" gorm:"not null;index"`
	DataFimAgendamento    time.Time         `json:"data_fim_agendamento" gorm:"not null"`
	DataResultado         *time.Time        `json:"data_resultado,omitempty"`
	ResultadoReuniao      *string           `json:"resultado_reuniao,omitempty" gorm:"type:text"`
	FormEntryID           *snowflake.ID     `json:"form_entry_id,omitempty" gorm:"column:form_entry_id"`
	LinkReuniao           string            `json:"link_reuniao" gorm:"type:text;not null"`
	Status                string            `json:"status" gorm:"type:text;not null;default:agendado"`
	Metadata              datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt             time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt             time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Meeting) TableName() string { return "agendamentos" }

// Resultado returns the trimmed outcome code, empty when unset.
func (m Meeting) Resultado() string {
	if m.ResultadoReuniao == nil {
		return ""
	}
	return strings.TrimSpace(*m.ResultadoReuniao)
}

// SpecialEvent is an agenda-wide window; blocking events reject new meetings.
type SpecialEvent struct {
	ID                  snowflake.ID `json:"id" gorm:"primaryKey"`
	Titulo              string       `json:"titulo" gorm:"type:text;not null"`
	DataInicio          time.Time    `json:"data_inicio" gorm:"not null"`
	DataFim             time.Time    `json:"data_fim" gorm:"not null"`
	BloqueiaAgendamento bool         `json:"bloqueia_agendamento" gorm:"not null;default:false"`
	CreatedAt           time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SpecialEvent) TableName() string { return "eventos_especiais" }
