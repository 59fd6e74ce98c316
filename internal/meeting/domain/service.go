package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, filter ListFilter) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	RecordOutcome(ctx context.Context, id string, req OutcomeRequest) (*Response, error)
	Cancel(ctx context.Context, id string) (*Response, error)
}

type LeadDados struct {
	Nome     string  `json:"nome"`
	Whatsapp *string `json:"whatsapp,omitempty"`
	Email    *string `json:"email,omitempty"`
}

type CreateRequest struct {
	VendedorID            string     `json:"vendedor_id"`
	SDRID                 string     `json:"sdr_id"`
	PosGraduacaoInteresse string     `json:"pos_graduacao_interesse"`
	DataAgendamento       string     `json:"data_agendamento"`
	DataFimAgendamento    string     `json:"data_fim_agendamento"`
	LinkReuniao           string     `json:"link_reuniao"`
	LeadID                string     `json:"lead_id"`
	LeadDados             *LeadDados `json:"lead_dados,omitempty"`
	Observacoes           string     `json:"observacoes"`
}

type ListFilter struct {
	Status     []string
	From       *time.Time
	To         *time.Time
	VendedorID *int64
	SDRID      *int64
	Limit      int
	Offset     int
}

type OutcomeRequest struct {
	ResultadoReuniao string `json:"resultado_reuniao"`
}

type Response struct {
	ID                    string     `json:"id"`
	LeadID                string     `json:"lead_id"`
	VendedorID            string     `json:"vendedor_id"`
	SDRID                 *string    `json:"sdr_id,omitempty"`
	PosGraduacaoInteresse string     `json:"pos_graduacao_interesse"`
	DataAgendamento       time.Time  `json:"data_agendamento"`
	DataFimAgendamento    time.Time  `json:"data_fim_agendamento"`
	DataResultado         *time.Time `json:"data_resultado,omitempty"`
	ResultadoReuniao      *string    `json:"resultado_reuniao,omitempty"`
	FormEntryID           *string    `json:"form_entry_id,omitempty"`
	LinkReuniao           string     `json:"link_reuniao"`
	Status                string     `json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

var (
	ErrInvalidVendedor  = errors.New("invalid_vendedor_id")
	ErrInvalidSDR       = errors.New("invalid_sdr_id")
	ErrInvalidInteresse = errors.New("invalid_pos_graduacao_interesse")
	ErrInvalidData      = errors.New("invalid_data_agendamento")
	ErrInvalidDataFim   = errors.New("invalid_data_fim_agendamento")
	ErrInvalidLink      = errors.New("invalid_link_reuniao")
	ErrInvalidLead      = errors.New("invalid_lead")
	ErrInvalidResultado = errors.New("invalid_resultado_reuniao")
	ErrInvalidID        = errors.New("invalid_id")
	ErrConflitoAgenda   = errors.New("conflito_agenda")
	ErrEventoBloqueado  = errors.New("evento_especial_bloqueado")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyCancelled = errors.New("agendamento_cancelado")
)
