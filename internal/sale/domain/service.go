package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Approve(ctx context.Context, id string, req ApproveRequest) (*Response, error)
	Reject(ctx context.Context, id string) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]Response, error)
}

type AlunoDados struct {
	Nome     string  `json:"nome"`
	Email    *string `json:"email,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
}

type CreateRequest struct {
	VendedorID             string      `json:"vendedor_id"`
	SDRID                  string      `json:"sdr_id"`
	CursoID                string      `json:"curso_id"`
	AgendamentoID          string      `json:"agendamento_id"`
	PontuacaoEsperada      float64     `json:"pontuacao_esperada"`
	DataAssinaturaContrato string      `json:"data_assinatura_contrato"`
	Aluno                  *AlunoDados `json:"aluno,omitempty"`
}

type ApproveRequest struct {
	PontuacaoValidada *float64 `json:"pontuacao_validada,omitempty"`
}

type Response struct {
	ID                     string     `json:"id"`
	VendedorID             string     `json:"vendedor_id"`
	SDRID                  *string    `json:"sdr_id,omitempty"`
	CursoID                *string    `json:"curso_id,omitempty"`
	Status                 string     `json:"status"`
	DataAssinaturaContrato *time.Time `json:"data_assinatura_contrato,omitempty"`
	DataAprovacao          *time.Time `json:"data_aprovacao,omitempty"`
	PontuacaoEsperada      float64    `json:"pontuacao_esperada"`
	PontuacaoValidada      *float64   `json:"pontuacao_validada,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

var (
	ErrInvalidVendedor  = errors.New("invalid_vendedor_id")
	ErrInvalidSDR       = errors.New("invalid_sdr_id")
	ErrInvalidCurso     = errors.New("invalid_curso_id")
	ErrInvalidData      = errors.New("invalid_data_assinatura_contrato")
	ErrInvalidPontuacao = errors.New("invalid_pontuacao")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidAluno     = errors.New("invalid_aluno")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyReviewed  = errors.New("form_entry_ja_revisada")
	ErrMeetingNotFound  = errors.New("agendamento_not_found")
)
