package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendaflow/vendaflow/internal/clock"
	leaddomain "github.com/vendaflow/vendaflow/internal/lead/domain"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	obsmetrics "github.com/vendaflow/vendaflow/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultDuration    = 60 * time.Minute
	conflictScanWindow = 2 * time.Hour
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	GenID      *snowflake.Node
	Repo       meetingdomain.Repository
	EventRepo  meetingdomain.SpecialEventRepository
	LeadRepo   leaddomain.Repository
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	genID      *snowflake.Node
	repo       meetingdomain.Repository
	eventRepo  meetingdomain.SpecialEventRepository
	leadRepo   leaddomain.Repository
	obsMetrics *obsmetrics.Metrics
}

func New(p Params) meetingdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("meeting.service"),
		clock:      p.Clock,
		genID:      p.GenID,
		repo:       p.Repo,
		eventRepo:  p.EventRepo,
		leadRepo:   p.LeadRepo,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) Create(ctx context.Context, req meetingdomain.CreateRequest) (*meetingdomain.Response, error) {
	vendedorID, err := parseID(req.VendedorID)
	if err != nil {
		return nil, meetingdomain.ErrInvalidVendedor
	}
	sdrID, err := parseID(req.SDRID)
	if err != nil {
		return nil, meetingdomain.ErrInvalidSDR
	}
	if strings.TrimSpace(req.PosGraduacaoInteresse) == "" {
		return nil, meetingdomain.ErrInvalidInteresse
	}
	if !isHTTPURL(req.LinkReuniao) {
		return nil, meetingdomain.ErrInvalidLink
	}

	inicio, err := parseDate(req.DataAgendamento)
	if err != nil {
		return nil, meetingdomain.ErrInvalidData
	}
	fim := inicio.Add(defaultDuration)
	if strings.TrimSpace(req.DataFimAgendamento) != "" {
		fim, err = parseDate(req.DataFimAgendamento)
		if err != nil {
			return nil, meetingdomain.ErrInvalidDataFim
		}
	}
	if !fim.After(inicio) {
		return nil, meetingdomain.ErrInvalidDataFim
	}

	leadID, err := s.resolveLead(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.checkConflicts(ctx, vendedorID, inicio, fim); err != nil {
		return nil, err
	}

	var metadata datatypes.JSONMap
	if obs := strings.TrimSpace(req.Observacoes); obs != "" {
		metadata = datatypes.JSONMap{"observacoes": obs}
	}

	now := s.clock.Now()
	entity := &meetingdomain.Meeting{
		ID:                    s.genID.Generate(),
		LeadID:                leadID,
		VendedorID:            vendedorID,
		SDRID:                 &sdrID,
		PosGraduacaoInteresse: strings.TrimSpace(req.PosGraduacaoInteresse),
		DataAgendamento:       inicio,
		DataFimAgendamento:    fim,
		LinkReuniao:           strings.TrimSpace(req.LinkReuniao),
		Status:                meetingdomain.StatusAgendado,
		Metadata:              metadata,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.obsMetrics.RecordMeetingCreated(ctx, "api")
	s.log.Info("agendamento criado",
		zap.String("agendamento_id", entity.ID.String()),
		zap.String("vendedor_id", vendedorID.String()),
		zap.Time("data_agendamento", inicio),
	)

	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context, filter meetingdomain.ListFilter) ([]meetingdomain.Response, error) {
	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]meetingdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*meetingdomain.Response, error) {
	meetingID, err := parseID(id)
	if err != nil {
		return nil, meetingdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, meetingID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, meetingdomain.ErrNotFound
	}
	return toResponse(entity), nil
}

func (s *Service) RecordOutcome(ctx context.Context, id string, req meetingdomain.OutcomeRequest) (*meetingdomain.Response, error) {
	meetingID, err := parseID(id)
	if err != nil {
		return nil, meetingdomain.ErrInvalidID
	}

	resultado := strings.ToLower(strings.TrimSpace(req.ResultadoReuniao))
	if !isKnownResultado(resultado) {
		return nil, meetingdomain.ErrInvalidResultado
	}

	entity, err := s.repo.FindByID(ctx, s.db, meetingID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, meetingdomain.ErrNotFound
	}
	if entity.Status == meetingdomain.StatusCancelado {
		return nil, meetingdomain.ErrAlreadyCancelled
	}

	now := s.clock.Now()
	if err := s.repo.UpdateOutcome(ctx, s.db, meetingID, resultado, now); err != nil {
		return nil, err
	}

	s.obsMetrics.RecordOutcome(ctx, resultado)

	if resultado == meetingdomain.ResultadoComprou {
		if err := s.leadRepo.UpdateStatus(ctx, s.db, entity.LeadID, leaddomain.StatusConvertido); err != nil {
			s.log.Warn("lead status update failed",
				zap.String("lead_id", entity.LeadID.String()),
				zap.Error(err),
			)
		}
	}

	entity.ResultadoReuniao = &resultado
	entity.DataResultado = &now
	entity.UpdatedAt = now
	return toResponse(entity), nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*meetingdomain.Response, error) {
	meetingID, err := parseID(id)
	if err != nil {
		return nil, meetingdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, meetingID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, meetingdomain.ErrNotFound
	}
	if entity.Status == meetingdomain.StatusCancelado {
		return nil, meetingdomain.ErrAlreadyCancelled
	}

	if err := s.repo.UpdateStatus(ctx, s.db, meetingID, meetingdomain.StatusCancelado); err != nil {
		return nil, err
	}

	entity.Status = meetingdomain.StatusCancelado
	return toResponse(entity), nil
}

// resolveLead returns an existing lead ID or creates one from lead_dados.
func (s *Service) resolveLead(ctx context.Context, req meetingdomain.CreateRequest) (snowflake.ID, error) {
	if strings.TrimSpace(req.LeadID) != "" {
		leadID, err := parseID(req.LeadID)
		if err != nil {
			return 0, meetingdomain.ErrInvalidLead
		}
		existing, err := s.leadRepo.FindByID(ctx, s.db, leadID)
		if err != nil {
			return 0, err
		}
		if existing == nil {
			return 0, meetingdomain.ErrInvalidLead
		}
		return leadID, nil
	}

	if req.LeadDados == nil || strings.TrimSpace(req.LeadDados.Nome) == "" {
		return 0, meetingdomain.ErrInvalidLead
	}

	now := s.clock.Now()
	lead := &leaddomain.Lead{
		ID:        s.genID.Generate(),
		Nome:      strings.TrimSpace(req.LeadDados.Nome),
		Whatsapp:  req.LeadDados.Whatsapp,
		Email:     req.LeadDados.Email,
		Status:    leaddomain.StatusAgendado,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.leadRepo.Insert(ctx, s.db, lead); err != nil {
		return 0, err
	}
	return lead.ID, nil
}

// checkConflicts scans non-cancelled meetings of the salesperson inside a
// +-2h window around the requested slot and rejects on interval overlap,
// then rejects overlaps with blocking special events.
func (s *Service) checkConflicts(ctx context.Context, vendedorID snowflake.ID, inicio, fim time.Time) error {
	existing, err := s.repo.ListActiveByVendedorWindow(ctx, s.db, vendedorID,
		inicio.Add(-conflictScanWindow), inicio.Add(conflictScanWindow))
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].DataAgendamento.Before(fim) && existing[i].DataFimAgendamento.After(inicio) {
			s.obsMetrics.RecordMeetingConflict(ctx, "agenda")
			return meetingdomain.ErrConflitoAgenda
		}
	}

	events, err := s.eventRepo.ListBlockingOverlaps(ctx, s.db, inicio, fim)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		s.obsMetrics.RecordMeetingConflict(ctx, "evento_especial")
		return meetingdomain.ErrEventoBloqueado
	}
	return nil
}

func toResponse(m *meetingdomain.Meeting) *meetingdomain.Response {
	resp := &meetingdomain.Response{
		ID:                    m.ID.String(),
		LeadID:                m.LeadID.String(),
		VendedorID:            m.VendedorID.String(),
		PosGraduacaoInteresse: m.PosGraduacaoInteresse,
		DataAgendamento:       m.DataAgendamento,
		DataFimAgendamento:    m.DataFimAgendamento,
		DataResultado:         m.DataResultado,
		ResultadoReuniao:      m.ResultadoReuniao,
		LinkReuniao:           m.LinkReuniao,
		Status:                m.Status,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
	if m.SDRID != nil {
		value := m.SDRID.String()
		resp.SDRID = &value
	}
	if m.FormEntryID != nil {
		value := m.FormEntryID.String()
		resp.FormEntryID = &value
	}
	return resp
}

func parseID(value string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || parsed == 0 {
		return 0, meetingdomain.ErrInvalidID
	}
	return parsed, nil
}

func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02T15:04:05", trimmed)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func isHTTPURL(value string) bool {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

func isKnownResultado(value string) bool {
	switch value {
	case meetingdomain.ResultadoComprou,
		meetingdomain.ResultadoCompareceuNaoComprou,
		meetingdomain.ResultadoPresente,
		meetingdomain.ResultadoCompareceu,
		meetingdomain.ResultadoNaoCompareceu,
		meetingdomain.ResultadoAusente:
		return true
	}
	return strings.HasPrefix(value, "realizad")
}
