package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/vendaflow/vendaflow/internal/clock"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	GenID       *snowflake.Node
	Repo        saledomain.Repository
	Students    saledomain.StudentRepository
	MeetingRepo meetingdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	genID       *snowflake.Node
	repo        saledomain.Repository
	students    saledomain.StudentRepository
	meetingRepo meetingdomain.Repository
}

func New(p Params) saledomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("sale.service"),
		clock:       p.Clock,
		genID:       p.GenID,
		repo:        p.Repo,
		students:    p.Students,
		meetingRepo: p.MeetingRepo,
	}
}

func (s *Service) Create(ctx context.Context, req saledomain.CreateRequest) (*saledomain.Response, error) {
	vendedorID, err := snowflake.ParseString(strings.TrimSpace(req.VendedorID))
	if err != nil || vendedorID == 0 {
		return nil, saledomain.ErrInvalidVendedor
	}

	var sdrID *snowflake.ID
	if strings.TrimSpace(req.SDRID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(req.SDRID))
		if err != nil {
			return nil, saledomain.ErrInvalidSDR
		}
		sdrID = &parsed
	}

	var cursoID *snowflake.ID
	if strings.TrimSpace(req.CursoID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(req.CursoID))
		if err != nil {
			return nil, saledomain.ErrInvalidCurso
		}
		cursoID = &parsed
	}

	if req.PontuacaoEsperada < 0 {
		return nil, saledomain.ErrInvalidPontuacao
	}

	var assinatura *time.Time
	if strings.TrimSpace(req.DataAssinaturaContrato) != "" {
		parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(req.DataAssinaturaContrato))
		if err != nil {
			return nil, saledomain.ErrInvalidData
		}
		value := parsed.UTC()
		assinatura = &value
	}

	if req.Aluno != nil && strings.TrimSpace(req.Aluno.Nome) == "" {
		return nil, saledomain.ErrInvalidAluno
	}

	var meetingID snowflake.ID
	if strings.TrimSpace(req.AgendamentoID) != "" {
		meetingID, err = snowflake.ParseString(strings.TrimSpace(req.AgendamentoID))
		if err != nil {
			return nil, saledomain.ErrMeetingNotFound
		}
		meeting, err := s.meetingRepo.FindByID(ctx, s.db, meetingID)
		if err != nil {
			return nil, err
		}
		if meeting == nil {
			return nil, saledomain.ErrMeetingNotFound
		}
	}

	now := s.clock.Now()
	sale := &saledomain.Sale{
		ID:                     s.genID.Generate(),
		VendedorID:             vendedorID,
		SDRID:                  sdrID,
		CursoID:                cursoID,
		Status:                 saledomain.StatusPendente,
		DataAssinaturaContrato: assinatura,
		PontuacaoEsperada:      req.PontuacaoEsperada,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.repo.Insert(ctx, s.db, sale); err != nil {
		return nil, err
	}

	if req.Aluno != nil {
		student := &saledomain.Student{
			ID:          s.genID.Generate(),
			FormEntryID: sale.ID,
			Nome:        strings.TrimSpace(req.Aluno.Nome),
			Email:       req.Aluno.Email,
			Telefone:    req.Aluno.Telefone,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.students.Insert(ctx, s.db, student); err != nil {
			return nil, err
		}
	}

	if meetingID != 0 {
		if err := s.meetingRepo.LinkFormEntry(ctx, s.db, meetingID, sale.ID); err != nil {
			return nil, err
		}
	}

	s.log.Info("venda registrada",
		zap.String("form_entry_id", sale.ID.String()),
		zap.String("vendedor_id", vendedorID.String()),
	)
	return toResponse(sale), nil
}

func (s *Service) Approve(ctx context.Context, id string, req saledomain.ApproveRequest) (*saledomain.Response, error) {
	sale, err := s.findPending(ctx, id)
	if err != nil {
		return nil, err
	}

	validada := sale.PontuacaoEsperada
	if req.PontuacaoValidada != nil {
		if *req.PontuacaoValidada < 0 {
			return nil, saledomain.ErrInvalidPontuacao
		}
		validada = *req.PontuacaoValidada
	}

	now := s.clock.Now()
	if err := s.repo.UpdateReview(ctx, s.db, sale.ID, saledomain.StatusMatriculado, &now, &validada); err != nil {
		return nil, err
	}

	sale.Status = saledomain.StatusMatriculado
	sale.DataAprovacao = &now
	sale.PontuacaoValidada = &validada
	sale.UpdatedAt = now
	return toResponse(sale), nil
}

func (s *Service) Reject(ctx context.Context, id string) (*saledomain.Response, error) {
	sale, err := s.findPending(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateReview(ctx, s.db, sale.ID, saledomain.StatusDesistiu, nil, nil); err != nil {
		return nil, err
	}

	sale.Status = saledomain.StatusDesistiu
	return toResponse(sale), nil
}

func (s *Service) Get(ctx context.Context, id string) (*saledomain.Response, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, saledomain.ErrInvalidID
	}

	sale, err := s.repo.FindByID(ctx, s.db, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saledomain.ErrNotFound
	}
	return toResponse(sale), nil
}

func (s *Service) ListByPeriod(ctx context.Context, from, to time.Time) ([]saledomain.Response, error) {
	items, err := s.repo.ListMatriculadosByPeriod(ctx, s.db, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]saledomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) findPending(ctx context.Context, id string) (*saledomain.Sale, error) {
	saleID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, saledomain.ErrInvalidID
	}

	sale, err := s.repo.FindByID(ctx, s.db, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saledomain.ErrNotFound
	}
	if sale.Status != saledomain.StatusPendente {
		return nil, saledomain.ErrAlreadyReviewed
	}
	return sale, nil
}

func toResponse(sale *saledomain.Sale) *saledomain.Response {
	resp := &saledomain.Response{
		ID:                     sale.ID.String(),
		VendedorID:             sale.VendedorID.String(),
		Status:                 sale.Status,
		DataAssinaturaContrato: sale.DataAssinaturaContrato,
		DataAprovacao:          sale.DataAprovacao,
		PontuacaoEsperada:      sale.PontuacaoEsperada,
		PontuacaoValidada:      sale.PontuacaoValidada,
		CreatedAt:              sale.CreatedAt,
		UpdatedAt:              sale.UpdatedAt,
	}
	if sale.SDRID != nil {
		value := sale.SDRID.String()
		resp.SDRID = &value
	}
	if sale.CursoID != nil {
		value := sale.CursoID.String()
		resp.CursoID = &value
	}
	return resp
}
