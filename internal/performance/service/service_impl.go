package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	leaddomain "github.com/vendaflow/vendaflow/internal/lead/domain"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	obsmetrics "github.com/vendaflow/vendaflow/internal/observability/metrics"
	perfdomain "github.com/vendaflow/vendaflow/internal/performance/domain"
	"github.com/vendaflow/vendaflow/internal/performance/reconcile"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	MeetingRepo meetingdomain.Repository
	SaleRepo    saledomain.Repository
	StudentRepo saledomain.StudentRepository
	LeadRepo    leaddomain.Repository
	ObsMetrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	meetingRepo meetingdomain.Repository
	saleRepo    saledomain.Repository
	studentRepo saledomain.StudentRepository
	leadRepo    leaddomain.Repository
	obsMetrics  *obsmetrics.Metrics
}

func New(p Params) perfdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("performance.service"),
		meetingRepo: p.MeetingRepo,
		saleRepo:    p.SaleRepo,
		studentRepo: p.StudentRepo,
		leadRepo:    p.LeadRepo,
		obsMetrics:  p.ObsMetrics,
	}
}

func (s *Service) Stats(ctx context.Context, req perfdomain.StatsRequest) (*perfdomain.StatsResponse, error) {
	date, err := parseDate(req.Data)
	if err != nil {
		return nil, perfdomain.ErrInvalidData
	}

	var period reconcile.Period
	switch strings.ToLower(strings.TrimSpace(req.Escopo)) {
	case "", perfdomain.EscopoSemana:
		period = reconcile.WeekRange(date)
	case perfdomain.EscopoMes:
		period = reconcile.MonthRange(date)
	default:
		return nil, perfdomain.ErrInvalidEscopo
	}

	var resolver reconcile.PersonResolver
	switch strings.ToLower(strings.TrimSpace(req.Papel)) {
	case "", perfdomain.PapelVendedor:
		resolver = reconcile.VendorResolver
	case perfdomain.PapelSDR:
		resolver = reconcile.SDRResolver
	default:
		return nil, perfdomain.ErrInvalidPapel
	}

	input, err := s.fetchInput(ctx, period)
	if err != nil {
		return nil, err
	}

	stats := reconcile.Aggregate(input, period, resolver)
	s.obsMetrics.RecordAggregation(ctx, resolver.Name)

	itens := make([]perfdomain.PersonStats, 0, len(stats))
	for personID, personStats := range stats {
		itens = append(itens, perfdomain.PersonStats{
			UserID: personID.String(),
			Stats:  personStats,
		})
	}
	sort.Slice(itens, func(a, b int) bool { return itens[a].UserID < itens[b].UserID })

	s.log.Debug("estatisticas agregadas",
		zap.String("papel", resolver.Name),
		zap.Time("inicio", period.Start),
		zap.Int("pessoas", len(itens)),
	)

	return &perfdomain.StatsResponse{
		Inicio: period.Start,
		Fim:    period.End,
		Escopo: scopeName(req.Escopo),
		Papel:  resolver.Name,
		Itens:  itens,
	}, nil
}

// fetchInput loads the period's meetings and enrolled sales plus the
// lead/student rows the matcher compares contact info against. Sales
// linked or matchable to a meeting are loaded regardless of period so a
// conversion settled in another week still settles its meeting.
func (s *Service) fetchInput(ctx context.Context, period reconcile.Period) (reconcile.Input, error) {
	meetings, err := s.meetingRepo.List(ctx, s.db, meetingdomain.ListFilter{
		From: &period.Start,
		To:   &period.End,
	})
	if err != nil {
		return reconcile.Input{}, err
	}

	sales, err := s.saleRepo.ListMatriculadosByPeriod(ctx, s.db, period.Start, period.End)
	if err != nil {
		return reconcile.Input{}, err
	}
	have := make(map[snowflake.ID]struct{}, len(sales))
	for i := range sales {
		have[sales[i].ID] = struct{}{}
	}

	sales, err = s.appendSalesByIDs(ctx, sales, have, linkedFormEntryIDs(meetings))
	if err != nil {
		return reconcile.Input{}, err
	}

	var leads []leaddomain.Lead
	if ids := orphanLeadIDs(meetings); len(ids) > 0 {
		leads, err = s.leadRepo.ListByIDs(ctx, s.db, ids)
		if err != nil {
			return reconcile.Input{}, err
		}
	}

	var students []saledomain.Student
	if len(leads) > 0 {
		students, err = s.studentRepo.ListEnrolled(ctx, s.db)
		if err != nil {
			return reconcile.Input{}, err
		}
		sales, err = s.appendSalesByIDs(ctx, sales, have, studentFormEntryIDs(students))
		if err != nil {
			return reconcile.Input{}, err
		}
	}

	return reconcile.Input{
		Meetings: meetings,
		Sales:    sales,
		Leads:    leads,
		Students: students,
	}, nil
}

// appendSalesByIDs fetches the given form entries and appends the rows not
// already loaded, so the same sale is never aggregated twice.
func (s *Service) appendSalesByIDs(ctx context.Context, sales []saledomain.Sale, have map[snowflake.ID]struct{}, ids []snowflake.ID) ([]saledomain.Sale, error) {
	var missing []snowflake.ID
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return sales, nil
	}

	rows, err := s.saleRepo.ListByIDs(ctx, s.db, missing)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if _, ok := have[rows[i].ID]; ok {
			continue
		}
		have[rows[i].ID] = struct{}{}
		sales = append(sales, rows[i])
	}
	return sales, nil
}

func linkedFormEntryIDs(meetings []meetingdomain.Meeting) []snowflake.ID {
	seen := make(map[snowflake.ID]struct{})
	var ids []snowflake.ID
	for i := range meetings {
		m := &meetings[i]
		if m.FormEntryID == nil {
			continue
		}
		if _, ok := seen[*m.FormEntryID]; ok {
			continue
		}
		seen[*m.FormEntryID] = struct{}{}
		ids = append(ids, *m.FormEntryID)
	}
	return ids
}

func studentFormEntryIDs(students []saledomain.Student) []snowflake.ID {
	seen := make(map[snowflake.ID]struct{})
	var ids []snowflake.ID
	for i := range students {
		if _, ok := seen[students[i].FormEntryID]; ok {
			continue
		}
		seen[students[i].FormEntryID] = struct{}{}
		ids = append(ids, students[i].FormEntryID)
	}
	return ids
}

func orphanLeadIDs(meetings []meetingdomain.Meeting) []snowflake.ID {
	seen := make(map[snowflake.ID]struct{})
	var ids []snowflake.ID
	for i := range meetings {
		m := &meetings[i]
		if m.FormEntryID != nil || m.Resultado() != meetingdomain.ResultadoComprou {
			continue
		}
		if _, ok := seen[m.LeadID]; ok {
			continue
		}
		seen[m.LeadID] = struct{}{}
		ids = append(ids, m.LeadID)
	}
	return ids
}

func scopeName(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), perfdomain.EscopoMes) {
		return perfdomain.EscopoMes
	}
	return perfdomain.EscopoSemana
}

func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
