package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	leaddomain "github.com/vendaflow/vendaflow/internal/lead/domain"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	perfdomain "github.com/vendaflow/vendaflow/internal/performance/domain"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeMeetingRepo struct {
	meetingdomain.Repository
	meetings []meetingdomain.Meeting
}

func (f *fakeMeetingRepo) List(ctx context.Context, db *gorm.DB, filter meetingdomain.ListFilter) ([]meetingdomain.Meeting, error) {
	var out []meetingdomain.Meeting
	for _, m := range f.meetings {
		if filter.From != nil && m.DataAgendamento.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.DataAgendamento.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeSaleRepo struct {
	saledomain.Repository
	sales []saledomain.Sale
}

func (f *fakeSaleRepo) ListMatriculadosByPeriod(ctx context.Context, db *gorm.DB, from, to time.Time) ([]saledomain.Sale, error) {
	var out []saledomain.Sale
	for _, s := range f.sales {
		if s.Status != saledomain.StatusMatriculado {
			continue
		}
		effective := s.EffectiveConversionDate()
		if effective.Before(from) || effective.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSaleRepo) ListByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]saledomain.Sale, error) {
	want := make(map[snowflake.ID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []saledomain.Sale
	for _, s := range f.sales {
		if _, ok := want[s.ID]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeStudentRepo struct {
	saledomain.StudentRepository
	students []saledomain.Student
	sales    []saledomain.Sale
}

func (f *fakeStudentRepo) ListEnrolled(ctx context.Context, db *gorm.DB) ([]saledomain.Student, error) {
	enrolled := make(map[snowflake.ID]struct{})
	for _, s := range f.sales {
		if s.Status == saledomain.StatusMatriculado {
			enrolled[s.ID] = struct{}{}
		}
	}
	var out []saledomain.Student
	for _, st := range f.students {
		if _, ok := enrolled[st.FormEntryID]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

type fakeLeadRepo struct {
	leaddomain.Repository
	leads []leaddomain.Lead
}

func (f *fakeLeadRepo) ListByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]leaddomain.Lead, error) {
	want := make(map[snowflake.ID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []leaddomain.Lead
	for _, l := range f.leads {
		if _, ok := want[l.ID]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func newTestService(meetings []meetingdomain.Meeting, sales []saledomain.Sale, leads []leaddomain.Lead, students []saledomain.Student) *Service {
	return New(Params{
		Log:         zap.NewNop(),
		MeetingRepo: &fakeMeetingRepo{meetings: meetings},
		SaleRepo:    &fakeSaleRepo{sales: sales},
		StudentRepo: &fakeStudentRepo{students: students, sales: sales},
		LeadRepo:    &fakeLeadRepo{leads: leads},
	}).(*Service)
}

func TestStatsWeeklyVendor(t *testing.T) {
	vendedor := snowflake.ID(7)
	compareceu := meetingdomain.ResultadoCompareceu
	ausente := meetingdomain.ResultadoAusente

	meetings := []meetingdomain.Meeting{
		{
			ID: 1, VendedorID: vendedor, LeadID: 10,
			DataAgendamento:  time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
			ResultadoReuniao: &compareceu,
		},
		{
			ID: 2, VendedorID: vendedor, LeadID: 11,
			DataAgendamento:  time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC),
			ResultadoReuniao: &ausente,
		},
	}
	sales := []saledomain.Sale{
		{
			ID: 100, VendedorID: vendedor,
			Status:        saledomain.StatusMatriculado,
			DataAprovacao: timePtr(time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC)),
		},
	}

	svc := newTestService(meetings, sales, nil, nil)
	resp, err := svc.Stats(context.Background(), perfdomain.StatsRequest{Data: "2024-01-08"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), resp.Inicio)
	assert.Equal(t, perfdomain.EscopoSemana, resp.Escopo)
	assert.Equal(t, perfdomain.PapelVendedor, resp.Papel)
	require.Len(t, resp.Itens, 1)

	item := resp.Itens[0]
	assert.Equal(t, vendedor.String(), item.UserID)
	assert.Equal(t, 1, item.Convertidas)
	assert.Equal(t, 1, item.Compareceram)
	assert.Equal(t, 1, item.NaoCompareceram)
	assert.InDelta(t, 50.0, item.TaxaConversao, 1e-9)
}

func TestStatsMatchesOrphanComprouViaContactInfo(t *testing.T) {
	vendedor := snowflake.ID(7)
	comprou := meetingdomain.ResultadoComprou

	meetings := []meetingdomain.Meeting{
		{
			ID: 1, VendedorID: vendedor, LeadID: 10,
			DataAgendamento:  time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
			ResultadoReuniao: &comprou,
		},
	}
	sales := []saledomain.Sale{
		{
			ID: 100, VendedorID: vendedor,
			Status:        saledomain.StatusMatriculado,
			DataAprovacao: timePtr(time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)),
		},
	}
	leads := []leaddomain.Lead{
		{ID: 10, Nome: "Maria", Whatsapp: strPtr("(11) 99999-0000")},
	}
	students := []saledomain.Student{
		{ID: 200, FormEntryID: 100, Nome: "Maria", Telefone: strPtr("11999990000")},
	}

	svc := newTestService(meetings, sales, leads, students)
	resp, err := svc.Stats(context.Background(), perfdomain.StatsRequest{Data: "2024-01-08"})
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)

	item := resp.Itens[0]
	assert.Equal(t, 1, item.Convertidas)
	assert.Equal(t, 0, item.Pendentes)
}

func TestStatsUnapprovedSaleKeepsComprouPending(t *testing.T) {
	vendedor := snowflake.ID(7)
	comprou := meetingdomain.ResultadoComprou

	meetings := []meetingdomain.Meeting{
		{
			ID: 1, VendedorID: vendedor, LeadID: 10,
			DataAgendamento:  time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
			ResultadoReuniao: &comprou,
		},
	}
	sales := []saledomain.Sale{
		{
			ID: 100, VendedorID: vendedor,
			Status:    saledomain.StatusPendente,
			CreatedAt: time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC),
		},
	}
	leads := []leaddomain.Lead{
		{ID: 10, Nome: "Maria", Whatsapp: strPtr("(11) 99999-0000")},
	}
	students := []saledomain.Student{
		{ID: 200, FormEntryID: 100, Nome: "Maria", Telefone: strPtr("11999990000")},
	}

	svc := newTestService(meetings, sales, leads, students)
	resp, err := svc.Stats(context.Background(), perfdomain.StatsRequest{Data: "2024-01-08"})
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)

	item := resp.Itens[0]
	assert.Equal(t, 0, item.Convertidas)
	assert.Equal(t, 1, item.Pendentes, "comprou awaiting sale review must stay pending")
}

func TestStatsLinkedSaleFromEarlierWeekNotPending(t *testing.T) {
	vendedor := snowflake.ID(7)
	comprou := meetingdomain.ResultadoComprou
	formEntryID := snowflake.ID(100)

	meetings := []meetingdomain.Meeting{
		{
			ID: 1, VendedorID: vendedor, LeadID: 10, FormEntryID: &formEntryID,
			DataAgendamento:  time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC),
			ResultadoReuniao: &comprou,
		},
	}
	sales := []saledomain.Sale{
		{
			ID: formEntryID, VendedorID: vendedor,
			Status:        saledomain.StatusMatriculado,
			DataAprovacao: timePtr(time.Date(2023, 12, 28, 9, 0, 0, 0, time.UTC)),
		},
	}

	svc := newTestService(meetings, sales, nil, nil)
	resp, err := svc.Stats(context.Background(), perfdomain.StatsRequest{Data: "2024-01-08"})
	require.NoError(t, err)

	assert.Empty(t, resp.Itens, "meeting settled by an earlier week's sale must not report pending")
}

func TestStatsMonthlySDR(t *testing.T) {
	sdr := snowflake.ID(9)
	compareceu := meetingdomain.ResultadoCompareceu

	meetings := []meetingdomain.Meeting{
		{
			ID: 1, VendedorID: 7, SDRID: &sdr, LeadID: 10,
			DataAgendamento:  time.Date(2024, 1, 25, 10, 0, 0, 0, time.UTC),
			ResultadoReuniao: &compareceu,
		},
	}

	svc := newTestService(meetings, nil, nil, nil)
	resp, err := svc.Stats(context.Background(), perfdomain.StatsRequest{
		Data:   "2024-01-15",
		Escopo: perfdomain.EscopoMes,
		Papel:  perfdomain.PapelSDR,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), resp.Inicio)
	require.Len(t, resp.Itens, 1)
	assert.Equal(t, sdr.String(), resp.Itens[0].UserID)
	assert.Equal(t, 1, resp.Itens[0].Compareceram)
}

func TestStatsRejectsBadInput(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	_, err := svc.Stats(context.Background(), perfdomain.StatsRequest{Data: "not-a-date"})
	assert.ErrorIs(t, err, perfdomain.ErrInvalidData)

	_, err = svc.Stats(context.Background(), perfdomain.StatsRequest{Data: "2024-01-08", Escopo: "ano"})
	assert.ErrorIs(t, err, perfdomain.ErrInvalidEscopo)

	_, err = svc.Stats(context.Background(), perfdomain.StatsRequest{Data: "2024-01-08", Papel: "gerente"})
	assert.ErrorIs(t, err, perfdomain.ErrInvalidPapel)
}
