package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/vendaflow/internal/clock"
	leaddomain "github.com/vendaflow/vendaflow/internal/lead/domain"
	leadrepository "github.com/vendaflow/vendaflow/internal/lead/repository"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	meetingrepository "github.com/vendaflow/vendaflow/internal/meeting/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&leaddomain.Lead{},
		&meetingdomain.Meeting{},
		&meetingdomain.SpecialEvent{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     clk,
		GenID:     node,
		Repo:      meetingrepository.Provide(),
		EventRepo: meetingrepository.ProvideSpecialEvents(),
		LeadRepo:  leadrepository.Provide(),
	}).(*Service)

	return svc, db, clk
}

func seedLead(t *testing.T, svc *Service, db *gorm.DB) *leaddomain.Lead {
	t.Helper()

	lead := &leaddomain.Lead{
		ID:        svc.genID.Generate(),
		Nome:      "Maria Silva",
		Status:    leaddomain.StatusNovo,
		CreatedAt: svc.clock.Now(),
		UpdatedAt: svc.clock.Now(),
	}
	require.NoError(t, svc.leadRepo.Insert(context.Background(), db, lead))
	return lead
}

func validCreateRequest(svc *Service, leadID string) meetingdomain.CreateRequest {
	return meetingdomain.CreateRequest{
		VendedorID:            svc.genID.Generate().String(),
		SDRID:                 svc.genID.Generate().String(),
		PosGraduacaoInteresse: "MBA Gestão",
		DataAgendamento:       "2024-01-10T14:00:00Z",
		LinkReuniao:           "https://meet.example.com/abc",
		LeadID:                leadID,
	}
}

func TestCreateDefaultsEndToOneHour(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	resp, err := svc.Create(context.Background(), validCreateRequest(svc, lead.ID.String()))
	require.NoError(t, err)

	assert.Equal(t, meetingdomain.StatusAgendado, resp.Status)
	assert.Equal(t, time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC), resp.DataAgendamento)
	assert.Equal(t, time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC), resp.DataFimAgendamento)
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	req := validCreateRequest(svc, lead.ID.String())
	req.DataFimAgendamento = "2024-01-10T13:30:00Z"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, meetingdomain.ErrInvalidDataFim)
}

func TestCreateRejectsBadLink(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	req := validCreateRequest(svc, lead.ID.String())
	req.LinkReuniao = "meet.example.com/abc"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, meetingdomain.ErrInvalidLink)
}

func TestCreateInlineLead(t *testing.T) {
	svc, db, _ := newTestService(t)

	whatsapp := "(11) 99999-0000"
	req := validCreateRequest(svc, "")
	req.LeadDados = &meetingdomain.LeadDados{Nome: "João Souza", Whatsapp: &whatsapp}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.LeadID)

	leadID, err := snowflake.ParseString(resp.LeadID)
	require.NoError(t, err)

	lead, err := svc.leadRepo.FindByID(context.Background(), db, leadID)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "João Souza", lead.Nome)
	assert.Equal(t, leaddomain.StatusAgendado, lead.Status)
}

func TestCreateRejectsMissingLead(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), validCreateRequest(svc, ""))
	assert.ErrorIs(t, err, meetingdomain.ErrInvalidLead)
}

func TestCreateConflictSameVendedor(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	req := validCreateRequest(svc, lead.ID.String())
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	overlap := req
	overlap.DataAgendamento = "2024-01-10T14:30:00Z"
	_, err = svc.Create(context.Background(), overlap)
	assert.ErrorIs(t, err, meetingdomain.ErrConflitoAgenda)
}

func TestCreateNoConflictOtherVendedor(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	req := validCreateRequest(svc, lead.ID.String())
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	other := validCreateRequest(svc, lead.ID.String())
	other.DataAgendamento = req.DataAgendamento
	_, err = svc.Create(context.Background(), other)
	assert.NoError(t, err)
}

func TestCreateNoConflictAfterCancel(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	req := validCreateRequest(svc, lead.ID.String())
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)

	again := req
	again.DataAgendamento = "2024-01-10T14:30:00Z"
	_, err = svc.Create(context.Background(), again)
	assert.NoError(t, err)
}

func TestCreateBlockedBySpecialEvent(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	event := meetingdomain.SpecialEvent{
		ID:                  svc.genID.Generate(),
		Titulo:              "Convenção anual",
		DataInicio:          time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DataFim:             time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		BloqueiaAgendamento: true,
		CreatedAt:           svc.clock.Now(),
		UpdatedAt:           svc.clock.Now(),
	}
	require.NoError(t, db.Create(&event).Error)

	_, err := svc.Create(context.Background(), validCreateRequest(svc, lead.ID.String()))
	assert.ErrorIs(t, err, meetingdomain.ErrEventoBloqueado)
}

func TestCreateAllowedByNonBlockingEvent(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	event := meetingdomain.SpecialEvent{
		ID:         svc.genID.Generate(),
		Titulo:     "Aviso interno",
		DataInicio: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		DataFim:    time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
		CreatedAt:  svc.clock.Now(),
		UpdatedAt:  svc.clock.Now(),
	}
	require.NoError(t, db.Create(&event).Error)

	_, err := svc.Create(context.Background(), validCreateRequest(svc, lead.ID.String()))
	assert.NoError(t, err)
}

func TestRecordOutcomeSetsDataResultado(t *testing.T) {
	svc, db, clk := newTestService(t)
	lead := seedLead(t, svc, db)

	created, err := svc.Create(context.Background(), validCreateRequest(svc, lead.ID.String()))
	require.NoError(t, err)

	clk.Advance(48 * time.Hour)

	resp, err := svc.RecordOutcome(context.Background(), created.ID, meetingdomain.OutcomeRequest{
		ResultadoReuniao: "comprou",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ResultadoReuniao)
	assert.Equal(t, meetingdomain.ResultadoComprou, *resp.ResultadoReuniao)
	require.NotNil(t, resp.DataResultado)
	assert.Equal(t, clk.Now(), *resp.DataResultado)

	updated, err := svc.leadRepo.FindByID(context.Background(), db, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, leaddomain.StatusConvertido, updated.Status)
}

func TestRecordOutcomeAcceptsLegacyRealizada(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	created, err := svc.Create(context.Background(), validCreateRequest(svc, lead.ID.String()))
	require.NoError(t, err)

	resp, err := svc.RecordOutcome(context.Background(), created.ID, meetingdomain.OutcomeRequest{
		ResultadoReuniao: "Realizada",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ResultadoReuniao)
	assert.Equal(t, "realizada", *resp.ResultadoReuniao)
}

func TestRecordOutcomeRejectsUnknown(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	created, err := svc.Create(context.Background(), validCreateRequest(svc, lead.ID.String()))
	require.NoError(t, err)

	_, err = svc.RecordOutcome(context.Background(), created.ID, meetingdomain.OutcomeRequest{
		ResultadoReuniao: "talvez",
	})
	assert.ErrorIs(t, err, meetingdomain.ErrInvalidResultado)
}

func TestCancelTwiceFails(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	created, err := svc.Create(context.Background(), validCreateRequest(svc, lead.ID.String()))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	assert.ErrorIs(t, err, meetingdomain.ErrAlreadyCancelled)
}

func TestGetNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), svc.genID.Generate().String())
	assert.ErrorIs(t, err, meetingdomain.ErrNotFound)
}

func TestListFiltersByStatusAndWindow(t *testing.T) {
	svc, db, _ := newTestService(t)
	lead := seedLead(t, svc, db)

	first := validCreateRequest(svc, lead.ID.String())
	created, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	second := validCreateRequest(svc, lead.ID.String())
	second.DataAgendamento = "2024-01-12T10:00:00Z"
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)

	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)
	items, err := svc.List(context.Background(), meetingdomain.ListFilter{
		Status: []string{meetingdomain.StatusAgendado},
		From:   &from,
		To:     &to,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.WithinDuration(t, time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC), items[0].DataAgendamento, time.Second)
}
