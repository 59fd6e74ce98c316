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
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	meetingrepository "github.com/vendaflow/vendaflow/internal/meeting/repository"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
	salerepository "github.com/vendaflow/vendaflow/internal/sale/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&saledomain.Sale{},
		&saledomain.Student{},
		&meetingdomain.Meeting{},
	))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		Clock:       clk,
		GenID:       node,
		Repo:        salerepository.Provide(),
		Students:    salerepository.ProvideStudents(),
		MeetingRepo: meetingrepository.Provide(),
	}).(*Service)

	return svc, db, clk
}

func TestCreateStartsPending(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID:        svc.genID.Generate().String(),
		PontuacaoEsperada: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, saledomain.StatusPendente, resp.Status)
	assert.Equal(t, 10.0, resp.PontuacaoEsperada)
	assert.Nil(t, resp.DataAprovacao)
}

func TestCreateWithStudentAndMeetingLink(t *testing.T) {
	svc, db, clk := newTestService(t)

	vendedorID := svc.genID.Generate()
	meeting := &meetingdomain.Meeting{
		ID:                    svc.genID.Generate(),
		LeadID:                svc.genID.Generate(),
		VendedorID:            vendedorID,
		PosGraduacaoInteresse: "Direito Digital",
		DataAgendamento:       clk.Now(),
		DataFimAgendamento:    clk.Now().Add(time.Hour),
		LinkReuniao:           "https://meet.example.com/x",
		Status:                meetingdomain.StatusAgendado,
		CreatedAt:             clk.Now(),
		UpdatedAt:             clk.Now(),
	}
	require.NoError(t, svc.meetingRepo.Insert(context.Background(), db, meeting))

	telefone := "11999990000"
	resp, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID:        vendedorID.String(),
		AgendamentoID:     meeting.ID.String(),
		PontuacaoEsperada: 8,
		Aluno:             &saledomain.AlunoDados{Nome: "Ana Lima", Telefone: &telefone},
	})
	require.NoError(t, err)

	saleID, err := snowflake.ParseString(resp.ID)
	require.NoError(t, err)

	student, err := svc.students.FindByFormEntry(context.Background(), db, saleID)
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, "Ana Lima", student.Nome)

	linked, err := svc.meetingRepo.FindByID(context.Background(), db, meeting.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.FormEntryID)
	assert.Equal(t, saleID, *linked.FormEntryID)
}

func TestCreateRejectsUnknownMeeting(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID:    svc.genID.Generate().String(),
		AgendamentoID: svc.genID.Generate().String(),
	})
	assert.ErrorIs(t, err, saledomain.ErrMeetingNotFound)
}

func TestApproveSetsValidatedPoints(t *testing.T) {
	svc, _, clk := newTestService(t)

	created, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID:        svc.genID.Generate().String(),
		PontuacaoEsperada: 10,
	})
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)

	validada := 7.5
	resp, err := svc.Approve(context.Background(), created.ID, saledomain.ApproveRequest{
		PontuacaoValidada: &validada,
	})
	require.NoError(t, err)
	assert.Equal(t, saledomain.StatusMatriculado, resp.Status)
	require.NotNil(t, resp.DataAprovacao)
	assert.Equal(t, clk.Now(), *resp.DataAprovacao)
	require.NotNil(t, resp.PontuacaoValidada)
	assert.Equal(t, 7.5, *resp.PontuacaoValidada)
}

func TestApproveDefaultsToExpectedPoints(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID:        svc.genID.Generate().String(),
		PontuacaoEsperada: 10,
	})
	require.NoError(t, err)

	resp, err := svc.Approve(context.Background(), created.ID, saledomain.ApproveRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.PontuacaoValidada)
	assert.Equal(t, 10.0, *resp.PontuacaoValidada)
}

func TestApproveTwiceFails(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID: svc.genID.Generate().String(),
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, saledomain.ApproveRequest{})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, saledomain.ApproveRequest{})
	assert.ErrorIs(t, err, saledomain.ErrAlreadyReviewed)
}

func TestRejectMarksDesistiu(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID: svc.genID.Generate().String(),
	})
	require.NoError(t, err)

	resp, err := svc.Reject(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, saledomain.StatusDesistiu, resp.Status)
}

func TestListByPeriodUsesEffectiveConversionDate(t *testing.T) {
	svc, _, clk := newTestService(t)

	// Signed inside the window, approved outside it: signature date wins.
	signed, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID:             svc.genID.Generate().String(),
		DataAssinaturaContrato: "2024-01-04T10:00:00Z",
	})
	require.NoError(t, err)

	clk.Set(time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC))
	_, err = svc.Approve(context.Background(), signed.ID, saledomain.ApproveRequest{})
	require.NoError(t, err)

	// Approved inside the window, no signature.
	clk.Set(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC))
	approved, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID: svc.genID.Generate().String(),
	})
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), approved.ID, saledomain.ApproveRequest{})
	require.NoError(t, err)

	// Still pending, never listed.
	_, err = svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID: svc.genID.Generate().String(),
	})
	require.NoError(t, err)

	from := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 9, 23, 59, 59, 999000000, time.UTC)
	items, err := svc.ListByPeriod(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestListEnrolledOnlyReturnsEnrolledStudents(t *testing.T) {
	svc, db, _ := newTestService(t)

	telefone := "11999990000"
	approvedSale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID: svc.genID.Generate().String(),
		Aluno:      &saledomain.AlunoDados{Nome: "Ana Lima", Telefone: &telefone},
	})
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), approvedSale.ID, saledomain.ApproveRequest{})
	require.NoError(t, err)

	pendingSale, err := svc.Create(context.Background(), saledomain.CreateRequest{
		VendedorID: svc.genID.Generate().String(),
		Aluno:      &saledomain.AlunoDados{Nome: "Bruno Costa"},
	})
	require.NoError(t, err)

	students, err := svc.students.ListEnrolled(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Ana Lima", students[0].Nome)

	approvedID, err := snowflake.ParseString(approvedSale.ID)
	require.NoError(t, err)
	pendingID, err := snowflake.ParseString(pendingSale.ID)
	require.NoError(t, err)

	both, err := svc.repo.ListByIDs(context.Background(), db, []snowflake.ID{approvedID, pendingID})
	require.NoError(t, err)
	require.Len(t, both, 2)
}

func TestEffectiveConversionDatePrecedence(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	aprovacao := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assinatura := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	sale := saledomain.Sale{CreatedAt: created}
	assert.Equal(t, created, sale.EffectiveConversionDate())

	sale.DataAprovacao = &aprovacao
	assert.Equal(t, aprovacao, sale.EffectiveConversionDate())

	sale.DataAssinaturaContrato = &assinatura
	assert.Equal(t, assinatura, sale.EffectiveConversionDate())
}
