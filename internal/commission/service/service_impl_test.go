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
	commissiondomain "github.com/vendaflow/vendaflow/internal/commission/domain"
	commissionrepository "github.com/vendaflow/vendaflow/internal/commission/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&commissiondomain.CommissionTier{}))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clk,
		GenID: node,
		Repo:  commissionrepository.Provide(),
	}).(*Service)

	return svc, clk
}

func seedStandardTiers(t *testing.T, svc *Service) {
	t.Helper()
	for _, req := range []commissiondomain.TierRequest{
		{TipoUsuario: "vendedor", PercentualMinimo: 0, PercentualMaximo: 59, Multiplicador: 0},
		{TipoUsuario: "vendedor", PercentualMinimo: 60, PercentualMaximo: 84, Multiplicador: 1},
		{TipoUsuario: "vendedor", PercentualMinimo: 85, PercentualMaximo: 999, Multiplicador: 1.5},
	} {
		_, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
	}
}

func TestComputeUsesConfiguredTiers(t *testing.T) {
	svc, _ := newTestService(t)
	seedStandardTiers(t, svc)

	result, err := svc.Compute(context.Background(), commissiondomain.ComputeRequest{
		TipoUsuario:     "vendedor",
		Pontos:          84.9,
		MetaPontos:      100,
		VariavelSemanal: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Multiplier)
	assert.Equal(t, 1000.0, result.Payout)
}

func TestComputeFallsBackWhenRoleUnconfigured(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.Compute(context.Background(), commissiondomain.ComputeRequest{
		TipoUsuario:     "sdr",
		Pontos:          90,
		MetaPontos:      100,
		VariavelSemanal: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, result.Multiplier)
	assert.Equal(t, 1200.0, result.Payout)
}

func TestComputeZeroGoal(t *testing.T) {
	svc, _ := newTestService(t)
	seedStandardTiers(t, svc)

	result, err := svc.Compute(context.Background(), commissiondomain.ComputeRequest{
		TipoUsuario:     "vendedor",
		Pontos:          50,
		MetaPontos:      0,
		VariavelSemanal: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Multiplier)
	assert.Equal(t, 0.0, result.Payout)
}

func TestComputeMemoizesUntilTierEdit(t *testing.T) {
	svc, _ := newTestService(t)
	seedStandardTiers(t, svc)

	req := commissiondomain.ComputeRequest{
		TipoUsuario:     "vendedor",
		Pontos:          90,
		MetaPontos:      100,
		VariavelSemanal: 1000,
	}
	first, err := svc.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1.5, first.Multiplier)
	assert.Equal(t, 1, svc.results.Len())

	tiers, err := svc.List(context.Background(), "vendedor")
	require.NoError(t, err)
	top := tiers[0]
	_, err = svc.Update(context.Background(), top.ID.String(), commissiondomain.TierRequest{
		TipoUsuario:      "vendedor",
		PercentualMinimo: top.PercentualMinimo,
		PercentualMaximo: top.PercentualMaximo,
		Multiplicador:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, svc.results.Len(), "tier edit must flush memoized results")

	second, err := svc.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2.0, second.Multiplier)
}

func TestComputeCacheExpires(t *testing.T) {
	svc, clk := newTestService(t)
	seedStandardTiers(t, svc)

	req := commissiondomain.ComputeRequest{
		TipoUsuario:     "vendedor",
		Pontos:          90,
		MetaPontos:      100,
		VariavelSemanal: 1000,
	}
	_, err := svc.Compute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, svc.results.Len())

	clk.Advance(7 * time.Hour)
	_, ok := svc.results.Get("vendedor|90|100|1000")
	assert.False(t, ok)
}

func TestCreateRejectsBadRange(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), commissiondomain.TierRequest{
		TipoUsuario:      "vendedor",
		PercentualMinimo: 80,
		PercentualMaximo: 60,
		Multiplicador:    1,
	})
	assert.ErrorIs(t, err, commissiondomain.ErrInvalidFaixa)
}

func TestUpdateUnknownTier(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), snowflake.ID(12345).String(), commissiondomain.TierRequest{
		TipoUsuario:      "vendedor",
		PercentualMinimo: 0,
		PercentualMaximo: 999,
		Multiplicador:    1,
	})
	assert.ErrorIs(t, err, commissiondomain.ErrNotFound)
}
