package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	goaldomain "github.com/vendaflow/vendaflow/internal/goal/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() goaldomain.Repository {
	return &repo{}
}

func (r *repo) UpsertWeekly(ctx context.Context, db *gorm.DB, goal *goaldomain.WeeklyGoal) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO metas_semanais (id, user_id, ano, semana, meta_pontos, variavel_semanal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, ano, semana) DO UPDATE SET
		   meta_pontos = excluded.meta_pontos,
		   variavel_semanal = excluded.variavel_semanal,
		   updated_at = excluded.updated_at`,
		goal.ID,
		goal.UserID,
		goal.Ano,
		goal.Semana,
		goal.MetaPontos,
		goal.VariavelSemanal,
		goal.CreatedAt,
		goal.UpdatedAt,
	).Error
}

func (r *repo) FindWeekly(ctx context.Context, db *gorm.DB, userID snowflake.ID, ano, semana int) (*goaldomain.WeeklyGoal, error) {
	var goal goaldomain.WeeklyGoal
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, ano, semana, meta_pontos, variavel_semanal, created_at, updated_at
		 FROM metas_semanais
		 WHERE user_id = ? AND ano = ? AND semana = ?`,
		userID,
		ano,
		semana,
	).Scan(&goal).Error
	if err != nil {
		return nil, err
	}
	if goal.ID == 0 {
		return nil, nil
	}
	return &goal, nil
}

func (r *repo) ListWeekly(ctx context.Context, db *gorm.DB, ano, semana int) ([]goaldomain.WeeklyGoal, error) {
	var items []goaldomain.WeeklyGoal
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, ano, semana, meta_pontos, variavel_semanal, created_at, updated_at
		 FROM metas_semanais
		 WHERE ano = ? AND semana = ?
		 ORDER BY user_id ASC`,
		ano,
		semana,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpsertMonthly(ctx context.Context, db *gorm.DB, goal *goaldomain.MonthlyGoal) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO metas_mensais (id, user_id, ano, mes, meta_reunioes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, ano, mes) DO UPDATE SET
		   meta_reunioes = excluded.meta_reunioes,
		   updated_at = excluded.updated_at`,
		goal.ID,
		goal.UserID,
		goal.Ano,
		goal.Mes,
		goal.MetaReunioes,
		goal.CreatedAt,
		goal.UpdatedAt,
	).Error
}

func (r *repo) FindMonthly(ctx context.Context, db *gorm.DB, userID snowflake.ID, ano, mes int) (*goaldomain.MonthlyGoal, error) {
	var goal goaldomain.MonthlyGoal
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, ano, mes, meta_reunioes, created_at, updated_at
		 FROM metas_mensais
		 WHERE user_id = ? AND ano = ? AND mes = ?`,
		userID,
		ano,
		mes,
	).Scan(&goal).Error
	if err != nil {
		return nil, err
	}
	if goal.ID == 0 {
		return nil, nil
	}
	return &goal, nil
}
