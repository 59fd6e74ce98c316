package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	UpsertWeekly(ctx context.Context, db *gorm.DB, goal *WeeklyGoal) error
	FindWeekly(ctx context.Context, db *gorm.DB, userID snowflake.ID, ano, semana int) (*WeeklyGoal, error)
	ListWeekly(ctx context.Context, db *gorm.DB, ano, semana int) ([]WeeklyGoal, error)
	UpsertMonthly(ctx context.Context, db *gorm.DB, goal *MonthlyGoal) error
	FindMonthly(ctx context.Context, db *gorm.DB, userID snowflake.ID, ano, mes int) (*MonthlyGoal, error)
}
