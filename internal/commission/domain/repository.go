package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tier *CommissionTier) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CommissionTier, error)
	ListByTipoUsuario(ctx context.Context, db *gorm.DB, tipoUsuario string) ([]CommissionTier, error)
	Update(ctx context.Context, db *gorm.DB, tier *CommissionTier) error
}
