package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, meeting *Meeting) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Meeting, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Meeting, error)
	// ListActiveByVendedorWindow returns non-cancelled meetings of the
	// salesperson whose start falls inside [from, to].
	ListActiveByVendedorWindow(ctx context.Context, db *gorm.DB, vendedorID snowflake.ID, from, to time.Time) ([]Meeting, error)
	UpdateOutcome(ctx context.Context, db *gorm.DB, id snowflake.ID, resultado string, at time.Time) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status string) error
	LinkFormEntry(ctx context.Context, db *gorm.DB, id, formEntryID snowflake.ID) error
}

type SpecialEventRepository interface {
	// ListBlockingOverlaps returns blocking special events overlapping [from, to].
	ListBlockingOverlaps(ctx context.Context, db *gorm.DB, from, to time.Time) ([]SpecialEvent, error)
}
