package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Sale, error)
	// ListByIDs returns the sales with the given IDs, any status.
	ListByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]Sale, error)
	// ListMatriculadosByPeriod returns enrolled sales whose effective
	// conversion date falls inside [from, to].
	ListMatriculadosByPeriod(ctx context.Context, db *gorm.DB, from, to time.Time) ([]Sale, error)
	UpdateReview(ctx context.Context, db *gorm.DB, id snowflake.ID, status string, aprovadaEm *time.Time, pontuacaoValidada *float64) error
}

type StudentRepository interface {
	Insert(ctx context.Context, db *gorm.DB, student *Student) error
	FindByFormEntry(ctx context.Context, db *gorm.DB, formEntryID snowflake.ID) (*Student, error)
	// ListEnrolled returns students whose form entry is matriculado.
	ListEnrolled(ctx context.Context, db *gorm.DB) ([]Student, error)
}
