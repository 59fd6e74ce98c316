package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	leaddomain "github.com/vendaflow/vendaflow/internal/lead/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() leaddomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, lead *leaddomain.Lead) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO leads (id, nome, whatsapp, email, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.ID,
		lead.Nome,
		lead.Whatsapp,
		lead.Email,
		lead.Status,
		lead.CreatedAt,
		lead.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*leaddomain.Lead, error) {
	var lead leaddomain.Lead
	err := db.WithContext(ctx).Raw(
		`SELECT id, nome, whatsapp, email, status, created_at, updated_at
		 FROM leads WHERE id = ?`,
		id,
	).Scan(&lead).Error
	if err != nil {
		return nil, err
	}
	if lead.ID == 0 {
		return nil, nil
	}
	return &lead, nil
}

func (r *repo) ListByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]leaddomain.Lead, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, int64(id))
	}

	var items []leaddomain.Lead
	err := db.WithContext(ctx).Raw(
		`SELECT id, nome, whatsapp, email, status, created_at, updated_at
		 FROM leads WHERE id = ANY(?)`,
		pq.Array(raw),
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE leads SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC(),
		id,
	).Error
}
