package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() saledomain.Repository {
	return &repo{}
}

const saleColumns = `id, vendedor_id, sdr_id, curso_id, status, data_assinatura_contrato,
	data_aprovacao, pontuacao_esperada, pontuacao_validada, metadata, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *saledomain.Sale) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO form_entries (`+saleColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.VendedorID,
		sale.SDRID,
		sale.CursoID,
		sale.Status,
		sale.DataAssinaturaContrato,
		sale.DataAprovacao,
		sale.PontuacaoEsperada,
		sale.PontuacaoValidada,
		sale.Metadata,
		sale.CreatedAt,
		sale.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*saledomain.Sale, error) {
	var sale saledomain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT `+saleColumns+` FROM form_entries WHERE id = ?`,
		id,
	).Scan(&sale).Error
	if err != nil {
		return nil, err
	}
	if sale.ID == 0 {
		return nil, nil
	}
	return &sale, nil
}

func (r *repo) ListByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) ([]saledomain.Sale, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var items []saledomain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT `+saleColumns+` FROM form_entries WHERE id IN (?) ORDER BY created_at ASC`,
		ids,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListMatriculadosByPeriod(ctx context.Context, db *gorm.DB, from, to time.Time) ([]saledomain.Sale, error) {
	var items []saledomain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT `+saleColumns+` FROM form_entries
		 WHERE status = ?
		   AND COALESCE(data_assinatura_contrato, data_aprovacao, created_at) >= ?
		   AND COALESCE(data_assinatura_contrato, data_aprovacao, created_at) <= ?
		 ORDER BY created_at ASC`,
		saledomain.StatusMatriculado,
		from,
		to,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateReview(ctx context.Context, db *gorm.DB, id snowflake.ID, status string, aprovadaEm *time.Time, pontuacaoValidada *float64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE form_entries
		 SET status = ?, data_aprovacao = ?, pontuacao_validada = ?, updated_at = ?
		 WHERE id = ?`,
		status,
		aprovadaEm,
		pontuacaoValidada,
		time.Now().UTC(),
		id,
	).Error
}
