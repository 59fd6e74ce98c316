package repository

import (
	"context"
	"time"

	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	"gorm.io/gorm"
)

type specialEventRepo struct{}

func ProvideSpecialEvents() meetingdomain.SpecialEventRepository {
	return &specialEventRepo{}
}

func (r *specialEventRepo) ListBlockingOverlaps(ctx context.Context, db *gorm.DB, from, to time.Time) ([]meetingdomain.SpecialEvent, error) {
	var items []meetingdomain.SpecialEvent
	err := db.WithContext(ctx).Raw(
		`SELECT id, titulo, data_inicio, data_fim, bloqueia_agendamento, created_at, updated_at
		 FROM eventos_especiais
		 WHERE bloqueia_agendamento = ?
		   AND data_inicio < ?
		   AND data_fim > ?`,
		true,
		to,
		from,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
