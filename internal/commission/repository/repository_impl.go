package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	commissiondomain "github.com/vendaflow/vendaflow/internal/commission/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() commissiondomain.Repository {
	return &repo{}
}

const tierColumns = `id, tipo_usuario, percentual_minimo, percentual_maximo, multiplicador, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, tier *commissiondomain.CommissionTier) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO niveis_comissao (`+tierColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tier.ID,
		tier.TipoUsuario,
		tier.PercentualMinimo,
		tier.PercentualMaximo,
		tier.Multiplicador,
		tier.CreatedAt,
		tier.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*commissiondomain.CommissionTier, error) {
	var tier commissiondomain.CommissionTier
	err := db.WithContext(ctx).Raw(
		`SELECT `+tierColumns+` FROM niveis_comissao WHERE id = ?`,
		id,
	).Scan(&tier).Error
	if err != nil {
		return nil, err
	}
	if tier.ID == 0 {
		return nil, nil
	}
	return &tier, nil
}

func (r *repo) ListByTipoUsuario(ctx context.Context, db *gorm.DB, tipoUsuario string) ([]commissiondomain.CommissionTier, error) {
	var items []commissiondomain.CommissionTier
	err := db.WithContext(ctx).Raw(
		`SELECT `+tierColumns+` FROM niveis_comissao
		 WHERE tipo_usuario = ?
		 ORDER BY percentual_minimo DESC`,
		tipoUsuario,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tier *commissiondomain.CommissionTier) error {
	return db.WithContext(ctx).Exec(
		`UPDATE niveis_comissao
		 SET tipo_usuario = ?, percentual_minimo = ?, percentual_maximo = ?, multiplicador = ?, updated_at = ?
		 WHERE id = ?`,
		tier.TipoUsuario,
		tier.PercentualMinimo,
		tier.PercentualMaximo,
		tier.Multiplicador,
		time.Now().UTC(),
		tier.ID,
	).Error
}
