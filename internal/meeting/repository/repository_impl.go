package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() meetingdomain.Repository {
	return &repo{}
}

const meetingColumns = `id, lead_id, vendedor_id, sdr_id, pos_graduacao_interesse,
	data_agendamento, data_fim_agendamento, data_resultado, resultado_reuniao,
	form_entry_id, link_reuniao, status, metadata, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, meeting *meetingdomain.Meeting) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO agendamentos (`+meetingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meeting.ID,
		meeting.LeadID,
		meeting.VendedorID,
		meeting.SDRID,
		meeting.PosGraduacaoInteresse,
		meeting.DataAgendamento,
		meeting.DataFimAgendamento,
		meeting.DataResultado,
		meeting.ResultadoReuniao,
		meeting.FormEntryID,
		meeting.LinkReuniao,
		meeting.Status,
		meeting.Metadata,
		meeting.CreatedAt,
		meeting.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*meetingdomain.Meeting, error) {
	var meeting meetingdomain.Meeting
	err := db.WithContext(ctx).Raw(
		`SELECT `+meetingColumns+` FROM agendamentos WHERE id = ?`,
		id,
	).Scan(&meeting).Error
	if err != nil {
		return nil, err
	}
	if meeting.ID == 0 {
		return nil, nil
	}
	return &meeting, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter meetingdomain.ListFilter) ([]meetingdomain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM agendamentos WHERE 1=1`
	args := make([]any, 0, 8)

	statuses := make([]string, 0, len(filter.Status))
	for _, status := range filter.Status {
		if trimmed := strings.TrimSpace(status); trimmed != "" {
			statuses = append(statuses, trimmed)
		}
	}
	if len(statuses) > 0 {
		query += ` AND status IN (?)`
		args = append(args, statuses)
	}
	if filter.From != nil {
		query += ` AND data_agendamento >= ?`
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += ` AND data_agendamento <= ?`
		args = append(args, *filter.To)
	}
	if filter.VendedorID != nil {
		query += ` AND vendedor_id = ?`
		args = append(args, *filter.VendedorID)
	}
	if filter.SDRID != nil {
		query += ` AND sdr_id = ?`
		args = append(args, *filter.SDRID)
	}

	query += ` ORDER BY data_agendamento ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	var items []meetingdomain.Meeting
	err := db.WithContext(ctx).Raw(query, args...).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListActiveByVendedorWindow(ctx context.Context, db *gorm.DB, vendedorID snowflake.ID, from, to time.Time) ([]meetingdomain.Meeting, error) {
	var items []meetingdomain.Meeting
	err := db.WithContext(ctx).Raw(
		`SELECT `+meetingColumns+` FROM agendamentos
		 WHERE vendedor_id = ?
		   AND status <> ?
		   AND data_agendamento >= ?
		   AND data_agendamento <= ?`,
		vendedorID,
		meetingdomain.StatusCancelado,
		from,
		to,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) UpdateOutcome(ctx context.Context, db *gorm.DB, id snowflake.ID, resultado string, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE agendamentos
		 SET resultado_reuniao = ?, data_resultado = ?, updated_at = ?
		 WHERE id = ?`,
		resultado,
		at,
		at,
		id,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE agendamentos SET status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) LinkFormEntry(ctx context.Context, db *gorm.DB, id, formEntryID snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE agendamentos SET form_entry_id = ?, updated_at = ? WHERE id = ?`,
		formEntryID,
		time.Now().UTC(),
		id,
	).Error
}
