package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
	"gorm.io/gorm"
)

type studentRepo struct{}

func ProvideStudents() saledomain.StudentRepository {
	return &studentRepo{}
}

const studentColumns = `id, form_entry_id, nome, email, telefone, created_at, updated_at`

func (r *studentRepo) Insert(ctx context.Context, db *gorm.DB, student *saledomain.Student) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO alunos (`+studentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		student.ID,
		student.FormEntryID,
		student.Nome,
		student.Email,
		student.Telefone,
		student.CreatedAt,
		student.UpdatedAt,
	).Error
}

func (r *studentRepo) FindByFormEntry(ctx context.Context, db *gorm.DB, formEntryID snowflake.ID) (*saledomain.Student, error) {
	var student saledomain.Student
	err := db.WithContext(ctx).Raw(
		`SELECT `+studentColumns+` FROM alunos WHERE form_entry_id = ?`,
		formEntryID,
	).Scan(&student).Error
	if err != nil {
		return nil, err
	}
	if student.ID == 0 {
		return nil, nil
	}
	return &student, nil
}

func (r *studentRepo) ListEnrolled(ctx context.Context, db *gorm.DB) ([]saledomain.Student, error) {
	var items []saledomain.Student
	err := db.WithContext(ctx).Raw(
		`SELECT a.id, a.form_entry_id, a.nome, a.email, a.telefone, a.created_at, a.updated_at
		 FROM alunos a
		 JOIN form_entries f ON f.id = a.form_entry_id
		 WHERE f.status = ?
		 ORDER BY a.created_at ASC`,
		saledomain.StatusMatriculado,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
