package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sumeeth742/university/internal/model"
)

// ResultRepository data access for result records.
type ResultRepository interface {
	Create(ctx context.Context, record *model.ResultRecord) error
	ListByStudent(ctx context.Context, usn string) ([]model.ResultRecord, error)
	// DeleteByStudentAndSemester removes the existing record for one
	// (student, semester) pair ahead of re-insertion.
	DeleteByStudentAndSemester(ctx context.Context, usn, semester string) (int64, error)
	// DeleteBySemester removes every record carrying the exact semester
	// label and returns how many were removed.
	DeleteBySemester(ctx context.Context, semester string) (int64, error)
	// DeleteByStudent removes every record of one student (cascade step
	// of account deletion).
	DeleteByStudent(ctx context.Context, usn string) (int64, error)
}

// resultRepo GORM implementation of ResultRepository.
type resultRepo struct {
	db *gorm.DB
}

// NewResultRepo creates a ResultRepository.
func NewResultRepo(db *gorm.DB) ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) Create(ctx context.Context, record *model.ResultRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *resultRepo) ListByStudent(ctx context.Context, usn string) ([]model.ResultRecord, error) {
	var records []model.ResultRecord
	err := r.db.WithContext(ctx).
		Where("student_usn = ?", usn).
		Order("semester ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *resultRepo) DeleteByStudentAndSemester(ctx context.Context, usn, semester string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("student_usn = ? AND semester = ?", usn, semester).
		Delete(&model.ResultRecord{})
	return tx.RowsAffected, tx.Error
}

func (r *resultRepo) DeleteBySemester(ctx context.Context, semester string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("semester = ?", semester).
		Delete(&model.ResultRecord{})
	return tx.RowsAffected, tx.Error
}

func (r *resultRepo) DeleteByStudent(ctx context.Context, usn string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("student_usn = ?", usn).
		Delete(&model.ResultRecord{})
	return tx.RowsAffected, tx.Error
}
