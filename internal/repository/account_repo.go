package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sumeeth742/university/internal/model"
)

// AccountRepository data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	ListStudents(ctx context.Context) ([]model.Account, error)
	// FindStudentsByNameOrUSN returns every student whose display name
	// equals name verbatim or whose username equals usn. Name collisions
	// can return more than one account.
	FindStudentsByNameOrUSN(ctx context.Context, name, usn string) ([]model.Account, error)
	Delete(ctx context.Context, accountID string) error
}

// accountRepo GORM implementation of AccountRepository.
type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepo creates an AccountRepository.
func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepo) ListStudents(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleStudent).
		Order("username ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepo) FindStudentsByNameOrUSN(ctx context.Context, name, usn string) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).
		Where("role = ?", model.RoleStudent).
		Where(r.db.Where("name = ?", name).Or("username = ?", usn)).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepo) Delete(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.Account{}).Error
}
