package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/sumeeth742/university/internal/model"
)

// ── Mock AccountRepository ──

type mockAccountRepo struct {
	accounts map[string]*model.Account // keyed by username
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	if account.AccountID == "" {
		account.AccountID = "acc-" + account.Username
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *mockAccountRepo) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	if a, ok := m.accounts[username]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) Update(_ context.Context, account *model.Account) error {
	m.accounts[account.Username] = account
	return nil
}

func (m *mockAccountRepo) ListStudents(_ context.Context) ([]model.Account, error) {
	var result []model.Account
	for _, a := range m.accounts {
		if a.Role == model.RoleStudent {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAccountRepo) FindStudentsByNameOrUSN(_ context.Context, name, usn string) ([]model.Account, error) {
	var result []model.Account
	for _, a := range m.accounts {
		if a.Role != model.RoleStudent {
			continue
		}
		if a.Name == name || a.Username == usn {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAccountRepo) Delete(_ context.Context, accountID string) error {
	for username, a := range m.accounts {
		if a.AccountID == accountID {
			delete(m.accounts, username)
			return nil
		}
	}
	return nil
}

// ── Mock ResultRepository ──

type mockResultRepo struct {
	records []*model.ResultRecord
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{}
}

func (m *mockResultRepo) Create(_ context.Context, record *model.ResultRecord) error {
	if record.ResultID == "" {
		record.ResultID = "res-" + record.StudentUSN + "-" + record.Semester
	}
	clone := *record
	m.records = append(m.records, &clone)
	return nil
}

func (m *mockResultRepo) ListByStudent(_ context.Context, usn string) ([]model.ResultRecord, error) {
	var result []model.ResultRecord
	for _, r := range m.records {
		if r.StudentUSN == usn {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockResultRepo) deleteWhere(match func(*model.ResultRecord) bool) int64 {
	var kept []*model.ResultRecord
	var deleted int64
	for _, r := range m.records {
		if match(r) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted
}

func (m *mockResultRepo) DeleteByStudentAndSemester(_ context.Context, usn, semester string) (int64, error) {
	return m.deleteWhere(func(r *model.ResultRecord) bool {
		return r.StudentUSN == usn && r.Semester == semester
	}), nil
}

func (m *mockResultRepo) DeleteBySemester(_ context.Context, semester string) (int64, error) {
	return m.deleteWhere(func(r *model.ResultRecord) bool {
		return r.Semester == semester
	}), nil
}

func (m *mockResultRepo) DeleteByStudent(_ context.Context, usn string) (int64, error) {
	return m.deleteWhere(func(r *model.ResultRecord) bool {
		return r.StudentUSN == usn
	}), nil
}
