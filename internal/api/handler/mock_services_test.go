package handler

import (
	"context"
	"io"
	"time"

	"github.com/sumeeth742/university/internal/dto"
	"github.com/sumeeth742/university/internal/service"
)

// ── mock auth service ──

type mockAuthService struct {
	loginFn        func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	logoutFn       func(ctx context.Context, jti string, expiresAt time.Time) error
	listStudentsFn func(ctx context.Context) ([]dto.StudentResponse, error)
}

func (m *mockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if m.logoutFn == nil {
		return nil
	}
	return m.logoutFn(ctx, jti, expiresAt)
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context) error { return nil }

func (m *mockAuthService) ListStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	return m.listStudentsFn(ctx)
}

// ── mock result service ──

type mockResultService struct {
	bulkIngestFn    func(ctx context.Context, rows []dto.IngestRow) (*dto.IngestReport, error)
	parseWorkbookFn func(reader io.Reader) ([]dto.IngestRow, error)
	getResultsFn    func(ctx context.Context, usn string) ([]dto.ResultResponse, error)
	smartDeleteFn   func(ctx context.Context, query string) (*service.DeleteOutcome, error)
}

func (m *mockResultService) BulkIngest(ctx context.Context, rows []dto.IngestRow) (*dto.IngestReport, error) {
	return m.bulkIngestFn(ctx, rows)
}

func (m *mockResultService) ParseWorkbook(reader io.Reader) ([]dto.IngestRow, error) {
	return m.parseWorkbookFn(reader)
}

func (m *mockResultService) GetResults(ctx context.Context, usn string) ([]dto.ResultResponse, error) {
	return m.getResultsFn(ctx, usn)
}

func (m *mockResultService) SmartDelete(ctx context.Context, query string) (*service.DeleteOutcome, error) {
	return m.smartDeleteFn(ctx, query)
}
