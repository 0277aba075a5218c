package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumeeth742/university/internal/dto"
	"github.com/sumeeth742/university/internal/model"
	"github.com/sumeeth742/university/internal/service"
)

// identityAs injects the context values the JWT middleware would set.
func identityAs(username, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("username", username)
		c.Set("role", role)
	}
}

func newResultRouter(svc *mockResultService, username, role string) *gin.Engine {
	h := NewResultHandler(svc, zap.NewNop())
	r := gin.New()
	r.Use(identityAs(username, role))
	r.GET("/api/results/:usn", h.GetResults)
	r.POST("/api/results/bulk", h.BulkIngest)
	r.DELETE("/api/results/delete-any", h.DeleteAny)
	return r
}

func TestGetResultsSelf(t *testing.T) {
	svc := &mockResultService{
		getResultsFn: func(_ context.Context, usn string) ([]dto.ResultResponse, error) {
			return []dto.ResultResponse{{StudentID: "3BR23CS001", Semester: "Semester 1", GPA: "7.71"}}, nil
		},
	}
	r := newResultRouter(svc, "3BR23CS001", model.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/api/results/3BR23CS001", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGetResultsOtherStudentForbidden(t *testing.T) {
	svc := &mockResultService{
		getResultsFn: func(_ context.Context, _ string) ([]dto.ResultResponse, error) {
			t.Fatal("service must not be reached when the ownership check fails")
			return nil, nil
		},
	}
	r := newResultRouter(svc, "3BR23CS001", model.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/api/results/3BR23CS002", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestGetResultsAdminReadsAnyStudent(t *testing.T) {
	var gotUSN string
	svc := &mockResultService{
		getResultsFn: func(_ context.Context, usn string) ([]dto.ResultResponse, error) {
			gotUSN = usn
			return []dto.ResultResponse{}, nil
		},
	}
	r := newResultRouter(svc, "ADMIN", model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/results/3BR23CS002", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotUSN != "3BR23CS002" {
		t.Fatalf("usn = %q, want 3BR23CS002", gotUSN)
	}
}

func TestBulkIngestReturnsReportWithRowErrors(t *testing.T) {
	svc := &mockResultService{
		bulkIngestFn: func(_ context.Context, rows []dto.IngestRow) (*dto.IngestReport, error) {
			return &dto.IngestReport{
				Message:   "Processed 1/2 records.",
				Succeeded: 1,
				Total:     2,
				Errors:    []dto.IngestRowError{{USN: "BAD", Message: "invalid USN format"}},
			}, nil
		},
	}
	r := newResultRouter(svc, "ADMIN", model.RoleAdmin)

	body := `[{"usn":"3BR23CS001","semester":"Semester 1","subjects":[]},{"usn":"BAD","semester":"Semester 1","subjects":[]}]`
	req := httptest.NewRequest(http.MethodPost, "/api/results/bulk", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// row failures are reported, not escalated to an HTTP error
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	var report dto.IngestReport
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if report.Succeeded != 1 || len(report.Errors) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestBulkIngestRejectsNonArrayBody(t *testing.T) {
	svc := &mockResultService{
		bulkIngestFn: func(_ context.Context, _ []dto.IngestRow) (*dto.IngestReport, error) {
			t.Fatal("service must not be called on a bad payload")
			return nil, nil
		},
	}
	r := newResultRouter(svc, "ADMIN", model.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/results/bulk", strings.NewReader(`{"usn":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteAnySemesterOutcome(t *testing.T) {
	svc := &mockResultService{
		smartDeleteFn: func(_ context.Context, query string) (*service.DeleteOutcome, error) {
			if query != "Semester 1" {
				t.Fatalf("query = %q, want Semester 1", query)
			}
			return &service.DeleteOutcome{Kind: service.DeleteSemester, Deleted: 3}, nil
		},
	}
	r := newResultRouter(svc, "ADMIN", model.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/results/delete-any", strings.NewReader(`{"query":"Semester 1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	env := decodeEnvelope(t, w)
	var resp dto.DeleteResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Kind != "semester" || resp.Deleted != 3 {
		t.Fatalf("unexpected delete response: %+v", resp)
	}
}

func TestDeleteAnyNoMatchIs404(t *testing.T) {
	svc := &mockResultService{
		smartDeleteFn: func(_ context.Context, _ string) (*service.DeleteOutcome, error) {
			return &service.DeleteOutcome{Kind: service.DeleteNone}, nil
		},
	}
	r := newResultRouter(svc, "ADMIN", model.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/results/delete-any", strings.NewReader(`{"query":"Nobody"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteAnyEmptyQueryIs400(t *testing.T) {
	svc := &mockResultService{
		smartDeleteFn: func(_ context.Context, _ string) (*service.DeleteOutcome, error) {
			return nil, service.ErrEmptyQuery
		},
	}
	r := newResultRouter(svc, "ADMIN", model.RoleAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/results/delete-any", strings.NewReader(`{"query":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
