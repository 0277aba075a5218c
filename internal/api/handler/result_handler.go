package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sumeeth742/university/internal/dto"
	"github.com/sumeeth742/university/internal/grading"
	"github.com/sumeeth742/university/internal/model"
	"github.com/sumeeth742/university/internal/service"
	"github.com/sumeeth742/university/pkg/response"
)

// ResultHandler result ingestion, lookup and smart delete endpoints.
type ResultHandler struct {
	resultService service.ResultService
	logger        *zap.Logger
}

func NewResultHandler(resultService service.ResultService, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{resultService: resultService, logger: logger}
}

// GetResults GET /api/results/:usn
// Students may only read their own records; admins may read anyone's.
func (h *ResultHandler) GetResults(c *gin.Context) {
	usn := c.Param("usn")

	if currentRole(c) != model.RoleAdmin {
		if grading.NormalizeUSN(usn) != grading.NormalizeUSN(currentUsername(c)) {
			response.Forbidden(c, 10003, "you may only view your own results")
			return
		}
	}

	results, err := h.resultService.GetResults(c.Request.Context(), usn)
	if err != nil {
		h.logger.Error("get results failed", zap.String("usn", usn), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, results)
}

// BulkIngest POST /api/results/bulk
// The body is a JSON array of rows. Per-row failures land in the report
// with HTTP 200; only an unreachable store fails the request.
func (h *ResultHandler) BulkIngest(c *gin.Context) {
	var rows []dto.IngestRow
	if err := c.ShouldBindJSON(&rows); err != nil {
		response.BadRequest(c, 10001, "request body must be a JSON array of result rows")
		return
	}
	if len(rows) == 0 {
		response.BadRequest(c, 10001, "no rows to process")
		return
	}

	report, err := h.resultService.BulkIngest(c.Request.Context(), rows)
	if err != nil {
		h.logger.Error("bulk ingest failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// BulkIngestFile POST /api/results/bulk-file
// Accepts a multipart .xlsx marks sheet under the "file" field and runs
// the same per-row pipeline as the JSON endpoint.
func (h *ResultHandler) BulkIngestFile(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	rows, err := h.resultService.ParseWorkbook(file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkbookUnreadable),
			errors.Is(err, service.ErrWorkbookNoData),
			errors.Is(err, service.ErrWorkbookBadHeader),
			errors.Is(err, service.ErrWorkbookTooManyRows):
			response.BadRequest(c, 10001, err.Error())
		default:
			h.logger.Error("workbook parse failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	report, err := h.resultService.BulkIngest(c.Request.Context(), rows)
	if err != nil {
		h.logger.Error("bulk ingest failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// DeleteAny DELETE /api/results/delete-any
// The query is resolved against semesters first, then students. A query
// matching neither is a 404.
func (h *ResultHandler) DeleteAny(c *gin.Context) {
	var req dto.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "query is required")
		return
	}

	outcome, err := h.resultService.SmartDelete(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			response.BadRequest(c, 10001, service.ErrEmptyQuery.Error())
			return
		}
		h.logger.Error("smart delete failed", zap.String("query", req.Query), zap.Error(err))
		response.InternalError(c)
		return
	}

	switch outcome.Kind {
	case service.DeleteSemester:
		response.OK(c, dto.DeleteResponse{
			Message: fmt.Sprintf("Deleted %d result record(s) for semester %q.", outcome.Deleted, req.Query),
			Kind:    string(outcome.Kind),
			Deleted: outcome.Deleted,
		})
	case service.DeleteStudents:
		response.OK(c, dto.DeleteResponse{
			Message: fmt.Sprintf("Deleted %d student(s) and their results.", outcome.Deleted),
			Kind:    string(outcome.Kind),
			Deleted: outcome.Deleted,
		})
	default:
		response.NotFound(c, 10001, "no semester or student matched the query")
	}
}
