package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sumeeth742/university/config"
	"github.com/sumeeth742/university/internal/dto"
	"github.com/sumeeth742/university/internal/grading"
	"github.com/sumeeth742/university/internal/metrics"
	"github.com/sumeeth742/university/internal/model"
	"github.com/sumeeth742/university/internal/repository"
)

// ── result errors ──

var (
	ErrEmptyQuery          = errors.New("query must not be empty")
	ErrWorkbookUnreadable  = errors.New("cannot parse the uploaded workbook")
	ErrWorkbookNoData      = errors.New("workbook has no data rows (first row is the header)")
	ErrWorkbookBadHeader   = errors.New("workbook header is missing required columns (usn/semester/subject/code/grade/credits)")
	ErrWorkbookTooManyRows = errors.New("workbook exceeds the row limit")
)

// maxWorkbookRows caps one uploaded marks sheet.
const maxWorkbookRows = 1000

// overwriteExistingAccounts is the account write policy of bulk ingest.
// First write wins: a re-upload must never clobber an account that
// already exists, because students may have corrected their own name by
// then and the stored DOB is their login credential.
const overwriteExistingAccounts = false

// ── smart delete outcome ──

// DeleteKind tags how a smart-delete query was interpreted.
type DeleteKind string

const (
	DeleteSemester DeleteKind = "semester"
	DeleteStudents DeleteKind = "student"
	DeleteNone     DeleteKind = "none"
)

// DeleteOutcome is the resolved result of one smart-delete query.
// Deleted counts result records for a semester match and accounts for a
// student match.
type DeleteOutcome struct {
	Kind    DeleteKind
	Deleted int64
}

// ResultService the reconciliation engine and query resolver.
type ResultService interface {
	// BulkIngest processes spreadsheet-derived rows one at a time. A bad
	// row is recorded in the report and never aborts the batch; only an
	// unreachable store fails the call.
	BulkIngest(ctx context.Context, rows []dto.IngestRow) (*dto.IngestReport, error)
	// ParseWorkbook turns an uploaded .xlsx marks sheet into ingest rows.
	ParseWorkbook(reader io.Reader) ([]dto.IngestRow, error)
	GetResults(ctx context.Context, usn string) ([]dto.ResultResponse, error)
	// SmartDelete disambiguates a free-text query, in priority order: an
	// exact semester label, then a student name or USN. Name and semester
	// matches are case-sensitive on the trimmed query; only the USN match
	// is normalized.
	SmartDelete(ctx context.Context, query string) (*DeleteOutcome, error)
}

type resultService struct {
	cfg       *config.Config
	repo      *repository.Repository
	collector *metrics.Collector
	logger    *zap.Logger
}

// NewResultService creates a ResultService.
func NewResultService(
	cfg *config.Config,
	repo *repository.Repository,
	collector *metrics.Collector,
	logger *zap.Logger,
) ResultService {
	return &resultService{
		cfg:       cfg,
		repo:      repo,
		collector: collector,
		logger:    logger,
	}
}

// ────────────────────── BulkIngest ──────────────────────

func (s *resultService) BulkIngest(ctx context.Context, rows []dto.IngestRow) (*dto.IngestReport, error) {
	report := &dto.IngestReport{Total: len(rows), Errors: []dto.IngestRowError{}}
	today := time.Now().UTC()

	reject := func(usn, message string) {
		report.Errors = append(report.Errors, dto.IngestRowError{USN: usn, Message: message})
		if s.collector != nil {
			s.collector.RecordRowRejected()
		}
	}

	for _, row := range rows {
		// rows with no identifier are skipped silently, not reported
		if strings.TrimSpace(row.USN) == "" {
			continue
		}

		usn := grading.NormalizeUSN(row.USN)

		// rule 1: identifier format, with the admin literal exempt
		if usn != s.cfg.Auth.AdminUsername && !grading.ValidUSN(usn) {
			reject(usn, fmt.Sprintf("invalid USN format: '%s'", row.USN))
			continue
		}

		// rule 2: date of birth, when supplied, must normalize and pass
		// the minimum-age policy
		cleanDOB := ""
		if row.DOB != "" {
			cleanDOB = grading.NormalizeDate(row.DOB)
			birth, err := grading.ParseISODate(cleanDOB)
			if err != nil {
				reject(usn, fmt.Sprintf("unusable date of birth: '%s'", row.DOB))
				continue
			}
			age := grading.Age(birth, today)
			if age < s.cfg.Policy.MinStudentAge {
				reject(usn, fmt.Sprintf("student too young (%d yrs), minimum %d", age, s.cfg.Policy.MinStudentAge))
				continue
			}
		}

		// rule 3: account reconciliation
		_, err := s.repo.Account.GetByUsername(ctx, usn)
		switch {
		case err == nil:
			// first write wins: the stored name, credential and derived
			// fields stay exactly as they are
			if overwriteExistingAccounts {
				s.logger.Warn("account overwrite policy enabled but not implemented")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if cleanDOB == "" {
				reject(usn, "new student requires a date of birth")
				continue
			}
			name := strings.TrimSpace(row.StudentName)
			if name == "" {
				name = "Unknown"
			}
			account := &model.Account{
				Username:   usn,
				Name:       name,
				Password:   cleanDOB,
				Role:       model.RoleStudent,
				Department: grading.DepartmentOf(usn),
				Batch:      grading.BatchOf(usn),
			}
			if err := s.repo.Account.Create(ctx, account); err != nil {
				s.logger.Error("account create failed", zap.String("usn", usn), zap.Error(err))
				return nil, err
			}
		default:
			// store unreachable: infrastructure fault fails the batch
			s.logger.Error("account lookup failed", zap.String("usn", usn), zap.Error(err))
			return nil, err
		}

		// rule 4: compute SGPA and replace the semester record wholesale,
		// keeping at most one record per (student, semester)
		subjects := make(model.SubjectList, 0, len(row.Subjects))
		graded := make([]grading.GradedSubject, 0, len(row.Subjects))
		for _, sub := range row.Subjects {
			subjects = append(subjects, model.Subject{
				Name:    sub.Name,
				Code:    sub.Code,
				Grade:   sub.Grade,
				Credits: float64(sub.Credits),
			})
			graded = append(graded, grading.GradedSubject{
				Grade:   sub.Grade,
				Credits: float64(sub.Credits),
			})
		}

		if _, err := s.repo.Result.DeleteByStudentAndSemester(ctx, usn, row.Semester); err != nil {
			s.logger.Error("result replace (delete) failed", zap.String("usn", usn), zap.Error(err))
			return nil, err
		}
		record := &model.ResultRecord{
			StudentUSN: usn,
			Semester:   row.Semester,
			GPA:        grading.SGPA(graded),
			Subjects:   subjects,
		}
		if err := s.repo.Result.Create(ctx, record); err != nil {
			s.logger.Error("result insert failed", zap.String("usn", usn), zap.Error(err))
			return nil, err
		}

		report.Succeeded++
		if s.collector != nil {
			s.collector.RecordRowIngested()
		}
	}

	report.Message = fmt.Sprintf("Processed %d/%d records.", report.Succeeded, report.Total)
	return report, nil
}

// ────────────────────── ParseWorkbook ──────────────────────

// workbookColumns are the required header names, matched
// case-insensitively. One sheet row describes one subject line; rows
// sharing (usn, semester) are grouped into one ingest row in first-seen
// order.
var workbookColumns = []string{"usn", "name", "dob", "semester", "subject", "code", "grade", "credits"}

func (s *resultService) ParseWorkbook(reader io.Reader) ([]dto.IngestRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	sheetRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	if len(sheetRows) < 2 {
		return nil, ErrWorkbookNoData
	}

	colIndex := parseWorkbookHeader(sheetRows[0])
	for _, col := range []string{"usn", "semester", "subject", "code", "grade", "credits"} {
		if colIndex[col] < 0 {
			return nil, ErrWorkbookBadHeader
		}
	}

	cellAt := func(row []string, col string) string {
		idx := colIndex[col]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var (
		order   []string
		grouped = make(map[string]*dto.IngestRow)
	)

	dataRows := 0
	for i := 1; i < len(sheetRows); i++ {
		row := sheetRows[i]

		usn := cellAt(row, "usn")
		semester := cellAt(row, "semester")
		subject := cellAt(row, "subject")
		if usn == "" && semester == "" && subject == "" {
			continue // blank line
		}
		dataRows++
		if dataRows > maxWorkbookRows {
			return nil, ErrWorkbookTooManyRows
		}

		key := usn + "\x00" + semester
		ingest, ok := grouped[key]
		if !ok {
			ingest = &dto.IngestRow{
				USN:         usn,
				StudentName: cellAt(row, "name"),
				DOB:         cellAt(row, "dob"),
				Semester:    semester,
			}
			grouped[key] = ingest
			order = append(order, key)
		}

		credits, err := strconv.ParseFloat(cellAt(row, "credits"), 64)
		if err != nil {
			credits = 0 // non-numeric credits weigh nothing
		}
		ingest.Subjects = append(ingest.Subjects, dto.SubjectRow{
			Name:    subject,
			Code:    cellAt(row, "code"),
			Grade:   cellAt(row, "grade"),
			Credits: dto.Credits(credits),
		})
	}

	if len(order) == 0 {
		return nil, ErrWorkbookNoData
	}

	rows := make([]dto.IngestRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *grouped[key])
	}
	return rows, nil
}

// parseWorkbookHeader maps required column names to their index, -1 when
// absent.
func parseWorkbookHeader(header []string) map[string]int {
	idx := make(map[string]int, len(workbookColumns))
	for _, col := range workbookColumns {
		idx[col] = -1
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[name]; ok && idx[name] < 0 {
			idx[name] = i
		}
	}
	return idx
}

// ────────────────────── GetResults ──────────────────────

func (s *resultService) GetResults(ctx context.Context, usn string) ([]dto.ResultResponse, error) {
	normalized := grading.NormalizeUSN(usn)

	records, err := s.repo.Result.ListByStudent(ctx, normalized)
	if err != nil {
		s.logger.Error("result listing failed", zap.String("usn", normalized), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ResultResponse, 0, len(records))
	for _, r := range records {
		subjects := make([]dto.SubjectResponse, 0, len(r.Subjects))
		for _, sub := range r.Subjects {
			subjects = append(subjects, dto.SubjectResponse{
				Name:    sub.Name,
				Code:    sub.Code,
				Grade:   sub.Grade,
				Credits: sub.Credits,
			})
		}
		result = append(result, dto.ResultResponse{
			StudentID: r.StudentUSN,
			Semester:  r.Semester,
			GPA:       r.GPA,
			Subjects:  subjects,
		})
	}
	return result, nil
}

// ────────────────────── SmartDelete ──────────────────────

func (s *resultService) SmartDelete(ctx context.Context, query string) (*DeleteOutcome, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	// 1. semester label, exact and case-sensitive
	deleted, err := s.repo.Result.DeleteBySemester(ctx, trimmed)
	if err != nil {
		s.logger.Error("semester delete failed", zap.String("query", trimmed), zap.Error(err))
		return nil, err
	}
	if deleted > 0 {
		if s.collector != nil {
			s.collector.RecordSmartDelete(string(DeleteSemester))
		}
		return &DeleteOutcome{Kind: DeleteSemester, Deleted: deleted}, nil
	}

	// 2. student name (verbatim) or USN (normalized); a name collision
	//    deletes every matching account
	students, err := s.repo.Account.FindStudentsByNameOrUSN(ctx, trimmed, grading.NormalizeUSN(trimmed))
	if err != nil {
		s.logger.Error("student lookup failed", zap.String("query", trimmed), zap.Error(err))
		return nil, err
	}
	if len(students) > 0 {
		var removed int64
		for _, student := range students {
			if _, err := s.repo.Result.DeleteByStudent(ctx, student.Username); err != nil {
				s.logger.Error("cascade result delete failed", zap.String("usn", student.Username), zap.Error(err))
				return nil, err
			}
			if err := s.repo.Account.Delete(ctx, student.AccountID); err != nil {
				s.logger.Error("account delete failed", zap.String("usn", student.Username), zap.Error(err))
				return nil, err
			}
			removed++
		}
		if s.collector != nil {
			s.collector.RecordSmartDelete(string(DeleteStudents))
		}
		return &DeleteOutcome{Kind: DeleteStudents, Deleted: removed}, nil
	}

	// 3. nothing matched
	if s.collector != nil {
		s.collector.RecordSmartDelete(string(DeleteNone))
	}
	return &DeleteOutcome{Kind: DeleteNone}, nil
}
