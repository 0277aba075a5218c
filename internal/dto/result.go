package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ── result DTOs ──

// Credits accepts whatever a spreadsheet export put in the credits
// column: a number, a numeric string, or junk. Anything non-numeric
// unmarshals to 0 instead of failing the whole batch.
type Credits float64

// UnmarshalJSON implements the lenient decoding.
func (c *Credits) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Credits(f)
	return nil
}

// MarshalJSON renders credits back as a plain number.
func (c Credits) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

// SubjectRow one subject inside an ingest row.
type SubjectRow struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Grade   string  `json:"grade"`
	Credits Credits `json:"credits"`
}

// IngestRow one spreadsheet-derived record: one student's results for
// one semester.
type IngestRow struct {
	USN         string       `json:"usn"`
	StudentName string       `json:"studentName"`
	DOB         string       `json:"dob"`
	Semester    string       `json:"semester"`
	Subjects    []SubjectRow `json:"subjects"`
}

// IngestRowError a single rejected row in the bulk report.
type IngestRowError struct {
	USN     string `json:"usn"`
	Message string `json:"message"`
}

// IngestReport the bulk ingest outcome: partial failures are reported
// here, never as a failed HTTP call.
type IngestReport struct {
	Message   string           `json:"message"`
	Succeeded int              `json:"succeeded"`
	Total     int              `json:"total"`
	Errors    []IngestRowError `json:"errors"`
}

// SubjectResponse one graded subject in a result payload.
type SubjectResponse struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Grade   string  `json:"grade"`
	Credits float64 `json:"credits"`
}

// ResultResponse one semester result for a student.
type ResultResponse struct {
	StudentID string            `json:"studentId"`
	Semester  string            `json:"semester"`
	GPA       string            `json:"gpa"`
	Subjects  []SubjectResponse `json:"subjects"`
}

// DeleteRequest the free-text smart-delete query.
type DeleteRequest struct {
	Query string `json:"query" binding:"required"`
}

// DeleteResponse the smart-delete outcome. Kind is "semester" or
// "student"; Deleted counts result records or student accounts
// respectively.
type DeleteResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Deleted int64  `json:"deleted"`
}
