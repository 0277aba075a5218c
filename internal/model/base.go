package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── account roles ──

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// BaseModel common audit fields embedded by every business model.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── PostgreSQL JSONB subject list ──

// Subject is one graded subject inside a semester result.
type Subject struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Grade   string  `json:"grade"`
	Credits float64 `json:"credits"`
}

// SubjectList maps to a JSONB column, keeping the embedded subject
// array shape of a result document. Implements the GORM Scanner/Valuer
// interfaces.
type SubjectList []Subject

// Scan parses the JSONB bytes returned by PostgreSQL.
func (l *SubjectList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("SubjectList.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*l = SubjectList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// Value serializes the subject list as JSONB.
func (l SubjectList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("SubjectList.Value: %w", err)
	}
	return string(b), nil
}
