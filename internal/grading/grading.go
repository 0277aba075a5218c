// Package grading holds the pure validation and normalization rules for
// result ingestion: USN format, date and age handling, and the
// grade-point / SGPA arithmetic. Everything here is side-effect free.
package grading

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// usnPattern matches a university seat number after normalization:
// the college prefix "3BR", two digits of admission year, two letters
// of department code, three digits of roll number.
var usnPattern = regexp.MustCompile(`^3BR\d{2}[A-Z]{2}\d{3}$`)

// NormalizeUSN uppercases the identifier and strips all whitespace.
// Idempotent: normalizing an already-normalized USN is a no-op.
func NormalizeUSN(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ValidUSN reports whether a normalized identifier matches the seat
// number format. Fails closed: anything else is rejected.
func ValidUSN(usn string) bool {
	return usnPattern.MatchString(usn)
}

// DepartmentOf extracts the department code from a valid USN
// (e.g. 3BR23CS001 -> CS).
func DepartmentOf(usn string) string {
	if len(usn) < 7 {
		return ""
	}
	return usn[5:7]
}

// BatchOf extracts the admission year from a valid USN
// (e.g. 3BR23CS001 -> 2023). Returns 0 when the year digits are absent.
func BatchOf(usn string) int {
	if len(usn) < 5 {
		return 0
	}
	year, err := strconv.Atoi("20" + usn[3:5])
	if err != nil {
		return 0
	}
	return year
}

// dateLayouts are the spreadsheet date shapes accepted besides the
// canonical form, tried in order.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate renders a raw date string as YYYY-MM-DD using UTC
// calendar fields, so a timezone offset can never shift the day. An
// already-canonical string passes through unchanged. If no layout
// parses, the original input is returned as-is; a downstream check is
// then expected to reject it.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format("2006-01-02")
		}
	}
	return raw
}

// ParseISODate parses a canonical YYYY-MM-DD string.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("not a YYYY-MM-DD date: %q", s)
	}
	return t, nil
}

// Age returns full calendar years between birth and reference: the year
// difference, minus one if the reference month/day falls before the
// birthday in the reference year. Leap-day birthdays age up on March 1
// of common years.
func Age(birth, reference time.Time) int {
	age := reference.Year() - birth.Year()
	if reference.Month() < birth.Month() ||
		(reference.Month() == birth.Month() && reference.Day() < birth.Day()) {
		age--
	}
	return age
}

// gradePoints is the letter-grade to grade-point table.
var gradePoints = map[string]int{
	"O":  10,
	"A+": 9,
	"A":  8,
	"B+": 7,
	"B":  6,
	"C":  5,
	"P":  4,
}

// GradePoint maps a letter grade to its grade point. Case-insensitive
// and whitespace-trimmed. Total: every unrecognized grade ("F", "AB",
// empty, garbage) maps to 0.
func GradePoint(grade string) int {
	return gradePoints[strings.ToUpper(strings.TrimSpace(grade))]
}

// GradedSubject is the minimal view of a subject needed for SGPA.
type GradedSubject struct {
	Grade   string
	Credits float64
}

// SGPA computes the credit-weighted grade-point average over the given
// subjects, rendered with two decimal places. Zero total credits yields
// "0.00".
func SGPA(subjects []GradedSubject) string {
	var totalPoints, totalCredits float64
	for _, sub := range subjects {
		credits := sub.Credits
		if credits < 0 {
			credits = 0
		}
		totalPoints += float64(GradePoint(sub.Grade)) * credits
		totalCredits += credits
	}
	if totalCredits == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(totalPoints/totalCredits, 'f', 2, 64)
}
