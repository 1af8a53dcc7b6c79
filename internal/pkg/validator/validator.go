package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Organization codes are short uppercase mnemonics, e.g. "CTU".
var organizationCodeRegex = regexp.MustCompile(`^[A-Z]{2,4}$`)

func IsValidOrganizationCode(code string) bool {
	return organizationCodeRegex.MatchString(code)
}

// Employee identifiers are "<ORG>-<3-digit sequence>", e.g. "CTU-001".
var employeeIDRegex = regexp.MustCompile(`^[A-Z]{2,4}-\d{3}$`)

func IsValidEmployeeID(id string) bool {
	return employeeIDRegex.MatchString(id)
}

// IsValidPeriod checks a payroll period key: month 1-12, year >= 1900.
func IsValidPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 1900
}

// HasMinLength checks the trimmed rune length of s against min.
func HasMinLength(s string, min int) bool {
	return len([]rune(strings.TrimSpace(s))) >= min
}

// IsValidDate validates a "YYYY-MM-DD" string.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsNonNegative reports whether d is zero or positive.
func IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
