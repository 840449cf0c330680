package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the order_date column format
	DateLayout = "2006-01-02"
	// DateTimeLayout is the order_datetime column format
	DateTimeLayout = "2006-01-02 15:04:05"
)

// FieldError represents a CSV field parsing error
type FieldError struct {
	Column  string
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %q: %s (value %q)", e.Column, e.Message, e.Value)
}

// HeaderIndex maps column names to their positions in the CSV header row
func HeaderIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	return index
}

// ParseDate parses a YYYY-MM-DD date field
func ParseDate(column, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &FieldError{Column: column, Value: value, Message: "expected YYYY-MM-DD date"}
	}
	return t, nil
}

// ParseDateTime parses a YYYY-MM-DD HH:MM:SS timestamp field
func ParseDateTime(column, value string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &FieldError{Column: column, Value: value, Message: "expected YYYY-MM-DD HH:MM:SS timestamp"}
	}
	return t, nil
}

// ParseBool parses a boolean field. The POS export writes Python-style
// True/False; 1/0 and lowercase variants are accepted as well.
func ParseBool(column, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true, nil
	case "false", "0", "":
		return false, nil
	default:
		return false, &FieldError{Column: column, Value: value, Message: "expected a boolean"}
	}
}

// ParseFloat parses a numeric field; an empty field is 0
func ParseFloat(column, value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &FieldError{Column: column, Value: value, Message: "expected a number"}
	}
	return f, nil
}

// ParseInt parses an integer field; an empty field is 0.
// The generator writes some integer columns in float form (e.g. "13.0"),
// so a float with no fractional part is accepted.
func ParseInt(column, value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	if i, err := strconv.Atoi(trimmed); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || f != float64(int(f)) {
		return 0, &FieldError{Column: column, Value: value, Message: "expected an integer"}
	}
	return int(f), nil
}

// ParseOptionalInt parses a nullable integer field; an empty field is nil
func ParseOptionalInt(column, value string) (*int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	i, err := ParseInt(column, value)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ParseOptionalString returns nil for an empty field, otherwise the
// trimmed value
func ParseOptionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
