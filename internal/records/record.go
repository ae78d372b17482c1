// Package records models rows returned by the onboarding API and decides which are admissible.
package records

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FlatFilers/HCMShow-sub000/internal/dateformat"
)

// ErrInvalidRecord is returned when a record is missing a required field or a required field failed validation.
var ErrInvalidRecord = errors.New("records: record failed validation")

// Message is a validation message attached to a field by the upstream validator.
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Field is one cell of a record.
type Field struct {
	Value    any       `json:"value"`
	Valid    bool      `json:"valid"`
	Messages []Message `json:"messages,omitempty"`
}

// Record is one row of a sheet keyed by field name.
type Record struct {
	ID     string           `json:"id"`
	Values map[string]Field `json:"values"`
}

// Has reports whether key carries a non-blank value.
func (r Record) Has(key string) bool {
	return r.String(key) != ""
}

// String returns the trimmed textual value of key, or "" when absent or null.
func (r Record) String(key string) string {
	f, ok := r.Values[key]
	if !ok || f.Value == nil {
		return ""
	}
	switch v := f.Value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Bool interprets key as a boolean. Accepts JSON booleans and yes/no style strings.
func (r Record) Bool(key string) (bool, error) {
	f, ok := r.Values[key]
	if !ok || f.Value == nil {
		return false, fmt.Errorf("%s: missing value", key)
	}
	if b, ok := f.Value.(bool); ok {
		return b, nil
	}
	switch strings.ToLower(r.String(key)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("%s: not a boolean: %q", key, r.String(key))
}

// Float interprets key as a number.
func (r Record) Float(key string) (float64, error) {
	f, ok := r.Values[key]
	if !ok || f.Value == nil {
		return 0, fmt.Errorf("%s: missing value", key)
	}
	if v, ok := f.Value.(float64); ok {
		return v, nil
	}
	v, err := strconv.ParseFloat(r.String(key), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %w", key, err)
	}
	return v, nil
}

// Decimal interprets key as an exact decimal amount. A leading currency sign and thousands separators are ignored.
func (r Record) Decimal(key string) (decimal.Decimal, error) {
	s := r.String(key)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%s: missing value", key)
	}
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: not a decimal: %w", key, err)
	}
	return d, nil
}

// Date normalizes key through dateformat and returns it as a UTC date.
func (r Record) Date(key string) (time.Time, error) {
	t, err := dateformat.Parse(r.String(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

// OptionalDate is Date for nullable columns: a blank value yields nil.
func (r Record) OptionalDate(key string) (*time.Time, error) {
	if !r.Has(key) {
		return nil, nil
	}
	t, err := r.Date(key)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
