package view

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Draft is the unsaved form content, keyed by field key.
type Draft map[string]string

// Blank returns a draft holding each field's default.
func Blank(fields []Field) Draft {
	d := make(Draft, len(fields))
	for _, f := range fields {
		d[f.Key] = f.Default
	}
	return d
}

// DraftFrom copies the form fields of rec into a draft. Dates keep only
// their date portion.
func DraftFrom(fields []Field, rec any) (Draft, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	d := make(Draft, len(fields))
	for _, f := range fields {
		d[f.Key] = formValue(f, m[f.Key])
	}
	return d, nil
}

func formValue(f Field, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		if f.Kind == Date {
			return DateOnly(x)
		}
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

// DateOnly truncates an ISO-8601 timestamp to YYYY-MM-DD.
func DateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// Only keeps the keys the descriptor declares; stray form values are dropped.
func (d Draft) Only(fields []Field) Draft {
	out := make(Draft, len(fields))
	for _, f := range fields {
		out[f.Key] = d[f.Key]
	}
	return out
}

// Payload validates the draft and converts it to the JSON request body.
// Empty optional numbers are sent as null so an edit can clear them.
func (d Draft) Payload(fields []Field) (map[string]any, error) {
	body := make(map[string]any, len(fields))
	var verr ValidationError
	for _, f := range fields {
		raw := strings.TrimSpace(d[f.Key])
		if raw == "" {
			if f.Required {
				verr.add(f, "is required")
				continue
			}
			if f.Kind == Number {
				body[f.Key] = nil
			} else {
				body[f.Key] = ""
			}
			continue
		}
		switch f.Kind {
		case Number:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				verr.add(f, "must be a number")
				continue
			}
			if msg := checkRange(f, n); msg != "" {
				verr.add(f, msg)
				continue
			}
			body[f.Key] = n
		case Enum:
			if !hasOption(f, raw) {
				verr.add(f, "has an unknown value")
				continue
			}
			body[f.Key] = raw
		default:
			body[f.Key] = raw
		}
	}
	if len(verr.Problems) > 0 {
		return nil, &verr
	}
	return body, nil
}

func checkRange(f Field, n float64) string {
	if f.Min != nil {
		if f.MinExclusive && n <= *f.Min {
			return "must be greater than " + strconv.FormatFloat(*f.Min, 'f', -1, 64)
		}
		if !f.MinExclusive && n < *f.Min {
			return "must be at least " + strconv.FormatFloat(*f.Min, 'f', -1, 64)
		}
	}
	if f.Max != nil && n > *f.Max {
		return "must be at most " + strconv.FormatFloat(*f.Max, 'f', -1, 64)
	}
	return ""
}

func hasOption(f Field, v string) bool {
	for _, o := range f.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

type FieldProblem struct {
	Field   string
	Label   string
	Message string
}

// ValidationError lists every field that blocked a submit.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) add(f Field, msg string) {
	e.Problems = append(e.Problems, FieldProblem{Field: f.Key, Label: f.Label, Message: msg})
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Label + " " + p.Message
	}
	return strings.Join(parts, "; ")
}
