// Package aggregate turns a raw monthly costs document into a flat record
// set and derives the dashboard's aggregate tables from it. All functions
// are pure: they only read their inputs and allocate new outputs.
package aggregate

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/bgeneto/costwatch/internal/models"
)

// Required entry fields.
const (
	fieldModel        = "model"
	fieldTotalCost    = "total_cost"
	fieldInputTokens  = "input_tokens"
	fieldOutputTokens = "output_tokens"
)

var requiredFields = []string{fieldModel, fieldTotalCost, fieldInputTokens, fieldOutputTokens}

// Normalize flattens doc into one record per user, reporting per-user
// errors instead of aborting: a bad entry drops only that user. The
// returned record slice is never nil, so downstream aggregation runs
// safely against zero rows.
//
// Users are visited in sorted key order, which keeps output deterministic;
// the source assigns no meaning to ordering. Only the first entry of each
// user's sequence is consulted; additional entries are ignored to match
// the exporter's observed behavior.
func Normalize(doc models.RawDocument) ([]models.Record, []models.RecordError) {
	records := make([]models.Record, 0, len(doc))
	var errs []models.RecordError

	users := make([]string, 0, len(doc))
	for user := range doc {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		rec, rerr := normalizeUser(user, doc[user])
		if rerr != nil {
			errs = append(errs, *rerr)
			continue
		}
		records = append(records, rec)
	}

	return records, errs
}

func normalizeUser(user string, raw any) (models.Record, *models.RecordError) {
	entries, ok := raw.([]any)
	if !ok {
		return models.Record{}, &models.RecordError{
			Kind:   models.ErrUnexpected,
			User:   user,
			Detail: "usage entries are not a sequence",
		}
	}
	if len(entries) == 0 {
		return models.Record{}, &models.RecordError{
			Kind:   models.ErrUnexpected,
			User:   user,
			Detail: "no usage entries",
		}
	}

	entry, ok := entries[0].(map[string]any)
	if !ok {
		return models.Record{}, &models.RecordError{
			Kind:   models.ErrUnexpected,
			User:   user,
			Detail: "first usage entry is not an object",
		}
	}

	for _, field := range requiredFields {
		if _, present := entry[field]; !present {
			return models.Record{}, &models.RecordError{
				Kind:  models.ErrMissingField,
				User:  user,
				Field: field,
			}
		}
	}

	model, ok := entry[fieldModel].(string)
	if !ok {
		return models.Record{}, &models.RecordError{
			Kind:   models.ErrUnexpected,
			User:   user,
			Detail: "model is not a string",
		}
	}

	cost, err := coerceCost(entry[fieldTotalCost])
	if err != nil {
		return models.Record{}, &models.RecordError{
			Kind:   models.ErrInvalidNumeric,
			User:   user,
			Detail: "total_cost is not numeric",
		}
	}

	inputTokens, err := coerceTokens(entry[fieldInputTokens])
	if err != nil {
		return models.Record{}, &models.RecordError{
			Kind:   models.ErrInvalidNumeric,
			User:   user,
			Detail: "input_tokens is not numeric",
		}
	}
	outputTokens, err := coerceTokens(entry[fieldOutputTokens])
	if err != nil {
		return models.Record{}, &models.RecordError{
			Kind:   models.ErrInvalidNumeric,
			User:   user,
			Detail: "output_tokens is not numeric",
		}
	}

	return models.Record{
		User:        user,
		Model:       model,
		TotalCost:   cost,
		TotalTokens: inputTokens + outputTokens,
	}, nil
}

// coerceCost accepts a JSON number or a numeric string. The exporter
// sometimes serializes total_cost as a string.
func coerceCost(v any) (float64, error) {
	switch val := v.(type) {
	case json.Number:
		return val.Float64()
	case float64:
		return val, nil
	case string:
		return strconv.ParseFloat(val, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}

// coerceTokens accepts a JSON number holding a whole token count. Values
// with a fractional part are rejected rather than truncated.
func coerceTokens(v any) (int64, error) {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, nil
		}
		// Exponent forms like 1e3 fail Int64 but still denote integers
		f, err := val.Float64()
		if err != nil {
			return 0, err
		}
		return wholeTokens(f)
	case float64:
		return wholeTokens(val)
	default:
		return 0, strconv.ErrSyntax
	}
}

func wholeTokens(f float64) (int64, error) {
	if f != math.Trunc(f) {
		return 0, strconv.ErrSyntax
	}
	return int64(f), nil
}
