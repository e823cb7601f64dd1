// Package loader reads and parses monthly costs files. A malformed file is
// a terminal condition for that load attempt: the loader reports a typed
// error instead of letting a raw decode error escape the boundary.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bgeneto/costwatch/internal/models"
)

// Kind classifies loader failures.
type Kind int

const (
	// InvalidJSON means the source is not parseable JSON.
	InvalidJSON Kind = iota
	// NotObject means the source parsed but its top level is not a JSON
	// object mapping users to entries.
	NotObject
)

// Error is a typed loader failure.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	switch e.Kind {
	case NotObject:
		return fmt.Sprintf("%s: top-level JSON value is not an object", where)
	default:
		return fmt.Sprintf("%s: invalid JSON: %v", where, e.Err)
	}
}

// Unwrap returns the underlying decode error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Load parses a costs document from r. Numbers are decoded as json.Number
// so token counts stay exact and cost coercion is deferred to the
// aggregator. Calling Load twice on the same unchanged source yields the
// same result.
func Load(r io.Reader) (models.RawDocument, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &Error{Kind: InvalidJSON, Err: err}
	}

	// Decode stops at the end of the first value; anything but EOF after
	// it means the source is not a single JSON document.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after top-level value")
		}
		return nil, &Error{Kind: InvalidJSON, Err: err}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &Error{Kind: NotObject}
	}

	return models.RawDocument(obj), nil
}

// LoadFile opens and parses the costs file at path. The caller is expected
// to have checked for existence already; a missing file surfaces as a
// plain wrapped error here.
func LoadFile(path string) (models.RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open costs file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := Load(f)
	if err != nil {
		if lerr, ok := err.(*Error); ok {
			lerr.Path = path
		}
		return nil, err
	}
	return doc, nil
}
