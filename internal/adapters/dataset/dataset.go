// Package dataset reads passenger records from a file on disk.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/titanic/internal/domain/passenger"
)

// Sentinel kinds for dataset errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrDecode            = errors.New("decode dataset failed")
)

// document is the JSON file shape.
type document struct {
	Passengers []passenger.Passenger `json:"passengers"`
}

// LoadFile reads the dataset at path. The format is chosen by extension:
// .json for a {"passengers": [...]} document, .csv for a Kaggle style table.
func LoadFile(ctx context.Context, path string) ([]passenger.Passenger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(f)
	case ".csv":
		return DecodeCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// DecodeJSON reads a {"passengers": [...]} document.
func DecodeJSON(r io.Reader) ([]passenger.Passenger, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if doc.Passengers == nil {
		return []passenger.Passenger{}, nil
	}
	return doc.Passengers, nil
}
