package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/okian/titanic/internal/domain/passenger"
)

// DecodeCSV reads a table whose header names the columns, as in the Kaggle
// train.csv. Known columns fill the typed fields; other cells are passed
// through as numbers when they parse as such, null when empty, and strings
// otherwise.
func DecodeCSV(r io.Reader) ([]passenger.Passenger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []passenger.Passenger{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrDecode, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	out := []passenger.Passenger{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDecode, line, err)
		}
		p, err := rowToPassenger(header, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDecode, line, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func rowToPassenger(header, rec []string) (passenger.Passenger, error) {
	var p passenger.Passenger
	for i, col := range header {
		if i >= len(rec) {
			break
		}
		cell := strings.TrimSpace(rec[i])
		switch col {
		case passenger.KeyID:
			n, err := atoiCell(col, cell)
			if err != nil {
				return p, err
			}
			p.ID = n
		case passenger.KeyClass:
			n, err := atoiCell(col, cell)
			if err != nil {
				return p, err
			}
			p.Class = n
		case passenger.KeySurvived:
			n, err := atoiCell(col, cell)
			if err != nil {
				return p, err
			}
			p.Survived = n
		case passenger.KeyName:
			p.Name = cell
		case passenger.KeySex:
			p.Sex = cell
		default:
			p = p.WithExtra(col, cellJSON(cell))
		}
	}
	return p, nil
}

func atoiCell(col, cell string) (int, error) {
	if cell == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not an integer", col, cell)
	}
	return n, nil
}

func cellJSON(cell string) json.RawMessage {
	if cell == "" {
		return json.RawMessage("null")
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64))
	}
	b, _ := json.Marshal(cell)
	return b
}
