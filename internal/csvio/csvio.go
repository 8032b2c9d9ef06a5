// Package csvio reads the account/contact CSV inputs. Files must carry a
// header row with UPN and DisplayName columns; individual bad rows are
// reported back to the caller to warn about, never as fatal errors.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMissingField  = errors.New("missing required field")
	ErrMalformedUPN  = errors.New("UPN must contain '@'")
)

type Row struct {
	Line        int
	UPN         string
	DisplayName string
}

// RowError wraps a row-level problem with the line it occurred on.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Read parses the whole input. It returns the valid rows, one RowError
// per skipped row, and a fatal error only when the file itself is
// unreadable or the header is missing a required column.
func Read(r io.Reader) ([]Row, []*RowError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, nil, err
	}

	upnIdx, nameIdx := -1, -1
	for i, column := range header {
		switch strings.TrimSpace(column) {
		case "UPN":
			upnIdx = i
		case "DisplayName":
			nameIdx = i
		}
	}

	if upnIdx == -1 {
		return nil, nil, fmt.Errorf("%w: UPN", ErrMissingColumn)
	}
	if nameIdx == -1 {
		return nil, nil, fmt.Errorf("%w: DisplayName", ErrMissingColumn)
	}

	var rows []Row
	var rowErrors []*RowError

	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV at line %d: %w", line, err)
		}

		row, rowErr := parseRow(line, record, upnIdx, nameIdx)
		if rowErr != nil {
			rowErrors = append(rowErrors, rowErr)
			continue
		}

		rows = append(rows, row)
	}

	return rows, rowErrors, nil
}

func parseRow(line int, record []string, upnIdx int, nameIdx int) (Row, *RowError) {
	var upn, name string
	if upnIdx < len(record) {
		upn = strings.TrimSpace(record[upnIdx])
	}
	if nameIdx < len(record) {
		name = strings.TrimSpace(record[nameIdx])
	}

	switch {
	case upn == "":
		return Row{}, &RowError{Line: line, Err: fmt.Errorf("%w: UPN", ErrMissingField)}
	case name == "":
		return Row{}, &RowError{Line: line, Err: fmt.Errorf("%w: DisplayName", ErrMissingField)}
	case !strings.Contains(upn, "@"):
		return Row{}, &RowError{Line: line, Err: fmt.Errorf("%w: %q", ErrMalformedUPN, upn)}
	}

	return Row{Line: line, UPN: upn, DisplayName: name}, nil
}
