package launch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func init() {
	Register("csv", func() Loader { return CSVLoader{} })
}

// CSVLoader reads comma-separated files with a header row.
type CSVLoader struct{}

// Read opens path and parses it as CSV.
func (CSVLoader) Read(ctx context.Context, path string) ([]string, [][]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(ctx, f)
}

// ReadCSV parses CSV from r. The first record is the header.
func ReadCSV(ctx context.Context, r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty file: %w", ErrNoRecords)
		}
		return nil, nil, err
	}
	// Excel and pandas exports may prefix a UTF-8 BOM.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, rec)
	}

	return header, rows, nil
}
