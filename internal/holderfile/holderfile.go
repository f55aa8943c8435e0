// Package holderfile loads holder snapshots from CSV files.
//
// Expected format, with a mandatory header row:
//
//	address,tokens,hours_after_launch
//	4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T,85000,6.5
package holderfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"solana-rewards-lab/internal/address"
	"solana-rewards-lab/internal/domain"
)

var expectedHeader = []string{"address", "tokens", "hours_after_launch"}

// Load reads holder records from a CSV file.
// Duplicate addresses and malformed rows fail the whole load.
func Load(path string) ([]*domain.HolderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open holder file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// Parse reads holder records from CSV content.
func Parse(r io.Reader) ([]*domain.HolderRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file, expected header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var records []*domain.HolderRecord
	seen := make(map[string]struct{})

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if _, dup := seen[rec.Address]; dup {
			return nil, fmt.Errorf("line %d: duplicate address %s", line, rec.Address)
		}
		seen[rec.Address] = struct{}{}

		records = append(records, rec)
	}

	return records, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("expected header %v, got %v", expectedHeader, header)
	}
	for i, col := range expectedHeader {
		if header[i] != col {
			return fmt.Errorf("expected header column %q at position %d, got %q", col, i, header[i])
		}
	}
	return nil
}

func parseRow(row []string) (*domain.HolderRecord, error) {
	if len(row) != 3 {
		return nil, fmt.Errorf("expected 3 columns, got %d", len(row))
	}

	addr := row[0]
	if err := address.Validate(addr); err != nil {
		return nil, fmt.Errorf("address %q: %w", addr, err)
	}

	tokens, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return nil, fmt.Errorf("tokens %q: %w", row[1], err)
	}

	hours, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return nil, fmt.Errorf("hours_after_launch %q: %w", row[2], err)
	}

	return &domain.HolderRecord{
		Address:          addr,
		Tokens:           tokens,
		HoursAfterLaunch: hours,
	}, nil
}
