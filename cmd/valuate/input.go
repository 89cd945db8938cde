package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

// decodeInvestments reads either a JSON array of records or an object with an
// "investments" array, as served by the list endpoint.
func decodeInvestments(r io.Reader) ([]valuation.Investment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimSpace(data)

	var records []valuation.Record
	if len(data) > 0 && data[0] == '{' {
		var page struct {
			Investments []valuation.Record `json:"investments"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("failed to decode investments: %w", err)
		}
		records = page.Investments
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode investments: %w", err)
	}

	return valuation.FromRecords(records)
}

// loadInvestments decodes the file named by path, or standard input for "-".
func loadInvestments(path string) ([]valuation.Investment, error) {
	if path == "" || path == "-" {
		return decodeInvestments(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeInvestments(f)
}
