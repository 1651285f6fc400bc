// Package imports handles roster uploads: a CSV or XLSX sheet with a fixed
// twelve-column header becomes a batch of Available players.
package imports

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nilami/api-server/pkg/currency"
	"github.com/nilami/api-server/pkg/datastore"
	"github.com/nilami/api-server/pkg/validation"
)

// RosterHeader is the only header the upload accepts, in this order.
var RosterHeader = []string{
	"Sr No", "Player Name", "Age", "Country", "T20 Matches", "Runs",
	"Wickets", "Catches", "Evaluation Points", "Base Price", "Role", "Pool",
}

type ImportsService struct {
	Store   datastore.Store
	factory *Factory
}

func New(store datastore.Store) *ImportsService {
	return &ImportsService{Store: store, factory: NewFactory()}
}

type ImportResult struct {
	Imported int                `json:"imported"`
	Skipped  int                `json:"skipped"`
	Errors   []string           `json:"errors,omitempty"`
	Players  []datastore.Player `json:"players"`
}

// ImportRoster parses the upload and creates a player per valid row. Invalid
// rows are skipped and reported with their sheet row number; a bad file or
// header rejects the whole upload.
func (s *ImportsService) ImportRoster(ctx context.Context, filename string, data []byte) (ImportResult, error) {
	parser, err := s.factory.GetParser(filename)
	if err != nil {
		return ImportResult{}, validation.Errorf("file", "%v", err)
	}

	rows, err := parser.Parse(data)
	if err != nil {
		return ImportResult{}, validation.Errorf("file", "%v", err)
	}
	if len(rows) == 0 {
		return ImportResult{}, validation.Errorf("file", "is empty")
	}

	if err := validateHeader(rows[0]); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Players: make([]datastore.Player, 0, len(rows)-1)}
	for i, record := range rows[1:] {
		rowNum := i + 2
		player, err := rowToPlayer(record)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		created, err := s.Store.CreatePlayer(ctx, player)
		if err != nil {
			return result, err
		}
		result.Imported++
		result.Players = append(result.Players, created)
	}

	return result, nil
}

func validateHeader(header []string) error {
	cells := trimTrailingEmpty(header)
	if len(cells) != len(RosterHeader) {
		return validation.Errorf("file", "header has %d columns, want %d", len(cells), len(RosterHeader))
	}
	for i, want := range RosterHeader {
		if !strings.EqualFold(strings.TrimSpace(cells[i]), want) {
			return validation.Errorf("file", "header column %d is %q, want %q", i+1, strings.TrimSpace(cells[i]), want)
		}
	}
	return nil
}

// rowToPlayer converts one sheet row. Cells are trimmed; short rows are
// padded (XLSX drops trailing empty cells), so a missing Pool is fine while
// truncated rows still fail on the required columns.
func rowToPlayer(record []string) (datastore.Player, error) {
	if extra := record[min(len(record), len(RosterHeader)):]; len(trimTrailingEmpty(extra)) > 0 {
		return datastore.Player{}, fmt.Errorf("has %d columns, want %d", len(record), len(RosterHeader))
	}

	cells := make([]string, len(RosterHeader))
	for i := range cells {
		if i < len(record) {
			cells[i] = strings.TrimSpace(record[i])
		}
	}

	name := cells[1]
	if name == "" {
		return datastore.Player{}, fmt.Errorf("player name is required")
	}

	age, err := parseCount("age", cells[2])
	if err != nil {
		return datastore.Player{}, err
	}
	matches, err := parseCount("t20 matches", cells[4])
	if err != nil {
		return datastore.Player{}, err
	}
	runs, err := parseCount("runs", cells[5])
	if err != nil {
		return datastore.Player{}, err
	}
	wickets, err := parseCount("wickets", cells[6])
	if err != nil {
		return datastore.Player{}, err
	}
	catches, err := parseCount("catches", cells[7])
	if err != nil {
		return datastore.Player{}, err
	}
	points, err := parseCount("evaluation points", cells[8])
	if err != nil {
		return datastore.Player{}, err
	}

	basePrice, err := currency.ParseINR(cells[9])
	if err != nil {
		return datastore.Player{}, fmt.Errorf("invalid base price %q", cells[9])
	}
	if basePrice < 0 {
		return datastore.Player{}, fmt.Errorf("negative base price %q", cells[9])
	}

	role := datastore.PlayerRole(cells[10])
	if !role.Valid() {
		return datastore.Player{}, fmt.Errorf("invalid role %q", cells[10])
	}

	return datastore.Player{
		Name:      name,
		Role:      role,
		Country:   cells[3],
		Age:       age,
		Matches:   matches,
		Runs:      runs,
		Wickets:   wickets,
		Catches:   catches,
		Points:    points,
		BasePrice: basePrice,
		Pool:      cells[11],
		Status:    datastore.StatusAvailable,
	}, nil
}

// parseCount reads a non-negative integer cell; empty means zero.
func parseCount(field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", field, raw)
	}
	return n, nil
}

func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	return cells[:end]
}
