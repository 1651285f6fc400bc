// Package results renders the auction outcome as a downloadable sheet, one
// row per player with resolved team names and formatted prices.
package results

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nilami/api-server/pkg/currency"
	"github.com/nilami/api-server/pkg/datastore"
)

// ResultsHeader is the first row of every export, in this order.
var ResultsHeader = []string{
	"Player Name", "Role", "Country", "Base Price", "Sold Price", "Team", "Status",
}

type ResultsService struct {
	Store datastore.Store
}

func New(store datastore.Store) *ResultsService {
	return &ResultsService{Store: store}
}

// ExportCSV renders the results sheet as CSV bytes.
func (s *ResultsService) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("error writing csv: %v", err)
	}
	return buf.Bytes(), nil
}

// ExportXLSX renders the same sheet as an XLSX workbook.
func (s *ResultsService) ExportXLSX(ctx context.Context) ([]byte, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("error building sheet: %v", err)
		}
		cells := make([]interface{}, len(row))
		for j, val := range row {
			cells[j] = val
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return nil, fmt.Errorf("error building sheet: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing xlsx: %v", err)
	}
	return buf.Bytes(), nil
}

// rows builds the header plus one row per player, in store list order.
// Players without a sale keep the price and team cells empty.
func (s *ResultsService) rows(ctx context.Context) ([][]string, error) {
	players, err := s.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.Store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	teamNames := make(map[string]string, len(teams))
	for _, team := range teams {
		teamNames[team.TeamID] = team.Name
	}

	rows := make([][]string, 0, len(players)+1)
	rows = append(rows, ResultsHeader)
	for _, p := range players {
		soldPrice, teamName := "", ""
		if p.SoldPrice != nil {
			soldPrice = currency.FormatINR(*p.SoldPrice)
		}
		if p.TeamID != nil {
			teamName = teamNames[*p.TeamID]
		}
		rows = append(rows, []string{
			p.Name,
			string(p.Role),
			p.Country,
			currency.FormatINR(p.BasePrice),
			soldPrice,
			teamName,
			string(p.Status),
		})
	}
	return rows, nil
}
