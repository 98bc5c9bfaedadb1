package leaderboard

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/xuri/excelize/v2"
)

const (
	performanceSheet = "Desempenho"
	pointsSheet      = "Pontuação"
)

// Blocks renders the performance table, the points header and the points rows.
func (b *Board) Blocks() [3]string {
	standings := b.Standings()

	perf := []string{strings.Join(append([]string{membersHeader}, b.TournamentHeaders()...), ",")}
	points := make([]string, 0, len(standings))
	for _, s := range standings {
		perf = append(perf, strings.Join(append([]string{s.User}, s.Performances...), ","))
		points = append(points, strings.Join([]string{s.User, strconv.Itoa(s.Points), s.Medals}, ","))
	}

	return [3]string{
		strings.Join(perf, "\n"),
		strings.Join([]string{membersHeader, pointsHeader, medalsHeader}, ","),
		strings.Join(points, "\n"),
	}
}

func (b *Board) CSV() string {
	var sb strings.Builder
	for _, block := range b.Blocks() {
		sb.WriteString(block)
		sb.WriteString("\n")
	}
	return sb.String()
}

func WriteCSV(w io.Writer, b *Board) error {
	_, err := io.WriteString(w, b.CSV())
	return err
}

func WriteTable(w io.Writer, b *Board) error {
	standings := b.Standings()

	perf := table.NewWriter()
	perf.SetOutputMirror(w)
	perf.SetStyle(table.StyleLight)
	header := table.Row{membersHeader}
	for _, h := range b.TournamentHeaders() {
		header = append(header, h)
	}
	perf.AppendHeader(header)
	for _, s := range standings {
		row := table.Row{s.User}
		for _, p := range s.Performances {
			row = append(row, p)
		}
		perf.AppendRow(row)
	}
	perf.Render()

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	points := table.NewWriter()
	points.SetOutputMirror(w)
	points.SetStyle(table.StyleLight)
	points.AppendHeader(table.Row{membersHeader, pointsHeader, medalsHeader})
	for _, s := range standings {
		points.AppendRow(table.Row{s.User, s.Points, s.Medals})
	}
	points.Render()

	return nil
}

// WriteXLSX writes a workbook with one sheet per report table.
func WriteXLSX(w io.Writer, b *Board) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", performanceSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(pointsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	standings := b.Standings()

	header := []any{membersHeader}
	for _, h := range b.TournamentHeaders() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(performanceSheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetSheetRow(pointsSheet, "A1", &[]any{membersHeader, pointsHeader, medalsHeader}); err != nil {
		return err
	}

	for i, s := range standings {
		row := []any{s.User}
		for _, p := range s.Performances {
			if n, err := strconv.Atoi(p); err == nil {
				row = append(row, n)
			} else {
				row = append(row, p)
			}
		}

		perfCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(performanceSheet, perfCell, &row); err != nil {
			return err
		}
		if err := f.SetSheetRow(pointsSheet, perfCell, &[]any{s.User, s.Points, s.Medals}); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
