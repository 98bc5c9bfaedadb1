package discovery

import (
	"bufio"
	"bytes"
	"chess-leaderboard/internal/domain"
	"fmt"
	"strings"
)

const (
	tagEvent = "[Event"
	tagDate  = "[Date"
	tagSite  = "[Site"
)

// ParseGameExport scans a PGN export and returns its game records in file order.
// Records without a Site tag carry no game id and are dropped.
func ParseGameExport(raw []byte) ([]domain.GameRecord, error) {
	var (
		records []domain.GameRecord
		current *domain.GameRecord
	)

	flush := func() {
		if current != nil && current.GameID != "" {
			records = append(records, *current)
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, tagEvent):
			flush()
			current = &domain.GameRecord{}
		case current == nil:
			// header lines before the first event belong to no record
		case strings.HasPrefix(line, tagDate):
			current.Date = tagValue(line)
		case strings.HasPrefix(line, tagSite):
			current.GameID = lastSegment(tagValue(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan game export: %w", err)
	}
	flush()

	return records, nil
}

// LastGamePerDate keeps the last game id seen for each date, ordered by the
// first appearance of the date.
func LastGamePerDate(records []domain.GameRecord) []string {
	var dates []string
	byDate := make(map[string]string)
	for _, r := range records {
		if _, ok := byDate[r.Date]; !ok {
			dates = append(dates, r.Date)
		}
		byDate[r.Date] = r.GameID
	}

	ids := make([]string, 0, len(dates))
	for _, d := range dates {
		ids = append(ids, byDate[d])
	}
	return ids
}

func tagValue(line string) string {
	_, value, ok := strings.Cut(line, " ")
	if !ok {
		return ""
	}
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(value, "]")
	return strings.Trim(value, `"`)
}

func lastSegment(site string) string {
	site = strings.TrimRight(site, "/")
	if i := strings.LastIndex(site, "/"); i >= 0 {
		return site[i+1:]
	}
	return site
}
