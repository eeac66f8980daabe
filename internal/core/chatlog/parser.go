// Package chatlog turns exported chat text into an ordered record table.
package chatlog

import (
	"regexp"
	"strings"

	"github.com/markdave123-py/delulu-meter/internal/models"
)

// clock matches H:MM with an optional am/pm marker.
const clock = `\d{1,2}:\d{2}(?:\s?[aApP]\.?[mM]\.?)?`

// clockSeconds matches H:MM:SS with an optional am/pm marker.
const clockSeconds = `\d{1,2}:\d{2}:\d{2}(?:\s?[aApP]\.?[mM]\.?)?`

const date = `\d{1,2}/\d{1,2}/\d{2,4}`

// linePatterns are tried in order; the first match wins. Every pattern
// captures date, time, author and message.
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(` + date + `),\s(` + clock + `)\s?-?\s(.*?):\s(.*)$`),
	regexp.MustCompile(`^(` + date + `),\s(` + clockSeconds + `)\s?-?\s(.*?):\s(.*)$`),
	regexp.MustCompile(`^\[(` + date + `),\s(` + clockSeconds + `)\]\s(.*?):\s(.*)$`),
	regexp.MustCompile(`^(` + date + `)\s(` + clock + `)\s-\s(.*?):\s(.*)$`),
}

// invisible characters some exporters put around timestamps.
var lineCleaner = strings.NewReplacer(
	"\ufeff", "",
	"\u200e", "",
	"\u200f", "",
	"\u202f", " ",
	"\u00a0", " ",
)

// ParseLine extracts the date, time, author and message of one exported line.
// It reports false for lines that match none of the known shapes.
func ParseLine(line string) (models.ParsedRow, bool) {
	line = strings.TrimSpace(lineCleaner.Replace(line))
	if line == "" {
		return models.ParsedRow{}, false
	}
	for _, re := range linePatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return models.ParsedRow{Date: m[1], Time: m[2], Author: m[3], Message: m[4]}, true
	}
	return models.ParsedRow{}, false
}

// ParseRecord parses one line and normalizes its timestamp. Lines that do not
// match, or whose timestamp cannot be read, are reported as false.
func ParseRecord(line string) (models.Record, bool) {
	row, ok := ParseLine(line)
	if !ok {
		return models.Record{}, false
	}
	ts, ok := NormalizeTimestamp(row.Date, row.Time)
	if !ok {
		return models.Record{}, false
	}
	return models.Record{Timestamp: ts, Author: row.Author, Message: row.Message}, true
}

// ParseLines parses a slice of lines in order, skipping everything unusable.
func ParseLines(lines []string) []models.Record {
	out := make([]models.Record, 0, len(lines))
	for _, l := range lines {
		if rec, ok := ParseRecord(l); ok {
			out = append(out, rec)
		}
	}
	return out
}
