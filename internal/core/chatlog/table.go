package chatlog

import (
	"errors"
	"slices"
	"strings"

	"github.com/markdave123-py/delulu-meter/internal/models"
)

// ErrNoData is returned when no line of an upload survived parsing.
var ErrNoData = errors.New("could not parse chat: please upload a valid WhatsApp export")

// DefaultMaxLines bounds how many lines of one upload are looked at.
const DefaultMaxLines = 5000

// Table is an ordered, non-empty sequence of records sorted by timestamp.
// It is read-only once built.
type Table struct {
	Records []models.Record
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// Authors returns the distinct authors in order of first appearance.
func (t *Table) Authors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records {
		if !seen[r.Author] {
			seen[r.Author] = true
			out = append(out, r.Author)
		}
	}
	return out
}

// Messages returns every message text in table order.
func (t *Table) Messages() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Message
	}
	return out
}

// BuildTable concatenates batches in the given order and sorts the result by
// timestamp. The sort is stable, so records sharing a timestamp keep their
// input order. An empty result yields ErrNoData.
func BuildTable(batches ...[]models.Record) (*Table, error) {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	if n == 0 {
		return nil, ErrNoData
	}

	records := make([]models.Record, 0, n)
	for _, b := range batches {
		records = append(records, b...)
	}
	slices.SortStableFunc(records, func(a, b models.Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return &Table{Records: records}, nil
}

// DecodeLossy converts raw upload bytes to text, dropping invalid UTF-8.
func DecodeLossy(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// SplitLines splits text on newlines and keeps at most maxLines lines.
// A non-positive maxLines keeps everything.
func SplitLines(text string, maxLines int) []string {
	lines := strings.Split(text, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// Parse runs the whole single-threaded path: decode, split, parse, sort.
func Parse(data []byte, maxLines int) (*Table, error) {
	lines := SplitLines(DecodeLossy(data), maxLines)
	return BuildTable(ParseLines(lines))
}
