package metrics

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

// asciiPunct strips the ASCII punctuation characters.
var asciiPunct = strings.NewReplacer(func() []string {
	const punct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	var pairs []string
	for _, c := range punct {
		pairs = append(pairs, string(c), "")
	}
	return pairs
}()...)

// KeywordThemes returns the n most frequent words longer than three
// characters across all messages. Ties keep first-occurrence order.
func KeywordThemes(t *chatlog.Table, n int) []models.KeywordCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range t.Records {
		text := asciiPunct.Replace(strings.ToLower(r.Message))
		for _, w := range strings.Fields(text) {
			if utf8.RuneCountInString(w) <= 3 {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return counts[b] - counts[a]
	})
	if n >= 0 && len(order) > n {
		order = order[:n]
	}

	out := make([]models.KeywordCount, len(order))
	for i, w := range order {
		out[i] = models.KeywordCount{Word: w, Count: counts[w]}
	}
	return out
}
