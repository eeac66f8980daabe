package metrics

import (
	"strings"

	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/core/emoji"
)

// Communication style labels and modifiers.
const (
	StyleConcise     = "concise"
	StyleBalanced    = "balanced"
	StyleElaborative = "elaborative"
	ModInquisitive   = "inquisitive"
	ModExpressive    = "expressive"
)

// authorProfile holds the per-author aggregates gathered in one pass.
type authorProfile struct {
	messages  int
	words     int
	questions int
	emojis    int
}

func profiles(t *chatlog.Table, tbl *emoji.Table) map[string]*authorProfile {
	out := make(map[string]*authorProfile)
	for _, r := range t.Records {
		p, ok := out[r.Author]
		if !ok {
			p = &authorProfile{}
			out[r.Author] = p
		}
		p.messages++
		p.words += len(strings.Fields(r.Message))
		p.questions += strings.Count(r.Message, "?")
		p.emojis += tbl.Count(r.Message)
	}
	return out
}

// EmojiUsage sums emoji code points per author. Every author is present.
func EmojiUsage(t *chatlog.Table, tbl *emoji.Table) map[string]int {
	out := make(map[string]int)
	for a, p := range profiles(t, tbl) {
		out[a] = p.emojis
	}
	return out
}

// CommunicationStyle classifies each author by mean words per message and
// appends modifiers for frequent questions or emoji.
func CommunicationStyle(t *chatlog.Table, opts Options) map[string]string {
	out := make(map[string]string)
	for a, p := range profiles(t, opts.Emoji) {
		n := float64(p.messages)
		avg := float64(p.words) / n

		style := StyleBalanced
		switch {
		case avg < opts.ConciseWords:
			style = StyleConcise
		case avg > opts.ElaborativeWords:
			style = StyleElaborative
		}
		if float64(p.questions) > n*opts.QuestionRate {
			style += " + " + ModInquisitive
		}
		if float64(p.emojis) > n*opts.EmojiRate {
			style += " + " + ModExpressive
		}
		out[a] = style
	}
	return out
}
