package metrics

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/markdave123-py/delulu-meter/internal/models"
)

// Relationship vibe labels.
const (
	VibeInLove        = "in love"
	VibeOneSided      = "one sided"
	VibeSituationship = "situationship"
)

// The dashboard's late-night share counts hours 0 through 5, one hour
// wider than the per-author late activity window.
const (
	overviewLateStart = 0
	overviewLateEnd   = 5
)

var (
	attachmentRe   = regexp.MustCompile(`(?i)attached|image|video|omitted`)
	laughRe        = regexp.MustCompile(`(?i)lol|haha|😂`)
	overthinkingRe = regexp.MustCompile(`(?i)why|what if|overthink|\?`)
)

// Summarize computes the headline dashboard counters.
func Summarize(f *Frame, opts Options) models.Overview {
	recs := f.Table.Records
	total := len(recs)
	ov := models.Overview{EmojiBreakdown: make(map[string]int)}

	perDay := make(map[string]int)
	var days []string
	var perHour [24]int
	late, ghosts, chars := 0, 0, 0
	var replySum time.Duration
	replies := 0
	for i, r := range recs {
		ov.TotalWords += len(strings.Fields(r.Message))
		for _, c := range r.Message {
			if opts.Emoji.Contains(c) {
				ov.TotalEmojis++
				ov.EmojiBreakdown[string(c)]++
			}
		}
		l := utf8.RuneCountInString(r.Message)
		chars += l
		if l > ov.LongestMessageLength {
			ov.LongestMessageLength = l
		}
		if i == 0 || l < ov.ShortestMessageLength {
			ov.ShortestMessageLength = l
		}

		d := r.Day()
		if perDay[d] == 0 {
			days = append(days, d)
		}
		perDay[d]++
		h := r.Timestamp.Hour()
		perHour[h]++
		if inWindow(h, overviewLateStart, overviewLateEnd) {
			late++
		}
		if i > 0 {
			gap := r.Timestamp.Sub(recs[i-1].Timestamp)
			if gap > time.Hour {
				ghosts++
			}
			if gap > 0 {
				replySum += gap
				replies++
			}
		}

		if attachmentRe.MatchString(r.Message) {
			ov.Attachments++
		}
		if strings.Contains(r.Message, "?") {
			ov.Questions++
		}
		if laughRe.MatchString(r.Message) {
			ov.Laughs++
		}
		if overthinkingRe.MatchString(r.Message) {
			ov.Overthinking++
		}
	}

	ov.SpanDays = int(recs[total-1].Timestamp.Sub(recs[0].Timestamp) / (24 * time.Hour))
	ov.ActiveDays = len(days)
	ov.AvgMessagesPerDay = round(float64(total)/float64(len(days)), 1)
	for _, d := range days {
		if perDay[d] > ov.MaxDailyMessages {
			ov.MaxDailyMessages = perDay[d]
			ov.MostActiveDay = d
		}
	}
	for h, n := range perHour {
		if n > perHour[ov.MostActiveHour] {
			ov.MostActiveHour = h
		}
	}
	ov.GhostingIndex = ghosts * 100 / total
	ov.LateNightPercent = late * 100 / total
	if replies > 0 {
		ov.AvgReplyMinutes = int((replySum / time.Duration(replies)).Minutes())
	}
	ov.TypingEnergy = ov.TotalWords / total
	ov.Dryness = min(100, chars/total)

	ov.DeluluScore = min(100, int(float64(total)/50+float64(ov.TotalEmojis)*2))

	top := 0
	for _, n := range messageCounts(f.Table) {
		top = max(top, n)
	}
	ov.OneSidedPercent = top * 100 / total
	switch {
	case ov.DeluluScore > 80 && MeanPolarity(f.Polarity) > 0:
		ov.RelationshipVibe = VibeInLove
	case ov.OneSidedPercent > 70:
		ov.RelationshipVibe = VibeOneSided
	default:
		ov.RelationshipVibe = VibeSituationship
	}
	return ov
}
