package metrics

import (
	"math"
	"strings"
)

// SentimentTimeline returns the mean polarity per calendar day.
func SentimentTimeline(f *Frame) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, r := range f.Table.Records {
		d := r.Day()
		sums[d] += f.Polarity[i]
		counts[d]++
	}
	out := make(map[string]float64, len(sums))
	for d, s := range sums {
		out[d] = round(s/float64(counts[d]), 3)
	}
	return out
}

// SentimentVariability is the sample standard deviation of the polarities.
// Fewer than two values have no spread and yield 0.
func SentimentVariability(polarity []float64) float64 {
	n := len(polarity)
	if n < 2 {
		return 0
	}
	mean := MeanPolarity(polarity)
	var ss float64
	for _, p := range polarity {
		ss += (p - mean) * (p - mean)
	}
	return round(math.Sqrt(ss/float64(n-1)), 3)
}

// MeanPolarity returns the arithmetic mean, or 0 for no values.
func MeanPolarity(polarity []float64) float64 {
	if len(polarity) == 0 {
		return 0
	}
	var s float64
	for _, p := range polarity {
		s += p
	}
	return s / float64(len(polarity))
}

// HarmonyScore averages a balance indicator, a reply-speed indicator and the
// mean sentiment mapped to [0, 1], and scales the result to 0..100.
//
// balance: 1 when balanced, 0.5 otherwise (including too few authors).
// reply:   1 when the mean of reply times is under fastReply minutes, 0.6
// when slower, 0.5 when nobody ever replied.
func HarmonyScore(balance string, replies map[string]float64, meanSentiment, fastReply float64) float64 {
	balanceScore := 0.5
	if strings.EqualFold(balance, Balanced) {
		balanceScore = 1
	}

	replyScore := 0.5
	if len(replies) > 0 {
		var s float64
		for _, v := range replies {
			s += v
		}
		replyScore = 0.6
		if s/float64(len(replies)) < fastReply {
			replyScore = 1
		}
	}

	sentimentScore := (max(-1, min(1, meanSentiment)) + 1) / 2
	return round((balanceScore+replyScore+sentimentScore)/3*100, 1)
}
