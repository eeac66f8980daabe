package models

import (
	"time"
)

// ParsedRow is the raw capture of one recognized chat line before its
// timestamp has been normalized.
type ParsedRow struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Author  string `json:"author"`
	Message string `json:"message"`
}

// Record is one timestamped, attributed chat message.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
}

// Day returns the calendar-day projection of the record timestamp.
func (r Record) Day() string {
	return r.Timestamp.Format("2006-01-02")
}

// JobStatus is the lifecycle state of an analysis job.
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusError      JobStatus = "error"
)

// Job tracks one asynchronous analysis request. Stored values are treated as
// immutable snapshots: a transition replaces the whole Job.
type Job struct {
	ID           string     `db:"id" json:"job_id"`
	Status       JobStatus  `db:"status" json:"status"`
	Result       *Bundle    `db:"result" json:"result,omitempty"`
	ErrorMessage string     `db:"error_message" json:"message,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time `db:"finished_at" json:"finished_at,omitempty"`
}

// KeywordCount is one entry of the keyword themes list.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Continuity describes the longest unbroken conversational run.
type Continuity struct {
	Duration string  `json:"duration"`
	Minutes  float64 `json:"minutes"`
}

// Bundle is the full set of metric outputs computed from one record table.
type Bundle struct {
	TotalMessages        int                `json:"total_messages"`
	Authors              []string           `json:"authors"`
	InitiationIndex      map[string]float64 `json:"initiation_index"`
	ReplyTimes           map[string]float64 `json:"reply_times"`
	EngagementBalance    string             `json:"engagement_balance"`
	SentimentTimeline    map[string]float64 `json:"sentiment_timeline"`
	SentimentVariability float64            `json:"sentiment_variability"`
	ContinuityIndex      Continuity         `json:"continuity_index"`
	LateActivity         map[string]int     `json:"late_activity"`
	EmojiUsage           map[string]int     `json:"emoji_usage"`
	CommunicationStyle   map[string]string  `json:"communication_style"`
	InteractionGaps      map[string]float64 `json:"interaction_gaps"`
	KeywordThemes        []KeywordCount     `json:"keyword_themes"`
	HarmonyScore         float64            `json:"harmony_score"`
	Overview             Overview           `json:"overview"`
}

// Overview carries the headline counters shown on the dashboard cards.
type Overview struct {
	TotalWords            int     `json:"total_words"`
	TotalEmojis           int     `json:"total_emojis"`
	SpanDays              int     `json:"span_days"`
	ActiveDays            int     `json:"active_days"`
	AvgMessagesPerDay     float64 `json:"avg_messages_per_day"`
	MostActiveDay         string  `json:"most_active_day"`
	MostActiveHour        int     `json:"most_active_hour"`
	MaxDailyMessages      int     `json:"max_daily_messages"`
	LongestMessageLength  int     `json:"longest_message_length"`
	ShortestMessageLength int     `json:"shortest_message_length"`
	GhostingIndex         int     `json:"ghosting_index"`
	LateNightPercent      int     `json:"late_night_percent"`
	AvgReplyMinutes       int     `json:"avg_reply_minutes"`
	OneSidedPercent       int     `json:"one_sided_percent"`
	TypingEnergy          int     `json:"typing_energy"`
	Dryness               int     `json:"dryness"`
	Attachments           int     `json:"attachments"`
	Questions             int     `json:"questions"`
	Laughs                int     `json:"laughs"`
	Overthinking          int     `json:"overthinking"`
	DeluluScore           int     `json:"delulu_score"`
	RelationshipVibe      string  `json:"relationship_vibe"`

	// EmojiBreakdown counts each distinct emoji across the whole chat.
	EmojiBreakdown map[string]int `json:"emoji_breakdown"`
}
