package domain

import (
	"strings"
	"time"
)

// Preferences holds per-profile UI preferences.
type Preferences struct {
	Language Language `json:"language"`
	DarkMode bool     `json:"isDarkMode"`
}

// DefaultPreferences is what a fresh profile starts with.
func DefaultPreferences() Preferences {
	return Preferences{Language: LanguageEN, DarkMode: false}
}

// HistoryRecord is one completed scan. Never mutated after creation.
type HistoryRecord struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Plant       string   `json:"plant"`
	Diagnosis   string   `json:"diagnosis"`
	Confidence  int      `json:"confidence"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Symptoms    []string `json:"symptoms"`
	Treatment   []string `json:"treatment"`
	Prevention  []string `json:"prevention"`
}

// HistoryDraft is the caller-supplied part of a HistoryRecord; the store
// assigns ID and Date.
type HistoryDraft struct {
	Plant       string
	Diagnosis   string
	Confidence  int
	Image       string
	Description string
	Symptoms    []string
	Treatment   []string
	Prevention  []string
}

// TrackerItem is an in-progress treatment regimen with a daily dose gate.
type TrackerItem struct {
	ID       int64  `json:"id"`
	Plant    string `json:"plant"`
	Issue    string `json:"issue"`
	Progress int    `json:"progress"`
	Severity string `json:"severity"`
	Cure     string `json:"cure"`
	Schedule string `json:"schedule"`
	IsDone   bool   `json:"isDone"`
}

// MaxProgress is the progress value at which a plant counts as healed.
const MaxProgress = 100

// Healed reports whether the regimen is complete.
func (t TrackerItem) Healed() bool { return t.Progress >= MaxProgress }

// DisplaySeverity returns the label shown for the item.
func (t TrackerItem) DisplaySeverity() string {
	if t.Healed() {
		return SeverityFullyHealed
	}
	return t.Severity
}

// CureSteps splits the cure text into bullet points: sentences separated by
// ". " or newlines, blanks dropped, each step ending with a period.
func (t TrackerItem) CureSteps() []string {
	return SplitSentences(t.Cure)
}

// SplitSentences segments free text into period-terminated steps.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var steps []string
	for _, line := range strings.Split(text, "\n") {
		for _, part := range strings.Split(line, ". ") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !strings.HasSuffix(part, ".") {
				part += "."
			}
			steps = append(steps, part)
		}
	}
	return steps
}

// TrackerDraft is the caller-supplied part of a TrackerItem.
type TrackerDraft struct {
	Plant    string
	Issue    string
	Progress int
	Severity string
	Cure     string
	Schedule string
	IsDone   bool
}

// TrackerUpdate is a shallow merge patch; nil fields are left untouched.
type TrackerUpdate struct {
	Plant    *string
	Issue    *string
	Progress *int
	Severity *string
	Cure     *string
	Schedule *string
	IsDone   *bool
}

// Apply merges the non-nil fields of u into item.
func (u TrackerUpdate) Apply(item TrackerItem) TrackerItem {
	if u.Plant != nil {
		item.Plant = *u.Plant
	}
	if u.Issue != nil {
		item.Issue = *u.Issue
	}
	if u.Progress != nil {
		item.Progress = *u.Progress
	}
	if u.Severity != nil {
		item.Severity = *u.Severity
	}
	if u.Cure != nil {
		item.Cure = *u.Cure
	}
	if u.Schedule != nil {
		item.Schedule = *u.Schedule
	}
	if u.IsDone != nil {
		item.IsDone = *u.IsDone
	}
	return item
}

// ExpertReply is an optional nested reply on a community post.
type ExpertReply struct {
	Author  string `json:"author"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CommunityPost is a forum post. Never edited or deleted.
type CommunityPost struct {
	ID          int64        `json:"id"`
	Author      string       `json:"author"`
	Role        string       `json:"role"`
	Time        string       `json:"time"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Tag         string       `json:"tag"`
	Likes       int          `json:"likes"`
	Replies     int          `json:"replies"`
	ExpertReply *ExpertReply `json:"expertReply"`
}

// PostTimeJustNow is the creation label of every user-created post.
const PostTimeJustNow = "Just now"

// PostDraft is the caller-supplied part of a CommunityPost.
type PostDraft struct {
	Author  string
	Role    string
	Title   string
	Content string
	Tag     string
}

// StateEntry is one persisted key of a profile, as stored by a backend.
type StateEntry struct {
	Key       string    `json:"key" db:"key"`
	Value     []byte    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
