package repository

import (
	"fmt"
	"time"

	"github.com/mdnahidul337/report-support/internal/chat"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportAccepted ReportStatus = "accepted"
	ReportRejected ReportStatus = "rejected"
)

// Report is one flag event awaiting or having received admin judgment.
// Reports are never deleted; terminal reports are kept for audit.
type Report struct {
	ID           string          `json:"id"`
	ReporterID   int64           `json:"reporter_id"`
	ReporterName string          `json:"reporter_name"`
	ReportedID   int64           `json:"reported_id"`
	ReportedName string          `json:"reported_name"`
	GroupID      int64           `json:"group_id"`
	GroupTitle   string          `json:"group_title"`
	Message      chat.MessageRef `json:"message"`
	Excerpt      string          `json:"excerpt,omitempty"`
	Status       ReportStatus    `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	ResolvedAt   *time.Time      `json:"resolved_at,omitempty"`
	ResolvedBy   int64           `json:"resolved_by,omitempty"`
	// AdminMessages are the notification messages sent to each admin,
	// edited in place once the report is resolved.
	AdminMessages []chat.MessageRef `json:"admin_messages,omitempty"`
}

func (r *Report) Terminal() bool {
	return r.Status == ReportAccepted || r.Status == ReportRejected
}

// UserCounters accumulates moderation counters for one user in one group.
// False-report counting is scoped per (group, user): abuse in one group must
// not leak restrictions into another.
type UserCounters struct {
	GroupID          int64          `json:"group_id"`
	UserID           int64          `json:"user_id"`
	FalseReportCount int            `json:"false_report_count"`
	SpamHits         map[string]int `json:"spam_hits,omitempty"`
	WindowStartedAt  time.Time      `json:"window_started_at"`
}

func CounterKey(groupID, userID int64) string {
	return fmt.Sprintf("%d:%d", groupID, userID)
}

// LinkEntry is one row of the admin-curated link registry. Numbers are
// admin-assigned and strictly increasing.
type LinkEntry struct {
	Number    int       `json:"number"`
	URL       string    `json:"url"`
	DateLabel string    `json:"date_label,omitempty"`
	AddedBy   int64     `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TemporaryMessage is a transient acknowledgement scheduled for deletion.
type TemporaryMessage struct {
	Message  chat.MessageRef `json:"message"`
	DeleteAt time.Time       `json:"delete_at"`
}
