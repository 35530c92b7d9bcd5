package models

import "time"

type ActivityType string

const (
	ActivityUpload       ActivityType = "upload"
	ActivityVerification ActivityType = "verification"
	ActivityAllocation   ActivityType = "allocation"
	ActivityCompliance   ActivityType = "compliance"
	ActivityUpdate       ActivityType = "update"
)

type ActivityStatus string

const (
	ActivityCompleted ActivityStatus = "completed"
	ActivityPending   ActivityStatus = "pending"
	ActivityFailed    ActivityStatus = "failed"
)

// Activity is one entry of the recent activity feed. Entries are never updated.
type Activity struct {
	ID          string         `json:"id"`
	Type        ActivityType   `json:"type"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	Status      ActivityStatus `json:"status"`
}
