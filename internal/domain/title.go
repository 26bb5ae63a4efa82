package domain

import "time"

// TitleRecord is one generated title persisted in a campaign queue.
// Records are append-only: they are never updated, only deleted by an
// operator clear or by the TTL sweep.
type TitleRecord struct {
	ID         int64
	CampaignID string
	LicenseID  int64
	Text       string
	CreatedAt  time.Time
}

// QueueStats summarizes the stored titles of one campaign queue.
// Count is 0 and both timestamps are nil when the queue is empty.
type QueueStats struct {
	Count        int
	FirstCreated *time.Time
	LastCreated  *time.Time
}
