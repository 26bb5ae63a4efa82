package title

import "sync"

// campaignLocks serializes the check-generate-append critical section per
// campaign id, so two concurrent requests for the same campaign cannot both
// pass the similarity check against the same snapshot and append mutually
// similar titles. Campaigns lock independently; single-shot requests never
// touch it.
//
// The guarantee is in-process only: with multiple replicas the race window
// across instances remains.
type campaignLocks struct {
	mu    sync.Mutex
	locks map[string]*campaignLock
}

type campaignLock struct {
	mu   sync.Mutex
	refs int
}

func newCampaignLocks() *campaignLocks {
	return &campaignLocks{locks: make(map[string]*campaignLock)}
}

// Lock acquires the lock for a campaign and returns its unlock function.
// Entries are reference-counted and removed when the last holder releases,
// so the map does not grow with the lifetime set of campaign ids.
func (c *campaignLocks) Lock(campaignID string) (unlock func()) {
	c.mu.Lock()
	l, ok := c.locks[campaignID]
	if !ok {
		l = &campaignLock{}
		c.locks[campaignID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, campaignID)
		}
		c.mu.Unlock()
	}
}
