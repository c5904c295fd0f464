package transfers

import "time"

// Transfer is an atomic balance movement between two accounts, immutable
// once committed.
type Transfer struct {
	ID        string
	From      string
	To        string
	Value     int64
	CreatedAt time.Time
}
