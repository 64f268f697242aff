package repository

import "time"

// stampCreated fills in creation timestamps the caller left unset.
func stampCreated(createdAt, updatedAt *time.Time) {
	if createdAt.IsZero() {
		*createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}
