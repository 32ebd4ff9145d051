package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup or update targets a record id that
// does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// Layout for collection timestamps: RFC3339 UTC with millisecond precision.
// Timestamps in this format sort lexically in chronological order, which the
// list operations rely on.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func newID(prefix string) string {
	return prefix + uuid.New().String()
}

func timestamp() string {
	return time.Now().UTC().Format(timeLayout)
}
