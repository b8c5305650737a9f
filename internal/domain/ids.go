package domain

import (
	"fmt"
	"time"
)

// Identifier prefixes per collection.
const (
	UserIDPrefix    = "u"
	ShiftIDPrefix   = "s"
	SessionIDPrefix = "ts"
)

// NewID builds a "{prefix}-{unix millis}" identifier. Uniqueness depends on
// clock resolution, so callers holding the state bump the timestamp on a
// collision (see State.NextID).
func NewID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}
