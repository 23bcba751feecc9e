package models

import (
	"strconv"
	"time"
)

// TransferState tracks a transfer through its one-way lifecycle. Records
// only move forward; an id is never re-stored once consumed.
type TransferState int

const (
	StatePending  TransferState = iota // stub written, no bytes yet
	StateStored                        // bytes and metadata present
	StateConsumed                      // object deleted; terminal
)

const stubSuffix = ".stub"

// Transfer is the logical record behind an upload/download pair. It is
// realized as two store keys: a pending stub carrying the authoritative
// creation time, and the final object holding the bytes.
type Transfer struct {
	ID        string
	State     TransferState
	CreatedAt int64 // milliseconds since epoch, set when the stub is written
	Filename  string
}

func (t Transfer) StubKey() string { return t.ID + stubSuffix }

func (t Transfer) ObjectKey() string { return t.ID }

// Expired reports whether the record's TTL has elapsed at the given instant.
// A zero CreatedAt means the creation time was lost along the way; such
// records never expire and are served as-is.
func (t Transfer) Expired(now time.Time, ttlSeconds int64) bool {
	return t.CreatedAt > 0 && now.UnixMilli() > t.CreatedAt+ttlSeconds*1000
}

// ParseCreatedAt reads the millisecond timestamp stored in object metadata.
// Malformed or missing values come back as zero.
func ParseCreatedAt(s string) int64 {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms < 0 {
		return 0
	}
	return ms
}

// FormatCreatedAt renders a timestamp the way ParseCreatedAt expects it.
func FormatCreatedAt(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
