// ABOUTME: SleepRecord model for sleep interval tracking.
// ABOUTME: Duration is derived from start/end and corrects overnight wraparound.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SleepRecord represents one sleep session on a calendar day.
// Equality is by ID. The persisted form stores only the timestamps;
// duration is recomputed on every read.
type SleepRecord struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// NewSleepRecord creates a SleepRecord with a generated UUID.
func NewSleepRecord(date, start, end time.Time) *SleepRecord {
	return &SleepRecord{
		ID:        uuid.New(),
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

// RecordID returns the record's identifier.
func (s *SleepRecord) RecordID() uuid.UUID { return s.ID }

// Duration returns the session length in hours. A negative raw interval
// means the session crossed midnight on the same clock face, so 24 hours
// are added. Always >= 0.
func (s *SleepRecord) Duration() float64 {
	hours := s.EndTime.Sub(s.StartTime).Hours()
	if hours < 0 {
		hours += 24
	}
	return hours
}
