package storage

import (
	"fmt"
	"time"

	"decalls-stats/decalls"
)

// Snapshot is a point-in-time export of every UserStats account of a program.
type Snapshot struct {
	ProgramID string                   `json:"program_id"`
	TakenAt   time.Time                `json:"taken_at"`
	Records   []decalls.PortableRecord `json:"records"`
}

// NewSnapshot converts decoded records to their portable form.
func NewSnapshot(programID string, takenAt time.Time, records []*decalls.UserStats) *Snapshot {
	snapshot := &Snapshot{
		ProgramID: programID,
		TakenAt:   takenAt.UTC(),
		Records:   make([]decalls.PortableRecord, 0, len(records)),
	}
	for _, rec := range records {
		if rec != nil {
			snapshot.Records = append(snapshot.Records, rec.ToPortable())
		}
	}
	return snapshot
}

// UserStats parses the records back. One bad record fails the whole snapshot.
func (s *Snapshot) UserStats() ([]*decalls.UserStats, error) {
	out := make([]*decalls.UserStats, 0, len(s.Records))
	for i, rec := range s.Records {
		stats, err := decalls.FromPortable(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, stats)
	}
	return out, nil
}
