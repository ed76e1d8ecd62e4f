package source

import (
	"context"
	"fmt"
	"time"

	"github.com/nik45114/upkeep/internal/sitekey"
	"github.com/nik45114/upkeep/types"
)

// DutyEntry is one raw duty-log record: a staff member worked a shift at a
// site on a date.
type DutyEntry struct {
	StaffID string    `json:"staffId" bson:"staff_id"`
	Site    string    `json:"site" bson:"site"`
	Date    time.Time `json:"date" bson:"date"`
}

// DutyLogReader is the contract for the locally logged duty table.
type DutyLogReader interface {
	// Entries returns duty records with from <= Date <= to.
	Entries(ctx context.Context, from, to time.Time) ([]DutyEntry, error)
}

// DutyLog implements types.ShiftWeightSource by aggregating the local duty
// log over a trailing window. It is the degraded fallback used when the
// live grid is unavailable.
type DutyLog struct {
	reader     DutyLogReader
	windowDays int
	sites      *sitekey.Normalizer
}

var _ types.ShiftWeightSource = (*DutyLog)(nil)

// NewDutyLog creates the duty-log fallback source.
//
// Parameters:
//   - reader: Local duty-log collaborator
//   - windowDays: Trailing window length in days (values < 1 become 30)
//   - siteAliases: Canonical site key -> accepted alternate spellings
//
// Returns:
//   - *DutyLog: Initialized fallback source
func NewDutyLog(reader DutyLogReader, windowDays int, siteAliases map[string][]string) *DutyLog {
	if windowDays < 1 {
		windowDays = 30
	}

	return &DutyLog{
		reader:     reader,
		windowDays: windowDays,
		sites:      sitekey.New(siteAliases),
	}
}

// ShiftWeights aggregates duty entries over the cycle's trailing window.
//
// The window ends on the cycle's last day and reaches back windowDays, so
// the same cycle always aggregates the same records regardless of when the
// run executes. Site names are normalized to canonical keys before
// counting; an entry with a blank site is dropped.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - cycle: Cycle being allocated
//
// Returns:
//   - types.ShiftWeights: Per (staff, canonical site) shift counts
//   - error: Wrapped ErrSourceUnavailable when the log is unreadable
func (d *DutyLog) ShiftWeights(ctx context.Context, cycle types.Cycle) (types.ShiftWeights, error) {
	to := cycle.End()
	from := to.AddDate(0, 0, -(d.windowDays - 1))

	entries, err := d.reader.Entries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: duty log: %v", types.ErrSourceUnavailable, err)
	}

	weights := make(types.ShiftWeights)
	for _, entry := range entries {
		site := d.sites.Canonical(entry.Site)
		if site == "" || entry.StaffID == "" {
			continue
		}
		weights[types.WeightKey{StaffID: entry.StaffID, Site: site}]++
	}

	return weights, nil
}
