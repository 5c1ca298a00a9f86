package sheets

import (
	"context"
	"time"

	"github.com/farmcoop/order-service/internal/obs"
)

const (
	mutexSheetName    = "Mutex"
	mutexAppendAnchor = "A1"
	// mutexLockedRange is the designated slot directly after the header
	// row. Whoever's append lands here holds the lock.
	mutexLockedRange = "A2:B2"

	defaultRetryInterval = 500 * time.Millisecond
	defaultWaitBudget    = 2500 * time.Millisecond
)

// Mutex is an advisory lock over the spreadsheet, built from append and
// clear only. Appends against the same anchor are serialized by the Sheets
// backend and each lands in the first free row, so racing contenders get
// distinct rows and exactly one of them gets the designated slot. Losers
// learn they lost from the range their own append reports; they never read
// the sheet to find out, which would itself race.
type Mutex struct {
	sheet
	retryInterval time.Duration
	waitBudget    time.Duration
}

// NewMutex creates a Mutex over the named spreadsheet's Mutex sheet.
// Non-positive retryInterval or waitBudget select the defaults.
func NewMutex(client ValuesClient, spreadsheetID string, retryInterval, waitBudget time.Duration) *Mutex {
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}
	if waitBudget <= 0 {
		waitBudget = defaultWaitBudget
	}
	return &Mutex{
		sheet:         sheet{client: client, spreadsheetID: spreadsheetID, name: mutexSheetName},
		retryInterval: retryInterval,
		waitBudget:    waitBudget,
	}
}

// Lock acquires the lock for holderID, retrying every retryInterval until
// the wait budget is exhausted, at which point it fails with the
// spreadsheetLocked error. Transport errors propagate unchanged.
func (m *Mutex) Lock(ctx context.Context, holderID string) error {
	deadline := time.Now().Add(m.waitBudget)
	for {
		ok, err := m.tryLock(ctx, holderID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return errSpreadsheetLocked()
		}
		timer := time.NewTimer(m.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Unlock clears the designated slot unconditionally. The lock is advisory:
// callers must unlock exactly once per successful Lock, on every exit path.
func (m *Mutex) Unlock(ctx context.Context) error {
	return m.clear(ctx, mutexLockedRange)
}

func (m *Mutex) tryLock(ctx context.Context, holderID string) (bool, error) {
	rng, err := m.append(ctx, mutexAppendAnchor, []any{holderID, time.Now().UTC().Format(time.RFC3339)})
	if err != nil {
		return false, err
	}
	if rng == mutexLockedRange {
		return true, nil
	}
	// Landed below the slot: somebody else holds the lock. Clean up our
	// own row so it cannot be mistaken for a holder later.
	if err := m.clear(ctx, rng); err != nil {
		return false, err
	}
	obs.Logger.Info("mutex_contended", "holder_id", holderID, "landed", rng)
	return false, nil
}
