package backup

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// defaultSnapshotInterval is used when no interval is configured.
const defaultSnapshotInterval = 6 * time.Hour

// Runner periodically snapshots the dataset in addition to the event-driven
// snapshots taken on order creation, confirmation and reset.
type Runner struct {
	db       *gorm.DB
	interval time.Duration
}

// NewRunner builds a periodic snapshot runner.
func NewRunner(db *gorm.DB, interval time.Duration) *Runner {
	if db == nil {
		return nil
	}
	if interval <= 0 {
		interval = defaultSnapshotInterval
	}
	return &Runner{db: db, interval: interval}
}

// Start launches the snapshot loop in a background goroutine.
func (r *Runner) Start(ctx context.Context) {
	if r == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go r.run(ctx)
	log.Infof("backup runner started (interval=%s)", r.interval)
}

func (r *Runner) run(ctx context.Context) {
	for {
		timer := time.NewTimer(r.interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}
		TrySnapshot(ctx, r.db)
	}
}
