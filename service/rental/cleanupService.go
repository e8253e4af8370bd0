package rental

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	rentalrepo "github.com/Maksim124512M/LibraFlow/repository/rental"
)

// Cleaner is the reaper's single entry point. The bulk delete is
// idempotent, so overlapping runs only cost a no-op statement.
type Cleaner interface {
	ReclaimExpired(ctx context.Context) (int64, error)
}

type cleaner struct {
	r rentalrepo.Repo
}

func NewCleaner(r rentalrepo.Repo) Cleaner { return &cleaner{r: r} }

func (c *cleaner) ReclaimExpired(ctx context.Context) (int64, error) {
	return c.r.DeleteExpired(ctx, time.Now().UTC())
}

// StartReaper schedules the cleaner on the given cron spec. Failures are
// logged and the next run proceeds.
func StartReaper(c Cleaner, spec string, log *slog.Logger) (*cron.Cron, error) {
	cr := cron.New()
	_, err := cr.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		removed, err := c.ReclaimExpired(ctx)
		if err != nil {
			log.Error("rental reaper run failed", "err", err)
			return
		}
		if removed > 0 {
			log.Info("expired rentals reclaimed", "count", removed)
		}
	})
	if err != nil {
		return nil, err
	}
	cr.Start()
	return cr, nil
}
