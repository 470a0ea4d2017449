package queue

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/groupcast/groupcast-api/internal/api/metrics"
	"github.com/groupcast/groupcast-api/internal/core/domain"
	"github.com/groupcast/groupcast-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ActivityDispatcher persists audit entries off the request path. Entries
// are sharded by actor so each actor's trail is written in submission
// order. A full worker channel drops the entry rather than blocking the
// request.
type ActivityDispatcher struct {
	workers []chan domain.ActivityLog
	repo    ports.ActivityRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewActivityDispatcher creates a dispatcher with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewActivityDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *ActivityDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ActivityDispatcher{
		workers: make([]chan domain.ActivityLog, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityLog, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their channels and
// exit when ctx is cancelled.
func (d *ActivityDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until all workers have exited after ctx cancellation.
func (d *ActivityDispatcher) Wait() {
	d.wg.Wait()
}

// Record implements ports.ActivityRecorder. It never blocks: when the
// responsible worker's channel is full the entry is dropped and counted.
func (d *ActivityDispatcher) Record(entry domain.ActivityLog) {
	idx := d.shardIndex(actorKey(entry))
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityWriteErrorsTotal.Inc()
		d.log.Warn().
			Str("action", entry.Action).
			Int("worker_id", idx).
			Msg("activity queue full, entry dropped")
	}
}

// actorKey identifies the actor an entry belongs to. Admin attribution wins
// when both ids are present so an operator's actions shard together.
func actorKey(entry domain.ActivityLog) string {
	if entry.AdminID != nil {
		return fmt.Sprintf("admin:%d", *entry.AdminID)
	}
	if entry.UserID != nil {
		return fmt.Sprintf("user:%d", *entry.UserID)
	}
	return "system"
}

func (d *ActivityDispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *ActivityDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityLog) {
	defer d.wg.Done()
	gauge := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			// Drain what is already queued before exiting.
			for {
				select {
				case entry := <-ch:
					d.insert(context.Background(), id, entry)
				default:
					gauge.Set(0)
					return
				}
			}
		case entry := <-ch:
			d.insert(ctx, id, entry)
			gauge.Set(float64(len(ch)))
		}
	}
}

func (d *ActivityDispatcher) insert(ctx context.Context, workerID int, entry domain.ActivityLog) {
	if err := d.repo.Insert(ctx, &entry); err != nil {
		metrics.ActivityWriteErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("action", entry.Action).
			Int("worker_id", workerID).
			Msg("activity write failed")
	}
}
