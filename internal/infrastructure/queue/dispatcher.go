package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/reelhouse/movie-catalog/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var errNotProcessed = errors.New("import was not processed")

type job struct {
	tmdbID int
	done   func(ports.ImportResult)
}

// Dispatcher fans import jobs out to a fixed set of workers. Jobs are sharded
// by external id so repeated ids land on the same worker and run in order:
// the second one then finds the first one's movie and is skipped.
type Dispatcher struct {
	workers  []chan job
	importer ports.Importer
	log      zerolog.Logger
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, importer ports.Importer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan job, numWorkers),
		importer: importer,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Stop once their queue is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for tmdbID. It blocks while
// that worker's queue is full and reports false if ctx ends first.
func (d *Dispatcher) Enqueue(ctx context.Context, tmdbID int, done func(ports.ImportResult)) bool {
	select {
	case d.workers[d.shardIndex(tmdbID)] <- job{tmdbID: tmdbID, done: done}:
		return true
	case <-ctx.Done():
		return false
	}
}

// Stop closes the queues and waits for the workers to exit. Enqueue must not
// be called afterwards.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		for _, ch := range d.workers {
			close(ch)
		}
	})
	d.wg.Wait()
}

// ImportAll runs one import per id and returns the results in input order.
// Ids left unprocessed because ctx ended are reported as failed.
func (d *Dispatcher) ImportAll(ctx context.Context, ids []int) []ports.ImportResult {
	results := make([]ports.ImportResult, len(ids))
	processed := make([]bool, len(ids))

	d.Start(ctx)
	for i, id := range ids {
		if !d.Enqueue(ctx, id, func(r ports.ImportResult) {
			results[i], processed[i] = r, true
		}) {
			break
		}
	}
	d.Stop()

	for i, id := range ids {
		if processed[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = errNotProcessed
		}
		results[i] = ports.ImportResult{TMDBID: id, Outcome: ports.ImportFailed, Err: err}
	}
	return results
}

// shardIndex maps an external id deterministically to a worker index.
func (d *Dispatcher) shardIndex(tmdbID int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.Itoa(tmdbID)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			res := d.importer.Import(ctx, j.tmdbID)
			if res.Err != nil {
				d.log.Debug().Err(res.Err).
					Int("tmdb_id", j.tmdbID).
					Int("worker_id", id).
					Msg("import job failed")
			}
			if j.done != nil {
				j.done(res)
			}
		}
	}
}
