package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/kodbank/kodbank-api/internal/api/metrics"
	"github.com/kodbank/kodbank-api/internal/core/domain"
	"github.com/kodbank/kodbank-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// AuditSink persists a single audit entry. Satisfied by the mongo ledger
// repository.
type AuditSink interface {
	AppendAudit(ctx context.Context, accountID int64, t domain.TransactionType, amount int64) error
}

// Recorder routes audit entries to a fixed set of workers sharded by account
// ID, guaranteeing that entries for the same account are persisted in the
// order they were recorded. Entries for different accounts may interleave.
type Recorder struct {
	workers []chan ports.AuditEntry
	sink    AuditSink
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, sink AuditSink, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan ports.AuditEntry, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan ports.AuditEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record sends an entry to the worker responsible for its account. The call
// is non-blocking up to channelBuffer capacity.
func (r *Recorder) Record(e ports.AuditEntry) {
	idx := r.shardIndex(e.AccountID)
	r.workers[idx] <- e
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
}

// shardIndex maps an account ID deterministically to a worker index.
func (r *Recorder) shardIndex(accountID int64) int {
	if accountID < 0 {
		accountID = -accountID
	}
	return int(accountID % int64(len(r.workers)))
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan ports.AuditEntry) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := r.sink.AppendAudit(ctx, e.AccountID, e.Type, e.Amount); err != nil {
				r.log.Error().Err(err).
					Int64("uid", e.AccountID).
					Int("worker_id", id).
					Msg("audit entry persistence failed")
			}
		}
	}
}
