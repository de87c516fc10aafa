// Package orchestrator runs the pick clock: a scheduler loop sleeps until the
// soonest deadline across in-progress drafts and hands expired drafts to a
// worker pool for autopick.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/warroomhq/warroom/go/internal/apperrors"
	"github.com/warroomhq/warroom/go/internal/draft/draft"
	"github.com/warroomhq/warroom/go/internal/models"
)

// Clock is the interface we use for time operations.
// In production, use clockwork.NewRealClock(). In tests, a FakeClock.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) clockwork.Timer
}

// DraftApp is the slice of draft lifecycle logic the scheduler needs.
type DraftApp interface {
	FetchNextDeadline(ctx context.Context) (*draft.NextDeadline, error)
	FetchDraftsDueForPick(ctx context.Context, limit int32) ([]uuid.UUID, error)
	SystemPause(ctx context.Context, draftID uuid.UUID, reason string) (*models.Draft, error)
}

// PickApp commits autopicks for expired deadlines.
type PickApp interface {
	Autopick(ctx context.Context, draftID uuid.UUID) (*models.DraftPick, error)
}

type Orchestrator struct {
	drafts     DraftApp
	picks      PickApp
	batchSize  int32 // how many due drafts to claim at once
	clock      Clock
	wakeCh     chan struct{}
	instanceID string // unique ID for this scheduler instance

	// Worker pool configuration
	numWorkers int
	workCh     chan uuid.UUID

	// Track in-flight work to prevent duplicate processing
	inFlight   map[uuid.UUID]bool
	inFlightMu sync.Mutex
}

// NewOrchestrator creates a new draft orchestrator with worker pool.
func NewOrchestrator(drafts DraftApp, picks PickApp, batchSize int32, clock Clock) *Orchestrator {
	numWorkers := 10
	return &Orchestrator{
		drafts:     drafts,
		picks:      picks,
		batchSize:  batchSize,
		clock:      clock,
		wakeCh:     make(chan struct{}, 1),
		instanceID: uuid.New().String()[:8], // short ID for logging

		numWorkers: numWorkers,
		workCh:     make(chan uuid.UUID, numWorkers*2), // Buffer to prevent blocking
		inFlight:   make(map[uuid.UUID]bool),
	}
}

// Wake signals the scheduler that a deadline may have changed. Called after
// any operation that arms or re-arms a pick clock.
func (o *Orchestrator) Wake() {
	select {
	case o.wakeCh <- struct{}{}:
	default:
	}
}

// RunScheduler loops forever, sleeping until the next deadline and firing timeouts.
func (o *Orchestrator) RunScheduler(ctx context.Context) error {
	log.Info().Str("instance", o.instanceID).Int("workers", o.numWorkers).Msg("scheduler started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	for i := 0; i < o.numWorkers; i++ {
		wg.Add(1)
		go o.worker(workerCtx, &wg, i)
	}

	defer func() {
		log.Info().Str("instance", o.instanceID).Msg("shutting down workers")
		cancelWorkers()
		close(o.workCh)
		wg.Wait()
		log.Info().Str("instance", o.instanceID).Msg("all workers shut down")
	}()

	timer := o.clock.NewTimer(0)
	defer timer.Stop()

	const idlePollDuration = 5 * time.Second
	retryCount := 0
	const maxRetries = 3

	for {
		// Drain wake channel to prevent tight loops
		select {
		case <-o.wakeCh:
			log.Debug().Str("instance", o.instanceID).Msg("drained wake channel")
		default:
		}

		nd, err := o.drafts.FetchNextDeadline(ctx)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// No drafts in progress; idle with timer reuse
				timer.Reset(idlePollDuration)
				select {
				case <-timer.Chan():
					continue
				case <-ctx.Done():
					log.Info().Str("instance", o.instanceID).Msg("shutdown during idle (no drafts)")
					return nil
				case <-o.wakeCh:
					continue
				}
			}

			retryCount++
			if retryCount <= maxRetries {
				log.Error().
					Err(err).
					Int("retry", retryCount).
					Str("instance", o.instanceID).
					Msg("error fetching next deadline, retrying")
				timer.Reset(time.Second * time.Duration(retryCount))
				select {
				case <-timer.Chan():
					continue
				case <-ctx.Done():
					return nil
				}
			}
			log.Error().Err(err).Str("instance", o.instanceID).Msg("error fetching next deadline after retries")
			return err
		}
		retryCount = 0

		if nd.Deadline == nil {
			// Clockless draft in progress; nothing to schedule
			timer.Reset(idlePollDuration)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				log.Info().Str("instance", o.instanceID).Msg("shutdown during idle (no deadline)")
				return nil
			case <-o.wakeCh:
				continue
			}
		}

		wait := nd.Deadline.Sub(o.clock.Now())
		if wait > 0 {
			timer.Reset(wait)
			select {
			case <-timer.Chan():
				log.Info().Str("instance", o.instanceID).Msg("timer fired, fetching due drafts")
			case <-ctx.Done():
				log.Info().Str("instance", o.instanceID).Msg("shutdown during wait")
				return nil
			case <-o.wakeCh:
				log.Debug().Str("instance", o.instanceID).Msg("woken up early, new sooner deadline")
				continue
			}
		}

		due, err := o.drafts.FetchDraftsDueForPick(ctx, o.batchSize)
		if err != nil {
			log.Error().Err(err).Str("instance", o.instanceID).Msg("error fetching due drafts")
			timer.Reset(time.Second)
			select {
			case <-timer.Chan():
				continue
			case <-ctx.Done():
				return nil
			}
		}

		if len(due) > 0 {
			log.Info().
				Int("count_due", len(due)).
				Int32("batch_size", o.batchSize).
				Str("instance", o.instanceID).
				Msg("processing due drafts")

			for _, draftID := range due {
				o.inFlightMu.Lock()
				if o.inFlight[draftID] {
					o.inFlightMu.Unlock()
					log.Debug().Str("draft_id", draftID.String()).Str("instance", o.instanceID).Msg("skipping draft already in flight")
					continue
				}
				o.inFlight[draftID] = true
				o.inFlightMu.Unlock()

				select {
				case <-ctx.Done():
					o.inFlightMu.Lock()
					delete(o.inFlight, draftID)
					o.inFlightMu.Unlock()
					log.Info().Str("instance", o.instanceID).Msg("shutdown while queueing timeouts")
					return nil
				case o.workCh <- draftID:
					log.Debug().Str("draft_id", draftID.String()).Str("instance", o.instanceID).Msg("queued timeout for worker")
				}
			}
		}
	}
}

// handleTimeout fires an autopick for an expired deadline. Lost races surface
// as ErrStaleWrite from the commit and are no-ops here; an exhausted player
// pool pauses the draft rather than spinning.
func (o *Orchestrator) handleTimeout(ctx context.Context, draftID uuid.UUID) error {
	log.Info().Str("draft_id", draftID.String()).Msg("auto-pick timeout firing")

	_, err := o.picks.Autopick(ctx, draftID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrStaleWrite):
			log.Debug().Str("draft_id", draftID.String()).Msg("autopick lost race, pick already committed")
			return nil
		case errors.Is(err, apperrors.ErrNotFound):
			log.Warn().Str("draft_id", draftID.String()).Msg("no available players, pausing draft")
			if _, perr := o.drafts.SystemPause(ctx, draftID, "player pool exhausted"); perr != nil {
				return perr
			}
			return nil
		default:
			return err
		}
	}

	o.Wake()
	return nil
}

// worker processes draft timeouts from the work channel
func (o *Orchestrator) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	log.Info().
		Str("instance", o.instanceID).
		Int("worker_id", workerID).
		Msg("worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().
				Str("instance", o.instanceID).
				Int("worker_id", workerID).
				Msg("worker shutting down")
			return
		case draftID, ok := <-o.workCh:
			if !ok {
				return
			}

			if err := o.handleTimeout(ctx, draftID); err != nil {
				log.Error().
					Err(err).
					Str("draft_id", draftID.String()).
					Str("instance", o.instanceID).
					Int("worker_id", workerID).
					Msg("worker timeout handling failed")
			}

			// Clean up in-flight tracking regardless of success/failure
			o.inFlightMu.Lock()
			delete(o.inFlight, draftID)
			o.inFlightMu.Unlock()
		}
	}
}
