package booking

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// errStaleAvailability marks a load whose result was discarded because a
// newer load for the same draft took over.
var errStaleAvailability = errors.New("availability result superseded by a newer request")

var errLoaderStopped = errors.New("availability loader stopped")

// LoadFunc fetches the slots of a draft date.
type LoadFunc func(ctx context.Context) ([]models.TimeSlot, error)

// CommitFunc stores a load result. It must return errStaleAvailability when
// token no longer matches the draft.
type CommitFunc func(ctx context.Context, token string, slots []models.TimeSlot, loadErr error) error

type loaderTask struct {
	token  string
	cancel context.CancelFunc
}

// AvailabilityLoader runs at most one availability load per draft key. A new
// Start for a key cancels the task in flight for it.
type AvailabilityLoader struct {
	timeout time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	tasks   map[string]*loaderTask
	stopped bool
	wg      sync.WaitGroup
}

func NewAvailabilityLoader(timeout time.Duration, logger *zap.Logger) *AvailabilityLoader {
	return &AvailabilityLoader{
		timeout: timeout,
		log:     logger,
		tasks:   make(map[string]*loaderTask),
	}
}

// Start launches a load for key and returns a channel receiving its outcome
// once. The task outlives the cancellation of parent so a client hanging up
// does not leave the draft loading forever.
func (l *AvailabilityLoader) Start(parent context.Context, key, token string, load LoadFunc, commit CommitFunc) <-chan error {
	requestID, _ := parent.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	result := make(chan error, 1)

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		result <- errLoaderStopped
		return result
	}
	if previous, ok := l.tasks[key]; ok {
		l.log.Info("AvailabilityLoader.Start cancelling previous load",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTokenKey, previous.token),
		)
		previous.cancel()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), l.timeout)
	task := &loaderTask{token: token, cancel: cancel}
	l.tasks[key] = task
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		defer cancel()

		slots, err := load(ctx)

		if !l.isCurrent(key, task) {
			l.log.Info("AvailabilityLoader discarded stale load",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTokenKey, token),
			)
			result <- errStaleAvailability
			return
		}

		commitCtx, commitCancel := context.WithTimeout(context.WithoutCancel(parent), l.timeout)
		commitErr := commit(commitCtx, token, slots, err)
		commitCancel()
		l.finish(key, task)

		switch {
		case commitErr != nil:
			result <- commitErr
		default:
			result <- err
		}
	}()

	return result
}

func (l *AvailabilityLoader) isCurrent(key string, task *loaderTask) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tasks[key] == task
}

func (l *AvailabilityLoader) finish(key string, task *loaderTask) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tasks[key] == task {
		delete(l.tasks, key)
	}
}

// Cancel aborts the load in flight for key, if any.
func (l *AvailabilityLoader) Cancel(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if task, ok := l.tasks[key]; ok {
		task.cancel()
		delete(l.tasks, key)
	}
}

// Pending reports how many loads are in flight.
func (l *AvailabilityLoader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Stop cancels every load and waits for their goroutines to return. Starts
// after Stop fail with errLoaderStopped.
func (l *AvailabilityLoader) Stop() {
	l.mu.Lock()
	l.stopped = true
	for key, task := range l.tasks {
		task.cancel()
		delete(l.tasks, key)
	}
	l.mu.Unlock()
	l.wg.Wait()
}
