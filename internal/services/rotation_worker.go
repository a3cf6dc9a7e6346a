package services

import (
	"log"
	"sync"
	"time"

	"caloria/internal/repository"
	"caloria/internal/utils"
)

// RotationWorker runs the daily steady-state sweep: every user whose
// active period has lapsed gets that period completed and a successor
// inserted with the budget carried forward, then a fresh metric snapshot
// and the guarded daily overage distribution. It also serves one-off
// batch runs triggered by the scheduled job endpoint.
type RotationWorker struct {
	periodRepo   repository.WeeklyPeriodRepository
	manager      *PeriodManager
	recalculator *Recalculator
	distributor  *OverageDistributor

	jobQueue    chan rotationJob
	workerCount int
	interval    time.Duration
	stopChan    chan struct{}
	wg          sync.WaitGroup
	running     bool
	mu          sync.RWMutex
}

type rotationJob struct {
	userID uint
	asOf   time.Time
}

func NewRotationWorker(
	periodRepo repository.WeeklyPeriodRepository,
	manager *PeriodManager,
	recalculator *Recalculator,
	distributor *OverageDistributor,
	workerCount int,
) *RotationWorker {
	if workerCount <= 0 {
		workerCount = 3
	}
	return &RotationWorker{
		periodRepo:   periodRepo,
		manager:      manager,
		recalculator: recalculator,
		distributor:  distributor,
		jobQueue:     make(chan rotationJob, 100),
		workerCount:  workerCount,
		interval:     24 * time.Hour,
		stopChan:     make(chan struct{}),
	}
}

func (w *RotationWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	for i := 0; i < w.workerCount; i++ {
		w.wg.Add(1)
		go w.worker(i)
	}

	w.wg.Add(1)
	go w.tickerLoop()
}

func (w *RotationWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	w.wg.Wait()
}

func (w *RotationWorker) tickerLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			if _, err := w.EnqueueLapsed(time.Now()); err != nil {
				log.Printf("rotation sweep failed: %v", err)
			}
		}
	}
}

// EnqueueLapsed queues a rotation job for every user whose active period
// ended before asOf. Returns the number of users queued.
func (w *RotationWorker) EnqueueLapsed(asOf time.Time) (int, error) {
	asOf = utils.CivilDate(asOf)

	lapsed, err := w.periodRepo.FindLapsedActive(asOf)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, period := range lapsed {
		select {
		case w.jobQueue <- rotationJob{userID: period.UserID, asOf: asOf}:
			queued++
		case <-w.stopChan:
			return queued, nil
		}
	}

	if queued > 0 {
		log.Printf("queued %d users for period rotation as of %s", queued, utils.FormatCivilDate(asOf))
	}
	return queued, nil
}

func (w *RotationWorker) worker(id int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case job := <-w.jobQueue:
			w.process(id, job)
		}
	}
}

// process rotates a single user, snapshots the fresh period, and runs the
// guarded daily distribution (a no-op when the previous day brought no new
// consumption data). Rotation never fabricates a budget: a user without a
// prior period or baseline measurement fails with ErrMissingBaselineData
// and is skipped.
func (w *RotationWorker) process(workerID int, job rotationJob) {
	period, err := w.manager.CreateOrRotate(job.userID, job.asOf)
	if err != nil {
		log.Printf("worker %d: rotation failed for user %d: %v", workerID, job.userID, err)
		return
	}

	if !period.Contains(job.asOf) {
		// Period scheduled for a future Monday; nothing to snapshot yet.
		return
	}

	if _, err := w.recalculator.Recalculate(job.userID, job.asOf, ReasonScheduledJob); err != nil {
		log.Printf("worker %d: metric snapshot failed for user %d: %v", workerID, job.userID, err)
	}

	if _, err := w.distributor.RecalculateAndDistribute(job.userID, job.asOf); err != nil {
		log.Printf("worker %d: daily distribution failed for user %d: %v", workerID, job.userID, err)
	}
}

// Running reports worker state for the debug endpoints.
func (w *RotationWorker) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}
