package schedjobs

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/zeptools/invoicer/svc"
)

type Scheduler struct {
	Ctx         context.Context    // Service Context
	cancel      context.CancelFunc // Service Context CancelFunc
	state       int                // internal service state
	done        chan error         // Shutdown Error Channel
	oneTimeJobs map[int64][]*OneTimeJob
	cronJobs    []*CronJob
	mu          sync.Mutex
	wg          sync.WaitGroup
	// Default Callbacks
	OnOneTimeJobAdded    func(job *OneTimeJob)
	OnCronJobAdded       func(job *CronJob)
	OnOneTimeJobFinished func(job *OneTimeJob, err error)
	OnCronJobFinished    func(job *CronJob, err error)
	OnOneTimeJobDeleted  func(job *OneTimeJob)
	OnCronJobDeleted     func(job *CronJob)
}

func (s *Scheduler) Name() string {
	return "JobScheduler"
}

func NewScheduler(parentCtx context.Context) *Scheduler {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Scheduler{
		Ctx:         svcCtx,
		cancel:      svcCancel,
		state:       svc.StateREADY,
		done:        make(chan error, 1),
		oneTimeJobs: make(map[int64][]*OneTimeJob),
	}
}

func (s *Scheduler) Start() error {
	if s.state == svc.StateRUNNING {
		return fmt.Errorf("already started")
	}
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	s.state = svc.StateRUNNING
	go s.loop()
	log.Println("[INFO][SCHED] job scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][SCHED] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
	log.Println("[INFO][SCHED] job scheduler stopped")
}

func (s *Scheduler) Done() <-chan error {
	return s.done
}

func (s *Scheduler) loop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		s.RunDue(time.Now())
		select {
		case <-ticker.C:
			// continue for-loop
		case <-s.Ctx.Done():
			s.wg.Wait() // wait for running tasks
			s.done <- nil
			return
		}
	}
}

// RunDue starts every job due at the minute of now
func (s *Scheduler) RunDue(now time.Time) {
	s.runOneTimeJobs(now)
	s.runCronJobs(now)
}

// Wait blocks until every started task has returned
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runOneTimeJob(job *OneTimeJob) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := runTask(s.Ctx, job.ID, job.Task)
		if job.OnFinished != nil {
			safeCall("job.OnFinished", func() { job.OnFinished(err) })
		}
		if s.OnOneTimeJobFinished != nil {
			s.OnOneTimeJobFinished(job, err)
		}
	}()
}

func (s *Scheduler) runCronJob(job *CronJob) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := runTask(s.Ctx, job.ID, job.Task)
		if job.OnFinished != nil {
			safeCall("job.OnFinished", func() { job.OnFinished(err) })
		}
		if s.OnCronJobFinished != nil {
			s.OnCronJobFinished(job, err)
		}
	}()
}

func runTask(ctx context.Context, id string, task func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Recovered in job %s: %v", id, r)
			err = fmt.Errorf("job %s panicked: %v", id, r)
		}
	}()
	return task(ctx)
}

func safeCall(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PANIC] Recovered in %s: %v", what, r)
		}
	}()
	fn()
}

func (s *Scheduler) AddOneTimeJob(job *OneTimeJob, now time.Time) error {
	margin := 30 * time.Second
	if job.ExecTime.Before(now.Add(margin)) {
		return fmt.Errorf(
			"cannot schedule job %s too close or in the past (ExecTime: %s, now: %s)",
			job.ID, job.ExecTime, now,
		)
	}
	// Round up to the next minute if ExecTime has seconds/nanoseconds
	regTime := job.ExecTime
	if regTime.Second() > 0 || regTime.Nanosecond() > 0 {
		regTime = regTime.Truncate(time.Minute).Add(time.Minute)
	}
	key := regTime.Unix() / 60
	s.mu.Lock()
	s.oneTimeJobs[key] = append(s.oneTimeJobs[key], job)
	s.mu.Unlock()
	if job.OnAdded != nil { // Job-specific callback
		safeCall("job.OnAdded", job.OnAdded)
	}
	if s.OnOneTimeJobAdded != nil { // Scheduler-level default callback
		s.OnOneTimeJobAdded(job)
	}
	return nil
}

func (s *Scheduler) AddCronJob(job *CronJob) {
	s.mu.Lock()
	s.cronJobs = append(s.cronJobs, job)
	s.mu.Unlock()
	if job.OnAdded != nil {
		safeCall("job.OnAdded", job.OnAdded)
	}
	if s.OnCronJobAdded != nil {
		s.OnCronJobAdded(job)
	}
}

// GetOneTimeJobs returns a copy of all pending one-time jobs, keyed by their scheduled minute-level timestamp.
func (s *Scheduler) GetOneTimeJobs() map[int64][]*OneTimeJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[int64][]*OneTimeJob, len(s.oneTimeJobs))
	for key, jobs := range s.oneTimeJobs {
		result[key] = append([]*OneTimeJob(nil), jobs...)
	}
	return result
}

// GetCronJobs returns a copy of all registered cron jobs
func (s *Scheduler) GetCronJobs() []*CronJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*CronJob(nil), s.cronJobs...)
}

func (s *Scheduler) DeleteOneTimeJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, jobs := range s.oneTimeJobs {
		filtered := jobs[:0]
		for _, job := range jobs {
			if job.ID == jobID {
				if s.OnOneTimeJobDeleted != nil {
					s.OnOneTimeJobDeleted(job)
				}
			} else {
				filtered = append(filtered, job)
			}
		}
		if len(filtered) == 0 {
			delete(s.oneTimeJobs, key)
		} else {
			s.oneTimeJobs[key] = filtered
		}
	}
}

// DeleteCronJob removes a cron job by its ID
func (s *Scheduler) DeleteCronJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	newJobs := s.cronJobs[:0] // reuse underlying array
	for _, job := range s.cronJobs {
		if job.ID != jobID {
			newJobs = append(newJobs, job)
		} else if s.OnCronJobDeleted != nil {
			s.OnCronJobDeleted(job)
		}
	}
	s.cronJobs = newJobs
}
