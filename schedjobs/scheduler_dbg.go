//go:build debug

package schedjobs

import (
	"log"
	"time"
)

func (s *Scheduler) runOneTimeJobs(now time.Time) {
	key := now.Unix() / 60
	s.mu.Lock()
	jobs := s.oneTimeJobs[key]
	delete(s.oneTimeJobs, key)
	s.mu.Unlock()
	log.Printf("[DEBUG][SCHED] %d one-time jobs due at key %d", len(jobs), key)
	for _, job := range jobs {
		s.runOneTimeJob(job)
	}
}

func (s *Scheduler) runCronJobs(now time.Time) {
	jobs := s.GetCronJobs()
	log.Printf("[DEBUG][SCHED] matching %d cron jobs at %v", len(jobs), now)
	for _, job := range jobs {
		if job.Matches(now) {
			log.Println("[DEBUG][SCHED] cron job spec MATCHED for", job.ID)
			s.runCronJob(job)
		}
	}
}
