//go:build !debug

package schedjobs

import (
	"time"
)

func (s *Scheduler) runOneTimeJobs(now time.Time) {
	key := now.Unix() / 60
	s.mu.Lock()
	jobs := s.oneTimeJobs[key]
	delete(s.oneTimeJobs, key)
	s.mu.Unlock()
	for _, job := range jobs {
		s.runOneTimeJob(job)
	}
}

func (s *Scheduler) runCronJobs(now time.Time) {
	for _, job := range s.GetCronJobs() {
		if job.Matches(now) {
			s.runCronJob(job)
		}
	}
}
