package reprice

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Job on a cron schedule.
type Scheduler struct {
	Cron *cron.Cron
	Job  *Job
	Ctx  context.Context
}

func NewScheduler(ctx context.Context, job *Job) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		Job:  job,
		Ctx:  ctx,
	}
}

// Register adds the job on the cron spec, which includes a seconds field.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RunNow); err != nil {
		return fmt.Errorf("register reprice task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow prices the book for today.
func (s *Scheduler) RunNow() {
	log.Printf("[INFO] repricing %s", s.Job.Config.Name)

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if _, _, err := s.Job.Run(s.Ctx, date); err != nil {
		log.Printf("[ERROR] reprice %s: %v", s.Job.Config.Name, err)
	}
}
