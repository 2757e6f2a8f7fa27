package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	sweepTaskType = "reminder:sweep"
	// Hour of the UTC day after which the sweep may be enqueued. Users who
	// have not studied by evening get one nudge.
	sweepHourUTC = 18
	// Dedup key prefix guarding one sweep per UTC day
	sweepKeyPrefix = "reminder:sweep:"
)

// Scheduler enqueues the daily reminder sweep
type Scheduler struct {
	redis       *redis.Client
	asynqClient *asynq.Client
	logger      *zap.Logger
	ticker      *time.Ticker
	stopChan    chan struct{}
}

// NewScheduler creates a new scheduler instance
func NewScheduler(redis *redis.Client, asynqClient *asynq.Client, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		redis:       redis,
		asynqClient: asynqClient,
		logger:      logger,
		ticker:      time.NewTicker(10 * time.Minute),
		stopChan:    make(chan struct{}),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.logger.Info("Reminder scheduler started")
	go s.run()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.ticker.Stop()
	close(s.stopChan)
	s.logger.Info("Reminder scheduler stopped")
}

// run executes the scheduler loop
func (s *Scheduler) run() {
	ctx := context.Background()

	// Run immediately on start
	s.enqueueDailySweep(ctx)

	for {
		select {
		case <-s.ticker.C:
			s.enqueueDailySweep(ctx)
		case <-s.stopChan:
			return
		}
	}
}

// enqueueDailySweep enqueues at most one sweep task per UTC day once the
// sweep hour has passed
func (s *Scheduler) enqueueDailySweep(ctx context.Context) {
	now := time.Now().UTC()
	if now.Hour() < sweepHourUTC {
		return
	}

	date := now.Format("2006-01-02")
	key := sweepKeyPrefix + date

	// SETNX guards against double enqueue across restarts and replicas
	set, err := s.redis.SetNX(ctx, key, "1", 48*time.Hour).Result()
	if err != nil {
		s.logger.Error("Failed to set sweep dedup key", zap.Error(err))
		return
	}
	if !set {
		return // Sweep already enqueued today
	}

	task := asynq.NewTask(sweepTaskType, []byte(date))
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue("default")); err != nil {
		s.logger.Error("Failed to enqueue sweep task", zap.Error(err))
		// Drop the dedup key so the next tick retries
		if err := s.redis.Del(ctx, key).Err(); err != nil {
			s.logger.Error("Failed to remove sweep dedup key", zap.Error(err))
		}
		return
	}

	s.logger.Info("Enqueued daily reminder sweep", zap.String("date", date))
}
