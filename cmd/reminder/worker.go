package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"

	"github.com/hanyustudent/backend/internal/models"
)

// Dedup key prefix guarding one email per user per UTC day
const sentKeyPrefix = "reminder:sent:"

// ReminderRecipientRepository defines the interface for loading reminder recipients
type ReminderRecipientRepository interface {
	// GetReminderRecipients retrieves users with reminders enabled who have no
	// study activity on the current UTC date
	GetReminderRecipients(ctx context.Context) ([]models.User, error)
}

// Worker sends reminder emails for the daily sweep
type Worker struct {
	logger       *zap.Logger
	userRepo     ReminderRecipientRepository
	redis        *redis.Client
	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
	smtpFrom     string
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	userRepo ReminderRecipientRepository,
	redis *redis.Client,
	smtpHost string,
	smtpPort int,
	smtpUsername, smtpPassword, smtpFrom string,
) *Worker {
	return &Worker{
		logger:       logger,
		userRepo:     userRepo,
		redis:        redis,
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
		smtpFrom:     smtpFrom,
	}
}

// HandleSweep processes one daily reminder sweep
func (w *Worker) HandleSweep(ctx context.Context, t *asynq.Task) error {
	date := string(t.Payload())

	users, err := w.userRepo.GetReminderRecipients(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reminder recipients: %w", err)
	}

	sent := 0
	for _, user := range users {
		key := fmt.Sprintf("%s%s:%d", sentKeyPrefix, date, user.ID)

		// SETNX guards against double sends when the sweep is retried
		set, err := w.redis.SetNX(ctx, key, "1", 48*time.Hour).Result()
		if err != nil {
			w.logger.Error("Failed to set send dedup key", zap.Int("user_id", user.ID), zap.Error(err))
			continue
		}
		if !set {
			continue // Already reminded today
		}

		if err := w.sendEmail(user.Email, reminderSubject(), reminderBody(user)); err != nil {
			w.logger.Error("Failed to send reminder email", zap.Int("user_id", user.ID), zap.Error(err))
			// Drop the dedup key so a retried sweep covers this user
			if err := w.redis.Del(ctx, key).Err(); err != nil {
				w.logger.Error("Failed to remove send dedup key", zap.Int("user_id", user.ID), zap.Error(err))
			}
			continue
		}
		sent++
	}

	w.logger.Info("Reminder sweep completed",
		zap.String("date", date),
		zap.Int("recipients", len(users)),
		zap.Int("sent", sent))
	return nil
}

// sendEmail sends an email via SMTP
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(w.smtpHost, w.smtpPort, w.smtpUsername, w.smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func reminderSubject() string {
	return "Time for today's Chinese practice"
}

func reminderBody(user models.User) string {
	name := user.DisplayName
	if name == "" {
		name = user.Email
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>You haven't studied yet today. A few minutes of review keeps your streak alive!</p>",
		name,
	)
}
