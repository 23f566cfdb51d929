// Package reminder sends the periodic skill reminders and closing-deadline
// warnings to students through the notification channel.
package reminder

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"career-dash/internal/config"
	"career-dash/internal/domain/application"
	"career-dash/internal/domain/notification"
	"career-dash/internal/domain/skill"
	"career-dash/internal/infrastructure/pubsub"
	"career-dash/internal/logging"
	"career-dash/internal/pkg/dates"
	"career-dash/internal/repository"
	"career-dash/internal/usecase"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

type Publisher interface {
	Publish(ctx context.Context, ev pubsub.Event) error
}

// CacheInvalidator drops cached dashboard lists after a reminder moves.
type CacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

type Summary struct {
	SkillReminders      int
	ClosingApplications int
	Failed              int
}

type Dispatcher struct {
	skills repository.SkillRepository
	apps   repository.ApplicationRepository
	pub    Publisher
	cache  CacheInvalidator
	cfg    config.ReminderConfig
	clock  clockwork.Clock
	logger logrus.FieldLogger
}

func NewDispatcher(skills repository.SkillRepository, apps repository.ApplicationRepository, pub Publisher, cache CacheInvalidator, cfg config.ReminderConfig, clock clockwork.Clock, logger logrus.FieldLogger) *Dispatcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.DaysAhead <= 0 {
		cfg.DaysAhead = 7
	}
	return &Dispatcher{skills: skills, apps: apps, pub: pub, cache: cache, cfg: cfg, clock: clock, logger: logger}
}

// Run sends one round of notifications for the current day. Individual
// publish failures are counted, not returned.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	today := dates.Day(d.clock.Now())

	due, err := d.skills.ListDueReminders(ctx, today)
	if err != nil {
		return Summary{}, fmt.Errorf("list due reminders: %w", err)
	}
	closing, err := d.apps.ListClosingAll(ctx, today, today.AddDate(0, 0, d.cfg.DaysAhead))
	if err != nil {
		return Summary{}, fmt.Errorf("list closing applications: %w", err)
	}

	var sum Summary
	var skillsSent, appsSent atomic.Int64

	pool := NewWorkerPool(d.cfg.Workers, len(due)+len(closing), d.clock)
	pool.SetRateLimit(d.cfg.RatePerSecond)

	for _, s := range due {
		pool.Submit(func(ctx context.Context) error {
			if err := d.remindSkill(ctx, s, today); err != nil {
				return err
			}
			skillsSent.Add(1)
			return nil
		})
	}
	for _, a := range closing {
		pool.Submit(func(ctx context.Context) error {
			if err := d.warnClosing(ctx, a, today); err != nil {
				return err
			}
			appsSent.Add(1)
			return nil
		})
	}
	pool.Close()

	for res := range pool.Run(ctx) {
		if res.Err != nil {
			sum.Failed++
			d.logger.Errorf("[Reminder] task failed: %v", res.Err)
		}
	}

	sum.SkillReminders = int(skillsSent.Load())
	sum.ClosingApplications = int(appsSent.Load())
	d.logger.Infof("[Reminder] run finished skills=%d applications=%d failed=%d", sum.SkillReminders, sum.ClosingApplications, sum.Failed)
	if err := ctx.Err(); err != nil {
		return sum, err
	}
	return sum, nil
}

// Loop runs the dispatcher every interval until ctx is done.
func (d *Dispatcher) Loop(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := d.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := d.Run(ctx); err != nil && ctx.Err() == nil {
			d.logger.Errorf("[Reminder] run failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}
	}
}

func (d *Dispatcher) remindSkill(ctx context.Context, s skill.Skill, today time.Time) error {
	ev := pubsub.Event{
		UserID:       s.UserID.String(),
		Notification: SkillReminder(s),
	}
	if err := d.pub.Publish(ctx, ev); err != nil {
		return fmt.Errorf("publish skill reminder id=%s: %w", s.ID, err)
	}

	next := NextReminderDate(s.Reminder, today, d.cfg.CustomDays)
	if err := d.skills.AdvanceReminder(ctx, s.ID, next); err != nil {
		return fmt.Errorf("advance reminder id=%s: %w", s.ID, err)
	}
	if d.cache != nil {
		if err := d.cache.DeleteByPattern(ctx, usecase.UserCachePattern(s.UserID)); err != nil {
			d.logger.Warnf("[Reminder] cache invalidate failed user_id=%s err=%v", s.UserID, err)
		}
	}
	return nil
}

func (d *Dispatcher) warnClosing(ctx context.Context, a application.Application, today time.Time) error {
	ev := pubsub.Event{
		UserID:       a.UserID.String(),
		Notification: ClosingWarning(a, today),
	}
	if err := d.pub.Publish(ctx, ev); err != nil {
		return fmt.Errorf("publish closing warning id=%s: %w", a.ID, err)
	}
	return nil
}

// NextReminderDate steps the reminder forward by its frequency until it lands
// after today, so missed runs do not queue up a backlog of reminders.
func NextReminderDate(r skill.Reminder, today time.Time, customDays int) time.Time {
	from := today
	if r.NextDate != nil {
		from = dates.Day(*r.NextDate)
	}
	next := r.Frequency.Next(from, customDays)
	for !next.After(today) {
		next = r.Frequency.Next(next, customDays)
	}
	return next
}

func SkillReminder(s skill.Skill) notification.Notification {
	msg := fmt.Sprintf("Time to work on %s.", s.Name)
	if s.CompletionStatus != "" {
		msg = fmt.Sprintf("Time to work on %s (%s).", s.Name, s.CompletionStatus)
	}
	return notification.Info("Skill reminder", msg)
}

func ClosingWarning(a application.Application, today time.Time) notification.Notification {
	when := "soon"
	if a.LastDateToApply != nil {
		switch days := dates.DaysBetween(today, *a.LastDateToApply); {
		case days <= 0:
			when = "today"
		case days == 1:
			when = "tomorrow"
		default:
			when = fmt.Sprintf("in %d days", days)
		}
	}
	return notification.Warning("Application closing", fmt.Sprintf("%s at %s closes %s.", a.Name, a.CompanyName, when))
}
