package reminders

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const leaderLockTTL = 2 * time.Minute

var reminderEventTypes = map[models.ReminderKind]string{
	models.ReminderKindFollowUp: constvars.WorkflowEventFollowUpDue,
	models.ReminderKindRefill:   constvars.WorkflowEventRefillDue,
}

// Worker publishes follow-up and refill reminders that became due. Only
// the instance holding the leader lock runs a pass.
type Worker struct {
	log       *zap.Logger
	cfg       *config.InternalConfig
	locker    contracts.LockerService
	accounts  contracts.AccountRepository
	publisher contracts.WorkflowPublisher
	now       func() time.Time
	cron      *cron.Cron
	runCtx    context.Context
	cancel    context.CancelFunc
	stopOnce  sync.Once
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	locker contracts.LockerService,
	accounts contracts.AccountRepository,
	publisher contracts.WorkflowPublisher,
) *Worker {
	return &Worker{
		log:       log,
		cfg:       cfg,
		locker:    locker,
		accounts:  accounts,
		publisher: publisher,
		now:       time.Now,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	spec := w.cfg.Reminder.WorkerCronSpec
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) }); err != nil {
		w.log.Warn("reminders.Worker invalid cron spec, falling back to @daily",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc("@daily", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c

	w.log.Info("reminders.Worker started", zap.String(constvars.LoggingCronSpecKey, spec))
}

// Stop cancels a running pass and waits for it to return.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		if w.cron != nil {
			<-w.cron.Stop().Done()
		}
	})
}

func (w *Worker) runOnce(ctx context.Context) int {
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderWorkerLeader, leaderLockTTL)
	if err != nil {
		w.log.Warn("reminders.Worker leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Info("reminders.Worker leader lock held by another instance")
		return 0
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyReminderWorkerLeader, token); err != nil {
			w.log.Warn("reminders.Worker failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeaderLock(refreshCtx, token)

	until := w.now().Add(w.cfg.Reminder.Lookahead)
	accounts, err := w.accounts.FindDueReminders(ctx, until)
	if err != nil {
		w.log.Error("reminders.Worker error calling AccountRepository.FindDueReminders", zap.Error(err))
		return 0
	}

	sent := 0
	for i := range accounts {
		if ctx.Err() != nil {
			break
		}
		sent += w.remind(ctx, &accounts[i], until)
	}

	w.log.Info("reminders.Worker pass finished", zap.Int(constvars.LoggingReminderCountKey, sent))
	return sent
}

// remind publishes every due reminder of account and marks it sent. A
// failed publish leaves the reminder due for the next pass.
func (w *Worker) remind(ctx context.Context, account *models.PatientAccount, until time.Time) int {
	sent := 0
	for _, kind := range account.DueReminders(until) {
		dueAt := dueDate(account, kind)
		event := &requests.WorkflowEvent{
			Type:       reminderEventTypes[kind],
			AccountID:  account.ID,
			DoctorID:   account.AssignedDoctorID,
			Attributes: map[string]string{"due_at": dueAt.UTC().Format(time.RFC3339)},
		}

		if err := w.publisher.Publish(ctx, event); err != nil {
			w.log.Warn("reminders.Worker error calling WorkflowPublisher.Publish",
				zap.String(constvars.LoggingAccountIDKey, account.ID),
				zap.String(constvars.LoggingEventTypeKey, event.Type),
				zap.Error(err),
			)
			continue
		}
		marked, err := w.accounts.MarkReminderSent(ctx, account.ID, kind, *dueAt, w.now())
		if err != nil {
			w.log.Error("reminders.Worker error calling AccountRepository.MarkReminderSent",
				zap.String(constvars.LoggingAccountIDKey, account.ID),
				zap.String(constvars.LoggingEventTypeKey, event.Type),
				zap.Error(err),
			)
			continue
		}
		if !marked {
			w.log.Info("reminders.Worker schedule moved while sending, new date stays due",
				zap.String(constvars.LoggingAccountIDKey, account.ID),
				zap.String(constvars.LoggingEventTypeKey, event.Type),
			)
			continue
		}
		sent++
	}
	return sent
}

func (w *Worker) refreshLeaderLock(ctx context.Context, token string) {
	tick := time.NewTicker(leaderLockTTL / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.RedisKeyReminderWorkerLeader, token, leaderLockTTL); err != nil {
				w.log.Warn("reminders.Worker failed to refresh leader lock", zap.Error(err))
			}
		}
	}
}

func dueDate(account *models.PatientAccount, kind models.ReminderKind) *time.Time {
	switch kind {
	case models.ReminderKindFollowUp:
		return account.FollowUpDate
	case models.ReminderKindRefill:
		return account.RefillReminderDate
	}
	return nil
}
