package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type tokenCleanupRepository interface {
	RemoveExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// ResetTokensCleaner clears expired reset tokens once an hour so stale
// tokens don't linger on user documents.
type ResetTokensCleaner struct {
	users tokenCleanupRepository
	cron  *cron.Cron
}

func NewResetTokensCleaner(users tokenCleanupRepository) (*ResetTokensCleaner, error) {

	tc := &ResetTokensCleaner{
		users: users,
		cron:  cron.New(),
	}

	_, err := tc.cron.AddFunc("0 * * * *", tc.cleanExpiredTokens)
	if err != nil {
		return nil, err
	}

	tc.cron.Start()
	log.Info("reset tokens cleaner started")
	return tc, nil
}

func (tc *ResetTokensCleaner) Stop() {
	tc.cron.Stop()
}

func (tc *ResetTokensCleaner) cleanExpiredTokens() {
	affected, err := tc.users.RemoveExpiredResetTokens(context.Background(), time.Now())
	if err != nil {
		log.Errorf("Failed to clean expired reset tokens: %v", err)
	} else if affected > 0 {
		log.Infof("Expired reset tokens cleaned at %v, affected users: %v", time.Now(), affected)
	}
}
