package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"
)

const maxWriteRetries = 5

// writeTx runs fn inside a transaction and retries the whole transaction
// with exponential backoff when the store reports lock contention. Sentinel
// errors from the taxonomy are permanent and propagate unchanged; any other
// failure is wrapped as ErrStore.
func writeTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	op := func() error {
		err := db.Transaction(fn)
		if err == nil {
			return nil
		}
		if isSentinel(err) {
			return backoff.Permanent(err)
		}
		if isBusy(err) {
			return err
		}
		return backoff.Permanent(fmt.Errorf("%w: %v", ErrStore, err))
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 10 * time.Millisecond
	bo.MaxInterval = 250 * time.Millisecond

	if err := backoff.Retry(op, backoff.WithMaxRetries(bo, maxWriteRetries)); err != nil {
		if isBusy(err) {
			return fmt.Errorf("%w: %v", ErrStore, err)
		}
		return err
	}
	return nil
}

// isBusy reports whether the driver error is retryable lock contention
// (sqlite file locking or a postgres deadlock).
func isBusy(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "busy") ||
		strings.Contains(msg, "deadlock")
}

func isSentinel(err error) bool {
	for _, sentinel := range []error{
		ErrNotFound, ErrInvalidInput, ErrAlreadyExists, ErrAlreadyFriends,
		ErrAlreadyRequested, ErrAlreadyLiked, ErrAlreadyMember,
		ErrEmptyContent, ErrPermissionDenied, ErrFileTooLarge, ErrStore,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// isDuplicate reports whether the error is a unique-constraint violation.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
