package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dafibh/gigledger/ledger-backend/internal/domain"
	"github.com/dafibh/gigledger/ledger-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// LedgerService owns the in-memory earnings ledger and moves it to and from a BlobStore.
// Mutations and reads are synchronous; Load and Save run one at a time.
// Every change bumps the ledger revision, and events are published in revision order.
type LedgerService struct {
	store          domain.BlobStore
	key            string
	opts           []domain.LedgerOption
	eventPublisher websocket.EventPublisher

	mu       sync.RWMutex
	ledger   *domain.EarningsLedger
	revision uint64

	// persist admits a single in-flight Load or Save; later calls queue behind it
	persist *semaphore.Weighted
}

// NewLedgerService creates a LedgerService holding a fresh ledger.
// key is the fixed storage key the ledger is saved under.
func NewLedgerService(store domain.BlobStore, key string, opts ...domain.LedgerOption) *LedgerService {
	return &LedgerService{
		store:   store,
		key:     key,
		opts:    opts,
		ledger:  domain.NewEarningsLedger(opts...),
		persist: semaphore.NewWeighted(1),
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured.
// Callers hold s.mu so that events leave in the order the changes were made.
func (s *LedgerService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// Summary returns the current derived figures
func (s *LedgerService) Summary() domain.LedgerSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Distribution returns per-platform chart data
func (s *LedgerService) Distribution() []domain.PlatformShare {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Distribution()
}

// SetPlatformEarning records a platform's earnings from user input
func (s *LedgerService) SetPlatformEarning(platformName, rawAmount string) (domain.LedgerSummary, error) {
	platform, err := domain.ParsePlatform(platformName)
	if err != nil {
		return domain.LedgerSummary{}, err
	}

	return s.mutate(func(l *domain.EarningsLedger) error {
		return l.SetPlatformEarning(platform, rawAmount)
	})
}

// SetExpense records an expense from user input. A non-nil note is stored
// against the Other category and is rejected for any other category.
func (s *LedgerService) SetExpense(categoryName, rawAmount string, note *string) (domain.LedgerSummary, error) {
	category, err := domain.ParseExpenseCategory(categoryName)
	if err != nil {
		return domain.LedgerSummary{}, err
	}
	if note != nil && category != domain.ExpenseCategoryOther {
		return domain.LedgerSummary{}, fmt.Errorf("%w: a note is only accepted for the %s category", domain.ErrInvalidInput, domain.ExpenseCategoryOther)
	}

	if note != nil {
		if err := domain.ValidateExpenseNote(*note); err != nil {
			return domain.LedgerSummary{}, err
		}
	}

	return s.mutate(func(l *domain.EarningsLedger) error {
		if err := l.SetExpense(category, rawAmount); err != nil {
			return err
		}
		if note != nil {
			return l.SetOtherExpenseNote(*note)
		}
		return nil
	})
}

// SetMonthlyGoal applies a new goal; a non-positive or unparsable goal
// returns domain.ErrInvalidGoal and leaves the previous goal in place
func (s *LedgerService) SetMonthlyGoal(rawGoal string) (domain.LedgerSummary, error) {
	return s.mutate(func(l *domain.EarningsLedger) error {
		if !l.SetMonthlyGoal(rawGoal) {
			log.Debug().Str("goal", rawGoal).Msg("Monthly goal rejected")
			return domain.ErrInvalidGoal
		}
		return nil
	})
}

// Save writes the ledger to the store and returns the snapshot that was written.
// Mutations made while the write is in flight are not part of it and carry a
// later revision. Failures are returned as-is for the caller to retry; nothing
// is retried here.
func (s *LedgerService) Save(ctx context.Context) (domain.LedgerSummary, error) {
	if err := s.persist.Acquire(ctx, 1); err != nil {
		return domain.LedgerSummary{}, err
	}
	defer s.persist.Release(1)

	s.mu.RLock()
	record := s.ledger.Serialize()
	summary := s.snapshotLocked()
	s.mu.RUnlock()

	blob, err := record.Marshal()
	if err != nil {
		return domain.LedgerSummary{}, fmt.Errorf("encode ledger: %w", err)
	}

	// Once issued, the storage round trip is not cancelled
	if err := s.store.Set(context.WithoutCancel(ctx), s.key, blob); err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("Failed to save ledger")
		return domain.LedgerSummary{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	log.Info().Str("key", s.key).Uint64("revision", summary.Revision).Int("bytes", len(blob)).Msg("Ledger saved")

	s.mu.RLock()
	s.publishEvent(websocket.LedgerSaved(summary.View()))
	s.mu.RUnlock()
	return summary, nil
}

// Load replaces the in-memory ledger with the stored one. found is false when
// nothing has been saved yet, in which case the current ledger is kept.
// On any error the current ledger is kept unchanged.
func (s *LedgerService) Load(ctx context.Context) (summary domain.LedgerSummary, found bool, err error) {
	if err := s.persist.Acquire(ctx, 1); err != nil {
		return domain.LedgerSummary{}, false, err
	}
	defer s.persist.Release(1)

	blob, found, err := s.store.Get(context.WithoutCancel(ctx), s.key)
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("Failed to load ledger")
		return domain.LedgerSummary{}, false, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if !found {
		log.Debug().Str("key", s.key).Msg("No saved ledger found")
		return s.Summary(), false, nil
	}

	record, err := domain.UnmarshalRecord(blob)
	if err != nil {
		log.Error().Err(err).Str("key", s.key).Msg("Stored ledger is corrupt")
		return domain.LedgerSummary{}, true, err
	}
	restored := domain.Deserialize(record, s.opts...)

	s.mu.Lock()
	s.ledger = restored
	s.revision++
	summary = s.snapshotLocked()
	s.publishEvent(websocket.LedgerLoaded(summary.View()))
	s.mu.Unlock()

	log.Info().Str("key", s.key).Uint64("revision", summary.Revision).Msg("Ledger loaded")
	return summary, true, nil
}

// mutate applies fn under the write lock and publishes the result on success
func (s *LedgerService) mutate(fn func(l *domain.EarningsLedger) error) (domain.LedgerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.ledger); err != nil {
		return domain.LedgerSummary{}, err
	}

	s.revision++
	summary := s.snapshotLocked()
	s.publishEvent(websocket.LedgerUpdated(summary.View()))
	return summary, nil
}

// snapshotLocked must be called with s.mu held
func (s *LedgerService) snapshotLocked() domain.LedgerSummary {
	summary := s.ledger.Summary()
	summary.Revision = s.revision
	return summary
}
