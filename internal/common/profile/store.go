// Package profile loads client financial profiles and turns them into
// scoring inputs.
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/Nurbek-dev001/World-banking-system/internal/common/errors"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/logger"
	"github.com/Nurbek-dev001/World-banking-system/internal/common/metrics"
	"github.com/Nurbek-dev001/World-banking-system/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrProfileNotFound is returned when no row exists for the client.
var ErrProfileNotFound = stderrors.New("client financial profile not found")

const cacheKeyPrefix = "client:financial-profile:"

const selectProfile = `SELECT client_id, credit_score, monthly_income, monthly_debt, employment_years, current_job_months,
       current_balance, average_balance, max_balance, total_transactions, average_monthly_transactions,
       monthly_variance, previous_deposits, defaulted_deposits, suspicious_activity_count, created_at
FROM client_financial_profiles
WHERE client_id = $1`

// Source is what workers need from the store.
type Source interface {
	Get(ctx context.Context, clientID string) (*models.ClientFinancialProfile, error)
}

// Store reads profiles from Postgres through a Redis read-through cache.
type Store struct {
	db     *sql.DB
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewStore builds a store; a nil cache disables caching.
func NewStore(db *sql.DB, cache *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-store"}),
	}
}

func CacheKey(clientID string) string {
	return cacheKeyPrefix + clientID
}

func (s *Store) Get(ctx context.Context, clientID string) (*models.ClientFinancialProfile, error) {
	if p, ok := s.fromCache(ctx, clientID); ok {
		return p, nil
	}

	p, err := s.load(ctx, clientID)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, p)
	return p, nil
}

// Invalidate drops the cached copy of a profile.
func (s *Store) Invalidate(ctx context.Context, clientID string) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, CacheKey(clientID)).Err(); err != nil {
		return fmt.Errorf("invalidate profile cache: %w", err)
	}
	return nil
}

func (s *Store) fromCache(ctx context.Context, clientID string) (*models.ClientFinancialProfile, bool) {
	if s.cache == nil {
		return nil, false
	}

	val, err := s.cache.Get(ctx, CacheKey(clientID)).Result()
	switch {
	case stderrors.Is(err, redis.Nil):
		metrics.ClientProfileCache.WithLabelValues("miss").Inc()
		return nil, false
	case err != nil:
		metrics.ClientProfileCache.WithLabelValues("error").Inc()
		s.logger.Warn("profile cache read failed, falling back to database", map[string]interface{}{
			"clientId": clientID,
			"error":    err.Error(),
		})
		return nil, false
	}

	var p models.ClientFinancialProfile
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		metrics.ClientProfileCache.WithLabelValues("error").Inc()
		s.logger.Warn("discarding undecodable cached profile", map[string]interface{}{
			"clientId": clientID,
			"error":    err.Error(),
		})
		return nil, false
	}

	metrics.ClientProfileCache.WithLabelValues("hit").Inc()
	return &p, true
}

func (s *Store) toCache(ctx context.Context, p *models.ClientFinancialProfile) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, CacheKey(p.ClientID), data, s.ttl).Err(); err != nil {
		s.logger.Warn("profile cache write failed", map[string]interface{}{
			"clientId": p.ClientID,
			"error":    err.Error(),
		})
	}
}

func (s *Store) load(ctx context.Context, clientID string) (*models.ClientFinancialProfile, error) {
	var p models.ClientFinancialProfile
	err := s.db.QueryRowContext(ctx, selectProfile, clientID).Scan(
		&p.ClientID,
		&p.CreditScore, &p.MonthlyIncome, &p.MonthlyDebt, &p.EmploymentYears, &p.CurrentJobMonths,
		&p.CurrentBalance, &p.AverageBalance, &p.MaxBalance,
		&p.TotalTransactions, &p.AverageMonthlyTransactions, &p.MonthlyVariance,
		&p.PreviousDeposits, &p.DefaultedDeposits, &p.SuspiciousActivityCount,
		&p.CreatedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("query client profile %s: %w", clientID, err)
	}
	return &p, nil
}

// LookupError maps a Source error to the job error reported to the broker.
func LookupError(clientID string, err error) *errors.StandardError {
	switch {
	case stderrors.Is(err, ErrProfileNotFound):
		return errors.NewClientProfileNotFoundError(clientID)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewQueryTimeoutError("client_profile")
	default:
		return errors.NewClientProfileLookupFailedError(clientID, err)
	}
}

// Resolve returns inline when a process already carries the profile and
// otherwise loads it from src.
func Resolve(ctx context.Context, src Source, clientID string, inline *models.ClientFinancialProfile) (*models.ClientFinancialProfile, error) {
	if inline != nil {
		if inline.ClientID == "" {
			inline.ClientID = clientID
		}
		return inline, nil
	}

	p, err := src.Get(ctx, clientID)
	if err != nil {
		return nil, LookupError(clientID, err)
	}
	return p, nil
}
