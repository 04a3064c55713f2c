package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
	"github.com/dmitrijs2005/coinkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/coinkeeper/internal/server/repositories/repomanager"
)

// AccountView is what login and whoami return to the caller.
type AccountView struct {
	Token string
	Email string
	Name  string
	Coins int64
}

// AccountService is the entry point for the transports.
type AccountService struct {
	repos    repomanager.RepositoryManager
	identity *IdentityResolver
	sessions *SessionManager
	ledger   *BalanceLedger
	log      logging.Logger
	metrics  *metrics.Metrics
}

func NewAccountService(m repomanager.RepositoryManager, log logging.Logger, mt *metrics.Metrics) *AccountService {
	identity := NewIdentityResolver(m, log, mt)
	return &AccountService{
		repos:    m,
		identity: identity,
		sessions: NewSessionManager(m, identity, log, mt),
		ledger:   NewBalanceLedger(m, log, mt),
		log:      log.With("module", "account"),
		metrics:  mt,
	}
}

// Login resolves or creates the user for email and returns its session token.
// A user created here survives a failure to issue the session.
func (s *AccountService) Login(ctx context.Context, email string, name *string) (*AccountView, error) {
	defer s.metrics.ObserveOperation("login", time.Now())

	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrInvalidArgument)
	}

	user, err := s.identity.ResolveOrCreate(ctx, email, name)
	if err != nil {
		s.log.Error(ctx, "login failed", "stage", "resolve", "error", err)
		return nil, err
	}

	token, err := s.sessions.IssueOrReuse(ctx, user)
	if err != nil {
		s.log.Error(ctx, "login failed", "stage", "session", "user_id", user.ID, "error", err)
		return nil, err
	}

	return &AccountView{Token: token, Email: user.Email, Name: user.Name, Coins: user.Coins}, nil
}

// WhoAmI returns the account behind credential together with the presented
// token.
func (s *AccountService) WhoAmI(ctx context.Context, credential string) (*AccountView, error) {
	defer s.metrics.ObserveOperation("whoami", time.Now())

	user, token, err := s.sessions.Authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}
	return &AccountView{Token: token, Email: user.Email, Name: user.Name, Coins: user.Coins}, nil
}

// AdjustCoins authenticates credential and applies amount to that user's
// balance, returning the new balance.
func (s *AccountService) AdjustCoins(ctx context.Context, credential string, amount int64) (int64, error) {
	defer s.metrics.ObserveOperation("adjust_coins", time.Now())

	user, _, err := s.sessions.Authenticate(ctx, credential)
	if err != nil {
		return 0, err
	}
	return s.ledger.Adjust(ctx, user, amount)
}

// Ping reports whether the backing stores answer.
func (s *AccountService) Ping(ctx context.Context) error {
	if err := s.repos.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
	return nil
}
