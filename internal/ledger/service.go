// Package ledger implements the posting workflows: expenses and income,
// transfers, investment trades and the holding mutations they imply. Every
// workflow re-fetches whatever it needs from the remote store; nothing is
// cached between requests.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/joeymizrahi/personal-finance-app/internal/config"
	"github.com/joeymizrahi/personal-finance-app/internal/domain"
	"github.com/joeymizrahi/personal-finance-app/internal/notion"
)

// Transaction type tags as stored in the remote Type select.
const (
	typeExpense  = "Expense"
	typeIncome   = "Income"
	typeTransfer = "Money Transfer (one account to another)"
)

// Investment action tags.
const (
	ActionBuy        = "Buy"
	ActionSell       = "Sell"
	ActionDividend   = "Dividend"
	ActionDeposit    = "Deposit"
	ActionWithdrawal = "Withdrawal"
	ActionFeeExpense = "Fee/Expense"
	ActionConversion = "Money Conversion"
)

// Service orchestrates the posting workflows over the remote store.
type Service struct {
	notion notion.Service
	cfg    *config.Config
	log    zerolog.Logger
	now    func() time.Time
}

// NewService creates a Service. All dependencies are injected; the clock is
// replaceable in tests.
func NewService(n notion.Service, cfg *config.Config, log zerolog.Logger) *Service {
	return &Service{
		notion: n,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// Accounts fetches all account rows. Rows missing a name are skipped.
func (s *Service) Accounts(ctx context.Context) ([]domain.Account, error) {
	pages, err := s.notion.QueryAll(ctx, s.cfg.Notion.AccountsDB, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(pages))
	for _, page := range pages {
		if acc, ok := accountFromPage(page); ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

// Pillars fetches all pillar rows, reversed: the entry form lists the most
// recently added pillar first.
func (s *Service) Pillars(ctx context.Context) ([]domain.Pillar, error) {
	pages, err := s.notion.QueryAll(ctx, s.cfg.Notion.PillarsDB, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list pillars: %w", err)
	}

	pillars := make([]domain.Pillar, 0, len(pages))
	for _, page := range pages {
		if pillar, ok := pillarFromPage(page); ok {
			pillars = append(pillars, pillar)
		}
	}
	for i, j := 0, len(pillars)-1; i < j; i, j = i+1, j-1 {
		pillars[i], pillars[j] = pillars[j], pillars[i]
	}
	return pillars, nil
}

// CategoryTree fetches all categories once and partitions them into parents
// and children. Rows missing a name or id are skipped rather than failing the
// whole fetch. When transactionType is given, rows whose Type tag exists and
// differs (case-insensitive) are excluded; untagged rows always pass.
func (s *Service) CategoryTree(ctx context.Context, transactionType string) ([]domain.Category, map[string][]domain.Category, error) {
	pages, err := s.notion.QueryAll(ctx, s.cfg.Notion.CategoriesDB, nil, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("list categories: %w", err)
	}

	var categories []domain.Category
	for _, page := range pages {
		cat, ok := categoryFromPage(page)
		if !ok {
			continue
		}
		if transactionType != "" {
			if tag := pageSelect(page, "Type"); tag != "" && !strings.EqualFold(tag, transactionType) {
				continue
			}
		}
		categories = append(categories, cat)
	}

	parents, children := domain.BuildCategoryTree(categories)
	return parents, children, nil
}

// accountName resolves an account id to its display name, falling back to
// "Unknown" for ids no longer present in the store.
func accountName(accounts []domain.Account, id string) string {
	for _, acc := range accounts {
		if acc.ID == id {
			return acc.Name
		}
	}
	return "Unknown"
}
