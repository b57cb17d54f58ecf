package ledger

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/joeymizrahi/personal-finance-app/internal/domain"
)

// FindHolding looks up the holding for a ticker in an account: exact ticker
// match plus account relation containment. Returns nil when none exists.
func (s *Service) FindHolding(ctx context.Context, ticker, accountID string) (*domain.Holding, error) {
	filter := notionapi.AndCompoundFilter{
		notionapi.PropertyFilter{
			Property: "Ticker",
			RichText: &notionapi.TextFilterCondition{Equals: ticker},
		},
		notionapi.PropertyFilter{
			Property: "Account",
			Relation: &notionapi.RelationFilterCondition{Contains: accountID},
		},
	}

	pages, err := s.notion.QueryAll(ctx, s.cfg.Notion.HoldingsDB, filter, nil)
	if err != nil {
		return nil, fmt.Errorf("find holding %s: %w", ticker, err)
	}
	if len(pages) == 0 {
		return nil, nil
	}

	holding := holdingFromPage(pages[0])
	return &holding, nil
}

// CreateHolding posts a new holding row with the supplied values as the
// initial lot. The account name is resolved fresh for the composite title,
// "Unknown" when the id cannot be found.
func (s *Service) CreateHolding(ctx context.Context, ticker, accountID string, quantity, costBasis float64) (*notionapi.Page, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve account name: %w", err)
	}

	title := fmt.Sprintf("%s (%s)", ticker, accountName(accounts, accountID))
	page, err := s.notion.CreatePage(ctx, s.cfg.Notion.HoldingsDB,
		holdingProps(title, ticker, accountID, quantity, costBasis))
	if err != nil {
		return nil, fmt.Errorf("create holding %s: %w", ticker, err)
	}

	s.log.Info().
		Str("ticker", ticker).
		Str("account_id", accountID).
		Float64("quantity", quantity).
		Float64("cost_basis", costBasis).
		Msg("Created holding")

	return page, nil
}

// UpdateHolding patches exactly the supplied fields on a holding row; the
// store leaves everything else untouched.
func (s *Service) UpdateHolding(ctx context.Context, pageID string, fields notionapi.Properties) (*notionapi.Page, error) {
	page, err := s.notion.UpdatePage(ctx, pageID, fields)
	if err != nil {
		return nil, fmt.Errorf("update holding: %w", err)
	}
	return page, nil
}
