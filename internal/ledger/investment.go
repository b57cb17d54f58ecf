package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/joeymizrahi/personal-finance-app/internal/apperrors"
	"github.com/joeymizrahi/personal-finance-app/internal/domain"
)

// InvestmentRequest is the typed form of one investment event. Conversion
// fields are only read when Action is ActionConversion.
type InvestmentRequest struct {
	Action        string
	AccountID     string
	Ticker        string
	Quantity      float64
	PricePerShare float64
	Fees          float64

	FromAmount   float64
	FromCurrency string
	ToAmount     float64
	ToCurrency   string
	Rate         float64
	Fee          float64
}

// LogInvestment dispatches an investment event to the conversion workflow or
// the trade workflow and returns a message describing every step that
// succeeded.
func (s *Service) LogInvestment(ctx context.Context, req InvestmentRequest) (string, error) {
	if req.AccountID == "" {
		return "", &apperrors.ValidationError{Field: "account_id", Reason: "account reference is required"}
	}

	if req.Action == ActionConversion {
		return s.logConversion(ctx, req)
	}
	return s.logTrade(ctx, req)
}

// logConversion posts a withdrawal in the source currency, a deposit in the
// destination currency carrying the rate, and a fee row when the fee is
// positive. Steps already committed are never rolled back; a later failure
// surfaces as a PartialWriteError naming them.
func (s *Service) logConversion(ctx context.Context, req InvestmentRequest) (string, error) {
	db := s.cfg.Notion.InvestmentTransactionsDB
	date := dateProp(s.now())
	steps := &stepLog{}
	var messages []string

	withdrawal := notionapi.Properties{
		"Transaction Name":    titleProp(fmt.Sprintf("Convert: Sell %.2f %s", req.FromAmount, req.FromCurrency)),
		"Date":                date,
		"Action":              selectProp(ActionWithdrawal),
		"Account":             relationProp(req.AccountID),
		"Price Per Share USD": numberProp(req.FromAmount),
		"Currency":            selectProp(req.FromCurrency),
	}
	if _, err := s.notion.CreatePage(ctx, db, withdrawal); err != nil {
		return "", steps.fail("conversion withdrawal", err)
	}
	steps.commit("conversion withdrawal")
	messages = append(messages, fmt.Sprintf("Logged %s withdrawal.", req.FromCurrency))

	deposit := notionapi.Properties{
		"Transaction Name":    titleProp(fmt.Sprintf("Convert: Buy %.2f %s", req.ToAmount, req.ToCurrency)),
		"Date":                date,
		"Action":              selectProp(ActionDeposit),
		"Account":             relationProp(req.AccountID),
		"Price Per Share USD": numberProp(req.ToAmount),
		"Currency":            selectProp(req.ToCurrency),
		"Conversion Rate":     numberProp(req.Rate),
	}
	if _, err := s.notion.CreatePage(ctx, db, deposit); err != nil {
		return "", steps.fail("conversion deposit", err)
	}
	steps.commit("conversion deposit")
	messages = append(messages, fmt.Sprintf("Logged %s deposit.", req.ToCurrency))

	if req.Fee > 0 {
		fee := notionapi.Properties{
			"Transaction Name":    titleProp("Currency Conversion Fee"),
			"Date":                date,
			"Action":              selectProp(ActionFeeExpense),
			"Account":             relationProp(req.AccountID),
			"Price Per Share USD": numberProp(-req.Fee),
			"Currency":            selectProp("USD"),
			"Conversion Fee USD":  numberProp(req.Fee),
		}
		if _, err := s.notion.CreatePage(ctx, db, fee); err != nil {
			return "", steps.fail("conversion fee", err)
		}
		steps.commit("conversion fee")
		messages = append(messages, "Logged conversion fee.")
	}

	s.log.Info().
		Str("from", req.FromCurrency).
		Str("to", req.ToCurrency).
		Float64("rate", req.Rate).
		Msg("Logged conversion")

	messages = append(messages, "Conversion logged.")
	return strings.Join(messages, " "), nil
}

// logTrade posts one investment transaction row and applies the holding
// mutation it implies: Buy adds to (or lazily creates) the position, Sell
// reduces it and accumulates realized gain, everything else leaves holdings
// untouched. A Sell is validated against the current position before any row
// is written.
func (s *Service) logTrade(ctx context.Context, req InvestmentRequest) (string, error) {
	ticker := strings.ToUpper(req.Ticker)
	// Cash movements carry no ticker even when the form supplied one.
	if req.Action == ActionDeposit || req.Action == ActionWithdrawal {
		ticker = ""
	}

	name := fmt.Sprintf("%s Cash", req.Action)
	if ticker != "" {
		name = fmt.Sprintf("%s %s", req.Action, ticker)
	}

	properties := notionapi.Properties{
		"Transaction Name":    titleProp(name),
		"Date":                dateProp(s.now()),
		"Action":              selectProp(req.Action),
		"Account":             relationProp(req.AccountID),
		"Ticker":              richTextProp(ticker),
		"Price Per Share USD": numberProp(req.PricePerShare),
		"Currency":            selectProp("USD"),
	}
	if req.Action == ActionBuy || req.Action == ActionSell {
		properties["Quantity"] = numberProp(req.Quantity)
	}
	if req.Fees > 0 {
		properties["Fees USD"] = numberProp(req.Fees)
	}

	// A sell is priced against the current position before anything is
	// written: no holding or too few shares means zero remote writes.
	var sale domain.Sale
	if req.Action == ActionSell {
		holding, err := s.FindHolding(ctx, ticker, req.AccountID)
		if err != nil {
			return "", err
		}
		if holding == nil {
			return "", &apperrors.InsufficientHoldingError{Ticker: ticker, Requested: req.Quantity}
		}
		sale, err = domain.ComputeSale(*holding, req.Quantity, req.PricePerShare, req.Fees)
		if err != nil {
			return "", err
		}
		properties["Realized Gain/Loss USD"] = numberProp(sale.RealizedGain)
	}

	steps := &stepLog{}

	if _, err := s.notion.CreatePage(ctx, s.cfg.Notion.InvestmentTransactionsDB, properties); err != nil {
		return "", steps.fail("investment transaction", err)
	}
	steps.commit("investment transaction")
	messages := []string{"Logged investment transaction."}

	switch req.Action {
	case ActionBuy:
		holding, err := s.FindHolding(ctx, ticker, req.AccountID)
		if err != nil {
			return "", steps.fail("holding lookup", err)
		}
		tradeCost := domain.TradeCost(req.Quantity, req.PricePerShare, req.Fees)
		if holding != nil {
			fields := notionapi.Properties{
				"Quantity":             numberProp(holding.Quantity + req.Quantity),
				"Total Cost Basis USD": numberProp(holding.CostBasis + tradeCost),
			}
			if _, err := s.UpdateHolding(ctx, holding.PageID, fields); err != nil {
				return "", steps.fail("holding update", err)
			}
			messages = append(messages, "Updated existing holding.")
		} else {
			if _, err := s.CreateHolding(ctx, ticker, req.AccountID, req.Quantity, tradeCost); err != nil {
				return "", steps.fail("holding create", err)
			}
			messages = append(messages, "Created new holding.")
		}

	case ActionSell:
		fields := notionapi.Properties{
			"Quantity":                      numberProp(sale.After.Quantity),
			"Total Cost Basis USD":          numberProp(sale.After.CostBasis),
			"Total Realized Gain/Loss USD":  numberProp(sale.After.RealizedGain),
			"Total Proceeds from Sales USD": numberProp(sale.After.Proceeds),
		}
		if _, err := s.UpdateHolding(ctx, sale.After.PageID, fields); err != nil {
			return "", steps.fail("holding update", err)
		}
		messages = append(messages, "Updated holding with realized gain.")
	}

	s.log.Info().
		Str("action", req.Action).
		Str("ticker", ticker).
		Float64("quantity", req.Quantity).
		Msg("Logged investment transaction")

	return strings.Join(messages, " "), nil
}
