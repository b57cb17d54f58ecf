package ledger

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jomei/notionapi"

	"github.com/joeymizrahi/personal-finance-app/internal/apperrors"
)

// TransactionRequest describes one expense or income entry.
type TransactionRequest struct {
	Kind        string // "expense" or "income"
	Description string
	Amount      float64
	AccountID   string
	CategoryID  string
	PillarID    string
	Currency    string
}

// LogExpenseOrIncome posts a single signed monetary movement. The amount is
// normalized regardless of the sign supplied: expenses store negative, income
// positive. Stamped with the current date; one remote call, so there is no
// partial state to reconcile on failure.
func (s *Service) LogExpenseOrIncome(ctx context.Context, req TransactionRequest) (*notionapi.Page, error) {
	if req.Kind != "expense" && req.Kind != "income" {
		return nil, &apperrors.ValidationError{Field: "type", Reason: "must be expense or income"}
	}
	if req.AccountID == "" {
		return nil, &apperrors.ValidationError{Field: "account_id", Reason: "account reference is required"}
	}

	isExpense := req.Kind == "expense"
	amount := math.Abs(req.Amount)
	if isExpense {
		amount = -amount
	}

	typeTag := typeIncome
	if isExpense {
		typeTag = typeExpense
	}

	properties := notionapi.Properties{
		"Description":      titleProp(req.Description),
		"Amount":           numberProp(amount),
		"Transaction Date": dateProp(s.now()),
		"Type":             selectProp(typeTag),
		"Account":          relationProp(req.AccountID),
		"Currency":         selectProp(req.Currency),
	}
	if req.CategoryID != "" {
		properties["Category"] = relationProp(req.CategoryID)
	}
	if req.PillarID != "" {
		properties["Pillar"] = relationProp(req.PillarID)
	}

	page, err := s.notion.CreatePage(ctx, s.cfg.Notion.TransactionsDB, properties)
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", req.Kind, err)
	}

	s.log.Info().
		Str("kind", req.Kind).
		Float64("amount", amount).
		Str("account_id", req.AccountID).
		Msg("Logged transaction")

	return page, nil
}

// TransferRequest describes a movement between two accounts.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        float64
	Currency      string
}

// Transfer posts a linked debit and credit pair sharing one correlation id.
// Account names are resolved with a fresh fetch on every call; correctness
// over efficiency. If the credit fails after the debit committed, the error is
// a PartialWriteError: the debit row exists and must be fixed manually.
func (s *Service) Transfer(ctx context.Context, req TransferRequest) (string, error) {
	if req.FromAccountID == req.ToAccountID {
		return "", &apperrors.ValidationError{
			Field:  "to_account_id",
			Reason: "source and destination accounts cannot be the same",
		}
	}

	accounts, err := s.Accounts(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve account names: %w", err)
	}
	fromName := accountName(accounts, req.FromAccountID)
	toName := accountName(accounts, req.ToAccountID)

	// Unique per call: the second transfer within one second must not share an id.
	transferID := fmt.Sprintf("TXF-%d-%s", s.now().Unix(), uuid.NewString()[:8])
	amount := math.Abs(req.Amount)
	date := dateProp(s.now())

	steps := &stepLog{}

	debit := notionapi.Properties{
		"Description":      titleProp("Transfer to " + toName),
		"Amount":           numberProp(-amount),
		"Transaction Date": date,
		"Type":             selectProp(typeTransfer),
		"Account":          relationProp(req.FromAccountID),
		"Currency":         selectProp(req.Currency),
		"Transfer ID":      richTextProp(transferID),
	}
	if _, err := s.notion.CreatePage(ctx, s.cfg.Notion.TransactionsDB, debit); err != nil {
		return "", steps.fail("transfer debit", err)
	}
	steps.commit("transfer debit")

	credit := notionapi.Properties{
		"Description":      titleProp("Transfer from " + fromName),
		"Amount":           numberProp(amount),
		"Transaction Date": date,
		"Type":             selectProp(typeTransfer),
		"Account":          relationProp(req.ToAccountID),
		"Currency":         selectProp(req.Currency),
		"Transfer ID":      richTextProp(transferID),
	}
	if _, err := s.notion.CreatePage(ctx, s.cfg.Notion.TransactionsDB, credit); err != nil {
		return "", steps.fail("transfer credit", err)
	}
	steps.commit("transfer credit")

	s.log.Info().
		Str("transfer_id", transferID).
		Float64("amount", amount).
		Str("from", fromName).
		Str("to", toName).
		Msg("Logged transfer")

	return fmt.Sprintf("Logged transfer of %.2f %s from %s to %s", amount, req.Currency, fromName, toName), nil
}
