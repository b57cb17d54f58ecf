// Package domain holds the plain data model shared by the ledger workflows.
// These are domain structs, not remote rows; the ledger mapper translates
// between them and the document store's property shapes.
package domain

// Account is a bank or brokerage account. Maintained externally; read-only here.
type Account struct {
	ID           string
	Name         string
	IsInvestment bool
}

// Pillar is a budgeting/allocation tag attached to transactions. Read-only.
type Pillar struct {
	ID   string
	Name string
}

// Category is one node of a two-level category tree. Parent categories have an
// empty ParentID; children reference exactly one parent. Read-only.
type Category struct {
	ID       string
	Name     string
	ParentID string
}

// Holding is the running position for one ticker in one account. Quantity and
// CostBasis change on every Buy/Sell; RealizedGain and Proceeds accumulate on
// sells only.
type Holding struct {
	PageID       string
	Ticker       string
	AccountID    string
	Quantity     float64
	CostBasis    float64 // total cost basis, USD
	RealizedGain float64 // cumulative realized gain/loss, USD
	Proceeds     float64 // cumulative proceeds from sales, USD
}
