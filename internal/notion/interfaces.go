package notion

import (
	"context"

	"github.com/jomei/notionapi"
)

// Service defines the remote document-store operations used by the ledger.
// Every piece of network I/O in the application goes through this interface,
// which also enables mocking in tests.
type Service interface {
	// CreatePage creates a new page (row) in a database with the given properties.
	CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error)

	// UpdatePage patches an existing page. Only the supplied properties are
	// overwritten; the store leaves all other fields untouched.
	UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error)

	// QueryAll fetches the rows of a database, optionally filtered and sorted.
	// An empty databaseID yields an empty result without a network call.
	QueryAll(ctx context.Context, databaseID string, filter notionapi.Filter, sorts []notionapi.SortObject) ([]notionapi.Page, error)
}
