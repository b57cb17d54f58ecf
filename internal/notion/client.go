package notion

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/jomei/notionapi"

	"github.com/joeymizrahi/personal-finance-app/internal/apperrors"
)

// requestTimeout bounds every remote call. There is no retry: a timed-out or
// failed call surfaces to the caller, which decides what to do next.
const requestTimeout = 30 * time.Second

// Client is the concrete implementation of Service using the Notion SDK.
type Client struct {
	client *notionapi.Client
}

// New creates a Client authenticated with the provided API token. sslVerify
// controls TLS certificate verification; it exists for environments with
// intercepting proxies and should stay on everywhere else.
func New(apiKey string, sslVerify bool) *Client {
	return newWithHTTPClient(apiKey, newHTTPClient(sslVerify))
}

func newWithHTTPClient(apiKey string, hc *http.Client) *Client {
	return &Client{
		client: notionapi.NewClient(notionapi.Token(apiKey), notionapi.WithHTTPClient(hc)),
	}
}

func newHTTPClient(sslVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !sslVerify}
	return &http.Client{
		Timeout:   requestTimeout,
		Transport: transport,
	}
}

// CreatePage creates a new page in a database with the given properties.
func (c *Client) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	}

	page, err := c.client.Page.Create(ctx, req)
	if err != nil {
		return nil, remoteError("create page", err)
	}

	return page, nil
}

// UpdatePage patches an existing page with the given properties.
func (c *Client) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	req := &notionapi.PageUpdateRequest{
		Properties: properties,
	}

	page, err := c.client.Page.Update(ctx, notionapi.PageID(pageID), req)
	if err != nil {
		return nil, remoteError("update page", err)
	}

	return page, nil
}

// QueryAll fetches the rows of a database in a single request. An unset
// databaseID is a permissive default for optional tables: it returns an empty
// result without touching the network.
func (c *Client) QueryAll(ctx context.Context, databaseID string, filter notionapi.Filter, sorts []notionapi.SortObject) ([]notionapi.Page, error) {
	if databaseID == "" {
		return nil, nil
	}

	req := &notionapi.DatabaseQueryRequest{
		Filter: filter,
		Sorts:  sorts,
	}

	resp, err := c.client.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, remoteError("query database", err)
	}

	return resp.Results, nil
}

// remoteError normalizes SDK failures into the single RemoteError channel,
// carrying the remote response text when the store returned one.
func remoteError(op string, err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return &apperrors.RemoteError{Op: op, Body: apiErr.Message, Err: err}
	}
	return &apperrors.RemoteError{Op: op, Err: err}
}
