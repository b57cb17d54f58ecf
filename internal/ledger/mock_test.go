package ledger

import (
	"context"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/joeymizrahi/personal-finance-app/internal/config"
)

// call records one invocation against the mock store.
type call struct {
	method     string // "create", "update" or "query"
	databaseID string
	pageID     string
	properties notionapi.Properties
	filter     notionapi.Filter
}

// mockNotion implements notion.Service, recording every call and serving
// canned query results per database. failOn, when set, is consulted on each
// call and may inject a failure.
type mockNotion struct {
	calls      []call
	queryPages map[string][]notionapi.Page
	failOn     func(c call) error
}

func (m *mockNotion) CreatePage(ctx context.Context, databaseID string, properties notionapi.Properties) (*notionapi.Page, error) {
	c := call{method: "create", databaseID: databaseID, properties: properties}
	m.calls = append(m.calls, c)
	if m.failOn != nil {
		if err := m.failOn(c); err != nil {
			return nil, err
		}
	}
	return &notionapi.Page{ID: "created-page"}, nil
}

func (m *mockNotion) UpdatePage(ctx context.Context, pageID string, properties notionapi.Properties) (*notionapi.Page, error) {
	c := call{method: "update", pageID: pageID, properties: properties}
	m.calls = append(m.calls, c)
	if m.failOn != nil {
		if err := m.failOn(c); err != nil {
			return nil, err
		}
	}
	return &notionapi.Page{ID: notionapi.ObjectID(pageID)}, nil
}

func (m *mockNotion) QueryAll(ctx context.Context, databaseID string, filter notionapi.Filter, sorts []notionapi.SortObject) ([]notionapi.Page, error) {
	c := call{method: "query", databaseID: databaseID, filter: filter}
	m.calls = append(m.calls, c)
	if m.failOn != nil {
		if err := m.failOn(c); err != nil {
			return nil, err
		}
	}
	return m.queryPages[databaseID], nil
}

// writes returns only the calls that mutate the remote store.
func (m *mockNotion) writes() []call {
	var out []call
	for _, c := range m.calls {
		if c.method != "query" {
			out = append(out, c)
		}
	}
	return out
}

func newTestService(m *mockNotion) *Service {
	cfg := &config.Config{
		Notion: config.NotionConfig{
			APIKey:                   "secret_test",
			TransactionsDB:           "tx-db",
			AccountsDB:               "acc-db",
			CategoriesDB:             "cat-db",
			PillarsDB:                "pil-db",
			InvestmentTransactionsDB: "inv-db",
			HoldingsDB:               "hold-db",
			SSLVerify:                true,
		},
	}
	svc := NewService(m, cfg, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

// Page fixtures in the remote store's decoded shape.

func accountPage(id, name string, investment bool) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Name":                   &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: name}}},
			"Is Investment Account?": &notionapi.CheckboxProperty{Checkbox: investment},
		},
	}
}

func pillarPage(id, name string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: name}}},
		},
	}
}

func categoryPage(id, name, parentID, typeTag string) notionapi.Page {
	props := notionapi.Properties{
		"Name": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: name}}},
	}
	if parentID != "" {
		props["Parent Category"] = &notionapi.RelationProperty{
			Relation: []notionapi.Relation{{ID: notionapi.PageID(parentID)}},
		}
	}
	if typeTag != "" {
		props["Type"] = &notionapi.SelectProperty{Select: notionapi.Option{Name: typeTag}}
	}
	return notionapi.Page{ID: notionapi.ObjectID(id), Properties: props}
}

func holdingPage(id, ticker, accountID string, quantity, costBasis, realizedGain, proceeds float64) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"Holding ID": &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: ticker}}},
			"Ticker":     &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: ticker}}},
			"Account": &notionapi.RelationProperty{
				Relation: []notionapi.Relation{{ID: notionapi.PageID(accountID)}},
			},
			"Quantity":                      &notionapi.NumberProperty{Number: quantity},
			"Total Cost Basis USD":          &notionapi.NumberProperty{Number: costBasis},
			"Total Realized Gain/Loss USD":  &notionapi.NumberProperty{Number: realizedGain},
			"Total Proceeds from Sales USD": &notionapi.NumberProperty{Number: proceeds},
		},
	}
}

// Readers over the value-typed properties the builders produce.

func propTitle(props notionapi.Properties, field string) string {
	if title, ok := props[field].(notionapi.TitleProperty); ok && len(title.Title) > 0 {
		if title.Title[0].Text != nil {
			return title.Title[0].Text.Content
		}
	}
	return ""
}

func propRichText(props notionapi.Properties, field string) string {
	if rt, ok := props[field].(notionapi.RichTextProperty); ok && len(rt.RichText) > 0 {
		if rt.RichText[0].Text != nil {
			return rt.RichText[0].Text.Content
		}
	}
	return ""
}

func propNumber(props notionapi.Properties, field string) float64 {
	if n, ok := props[field].(notionapi.NumberProperty); ok {
		return n.Number
	}
	return 0
}

func propSelect(props notionapi.Properties, field string) string {
	if sel, ok := props[field].(notionapi.SelectProperty); ok {
		return sel.Select.Name
	}
	return ""
}

func propRelationID(props notionapi.Properties, field string) string {
	if rel, ok := props[field].(notionapi.RelationProperty); ok && len(rel.Relation) > 0 {
		return string(rel.Relation[0].ID)
	}
	return ""
}
