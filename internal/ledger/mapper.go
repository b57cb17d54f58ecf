package ledger

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/joeymizrahi/personal-finance-app/internal/domain"
)

// Property builders. Payloads are assembled from these typed values so a
// misspelled shape fails at compile time instead of at the remote store.

func titleProp(content string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Title: []notionapi.RichText{
			{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{
					Content: content,
				},
			},
		},
	}
}

func richTextProp(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{
			{
				Type: notionapi.ObjectTypeText,
				Text: &notionapi.Text{
					Content: content,
				},
			},
		},
	}
}

func numberProp(n float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{Number: n}
}

func selectProp(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{
		Select: notionapi.Option{
			Name: name,
		},
	}
}

func relationProp(id string) notionapi.RelationProperty {
	return notionapi.RelationProperty{
		Relation: []notionapi.Relation{
			{ID: notionapi.PageID(id)},
		},
	}
}

// dateProp stamps a date at day granularity.
func dateProp(t time.Time) notionapi.DateProperty {
	day := notionapi.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()))
	return notionapi.DateProperty{
		Date: &notionapi.DateObject{
			Start: &day,
		},
	}
}

// Property readers. Pages come back with type-tagged values; rows that do not
// carry the expected shape read as zero values, matching the tolerance the
// category tree requires.

func pageTitle(page notionapi.Page, field string) string {
	if prop, ok := page.Properties[field]; ok {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			if len(title.Title) > 0 {
				return title.Title[0].PlainText
			}
		}
	}
	return ""
}

func pageRichText(page notionapi.Page, field string) string {
	if prop, ok := page.Properties[field]; ok {
		if richText, ok := prop.(*notionapi.RichTextProperty); ok {
			if len(richText.RichText) > 0 {
				return richText.RichText[0].PlainText
			}
		}
	}
	return ""
}

func pageNumber(page notionapi.Page, field string) float64 {
	if prop, ok := page.Properties[field]; ok {
		if number, ok := prop.(*notionapi.NumberProperty); ok {
			return number.Number
		}
	}
	return 0
}

func pageSelect(page notionapi.Page, field string) string {
	if prop, ok := page.Properties[field]; ok {
		if sel, ok := prop.(*notionapi.SelectProperty); ok {
			return sel.Select.Name
		}
	}
	return ""
}

func pageCheckbox(page notionapi.Page, field string) bool {
	if prop, ok := page.Properties[field]; ok {
		if checkbox, ok := prop.(*notionapi.CheckboxProperty); ok {
			return checkbox.Checkbox
		}
	}
	return false
}

func pageRelationID(page notionapi.Page, field string) string {
	if prop, ok := page.Properties[field]; ok {
		if relation, ok := prop.(*notionapi.RelationProperty); ok {
			if len(relation.Relation) > 0 {
				return string(relation.Relation[0].ID)
			}
		}
	}
	return ""
}

// Row decoders.

func accountFromPage(page notionapi.Page) (domain.Account, bool) {
	name := pageTitle(page, "Name")
	if name == "" || page.ID == "" {
		return domain.Account{}, false
	}
	return domain.Account{
		ID:           string(page.ID),
		Name:         name,
		IsInvestment: pageCheckbox(page, "Is Investment Account?"),
	}, true
}

func pillarFromPage(page notionapi.Page) (domain.Pillar, bool) {
	name := pageTitle(page, "Name")
	if name == "" || page.ID == "" {
		return domain.Pillar{}, false
	}
	return domain.Pillar{ID: string(page.ID), Name: name}, true
}

func categoryFromPage(page notionapi.Page) (domain.Category, bool) {
	name := pageTitle(page, "Name")
	if name == "" || page.ID == "" {
		return domain.Category{}, false
	}
	return domain.Category{
		ID:       string(page.ID),
		Name:     name,
		ParentID: pageRelationID(page, "Parent Category"),
	}, true
}

func holdingFromPage(page notionapi.Page) domain.Holding {
	return domain.Holding{
		PageID:       string(page.ID),
		Ticker:       pageRichText(page, "Ticker"),
		AccountID:    pageRelationID(page, "Account"),
		Quantity:     pageNumber(page, "Quantity"),
		CostBasis:    pageNumber(page, "Total Cost Basis USD"),
		RealizedGain: pageNumber(page, "Total Realized Gain/Loss USD"),
		Proceeds:     pageNumber(page, "Total Proceeds from Sales USD"),
	}
}

// holdingProps is the full property set for a freshly created holding row.
func holdingProps(title, ticker, accountID string, quantity, costBasis float64) notionapi.Properties {
	return notionapi.Properties{
		"Holding ID":           titleProp(title),
		"Ticker":               richTextProp(ticker),
		"Account":              relationProp(accountID),
		"Quantity":             numberProp(quantity),
		"Total Cost Basis USD": numberProp(costBasis),
	}
}
