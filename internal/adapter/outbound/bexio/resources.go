package bexio

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

// endpoints maps each resource kind to its collection path. Sales objects
// live under the 2.0 family, accounting objects under 3.0; the two families
// disagree on search payload shapes, which is what the search resolver's
// per-kind profiles absorb.
var endpoints = map[domain.Kind]string{
	domain.KindContact:          "/2.0/contact",
	domain.KindInvoice:          "/2.0/kb_invoice",
	domain.KindQuote:            "/2.0/kb_offer",
	domain.KindOrder:            "/2.0/kb_order",
	domain.KindProject:          "/2.0/pr_project",
	domain.KindItem:             "/2.0/article",
	domain.KindTimesheet:        "/2.0/timesheet",
	domain.KindTimesheetStatus:  "/2.0/timesheet_status",
	domain.KindClientService:    "/2.0/client_service",
	domain.KindBusinessActivity: "/2.0/business_activity",
	domain.KindAccount:          "/2.0/accounts",
	domain.KindAccountGroup:     "/2.0/account_groups",
	domain.KindTax:              "/3.0/taxes",
	domain.KindCurrency:         "/3.0/currencies",
	domain.KindManualEntry:      "/3.0/accounting/manual_entries",
	domain.KindBusinessYear:     "/3.0/accounting/business_years",
	domain.KindCalendarYear:     "/3.0/accounting/calendar_years",
	domain.KindVatPeriod:        "/3.0/accounting/vat_periods",
}

func collectionPath(kind domain.Kind) (string, error) {
	path, ok := endpoints[kind]
	if !ok {
		return "", fmt.Errorf("no endpoint registered for kind %q", kind)
	}
	return path, nil
}

func itemPath(kind domain.Kind, id int) (string, error) {
	path, err := collectionPath(kind)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%d", path, id), nil
}

// ListParams are the common collection query parameters. Zero values are
// omitted from the request so the API's own defaults apply.
type ListParams struct {
	Limit        int
	Offset       int
	OrderBy      string
	ShowArchived bool
	Scope        string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.ShowArchived {
		q.Set("show_archived", "true")
	}
	if p.Scope != "" {
		q.Set("scope", p.Scope)
	}
	return q
}

// List fetches a page of records for the kind.
func (c *Client) List(ctx context.Context, kind domain.Kind, params ListParams) ([]domain.Record, error) {
	path, err := collectionPath(kind)
	if err != nil {
		return nil, err
	}
	var records []domain.Record
	if err := c.getJSON(ctx, path, params.query(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Fetch retrieves one record by id.
func (c *Client) Fetch(ctx context.Context, kind domain.Kind, id int) (domain.Record, error) {
	path, err := itemPath(kind, id)
	if err != nil {
		return nil, err
	}
	var record domain.Record
	if err := c.getJSON(ctx, path, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, kind domain.Kind, payload domain.Payload) (domain.Record, error) {
	path, err := collectionPath(kind)
	if err != nil {
		return nil, err
	}
	var record domain.Record
	if err := c.postJSON(ctx, path, payload.Raw(), &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update puts the payload over an existing record.
func (c *Client) Update(ctx context.Context, kind domain.Kind, id int, payload domain.Payload) (domain.Record, error) {
	path, err := itemPath(kind, id)
	if err != nil {
		return nil, err
	}
	var record domain.Record
	if err := c.putJSON(ctx, path, payload.Raw(), &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, kind domain.Kind, id int) error {
	path, err := itemPath(kind, id)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// NativeSearch posts a search body to the kind's /search endpoint. The body
// shape (bare condition array or {"criteria": [...]}) is the resolver's
// decision, not the transport's.
func (c *Client) NativeSearch(ctx context.Context, kind domain.Kind, body any) ([]domain.Record, error) {
	path, err := collectionPath(kind)
	if err != nil {
		return nil, err
	}
	var records []domain.Record
	if err := c.postJSON(ctx, path+"/search", body, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListPage fetches the first page of up to limit records. This is the bulk
// fetch behind the search resolver's client-side fallback tier.
func (c *Client) ListPage(ctx context.Context, kind domain.Kind, limit int) ([]domain.Record, error) {
	return c.List(ctx, kind, ListParams{Limit: limit})
}

// ListActiveTaxes returns the active taxes in API order. The completion
// engine's tax lookup takes the first entry, so order matters: Bexio returns
// taxes id-ascending.
func (c *Client) ListActiveTaxes(ctx context.Context) ([]domain.Record, error) {
	return c.List(ctx, domain.KindTax, ListParams{Scope: "active"})
}

// ExchangeRates fetches currency exchange rates, optionally for a past date
// (YYYY-MM-DD).
func (c *Client) ExchangeRates(ctx context.Context, date string) ([]domain.Record, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	var rates []domain.Record
	if err := c.getJSON(ctx, "/3.0/currencies/exchange_rates", q, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// NextReferenceNumber returns the next free reference number for manual
// entries.
func (c *Client) NextReferenceNumber(ctx context.Context) (domain.Record, error) {
	var record domain.Record
	if err := c.getJSON(ctx, "/3.0/accounting/manual_entries/reference_number", nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// JournalParams filter the accounting journal report.
type JournalParams struct {
	FromDate    string
	ToDate      string
	AccountUUID string
	Limit       int
	Offset      int
}

// Journal fetches the read-only accounting ledger.
func (c *Client) Journal(ctx context.Context, params JournalParams) ([]domain.Record, error) {
	q := url.Values{}
	if params.FromDate != "" {
		q.Set("from", params.FromDate)
	}
	if params.ToDate != "" {
		q.Set("to", params.ToDate)
	}
	if params.AccountUUID != "" {
		q.Set("account_uuid", params.AccountUUID)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	var entries []domain.Record
	if err := c.getJSON(ctx, "/3.0/accounting/journal", q, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
