package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tomasbottlik/bexio-mcp-server/internal/adapter/outbound/bexio"
	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

const defaultJournalLimit = 500

func registerAccountingTools(srv *mcpserver.MCPServer, d Deps) {
	// Chart of accounts.
	srv.AddTool(listTool("list_accounts",
		"List all accounts from the chart of accounts. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindAccount))

	srv.AddTool(mcp.NewTool("get_account",
		mcp.WithDescription("Get detailed information about a specific account. REQUIRED: account_id."),
		mcp.WithNumber("account_id", mcp.Required(), mcp.Description("Account ID")),
	), d.handleGet(domain.KindAccount, "account_id"))

	srv.AddTool(mcp.NewTool("search_accounts",
		mcp.WithDescription("Search accounts by criteria. REQUIRED: criteria array."),
		criteriaOption("(e.g., 'account_no', 'name', 'account_group_id')"),
	), d.handleSearch(domain.KindAccount))

	srv.AddTool(listTool("list_account_groups",
		"List all account groups. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindAccountGroup))

	srv.AddTool(mcp.NewTool("get_account_group",
		mcp.WithDescription("Get detailed information about a specific account group. REQUIRED: account_group_id."),
		mcp.WithNumber("account_group_id", mcp.Required(), mcp.Description("Account group ID")),
	), d.handleGet(domain.KindAccountGroup, "account_group_id"))

	// Taxes. The scope filter defaults to active because only active taxes
	// are usable on new documents.
	srv.AddTool(mcp.NewTool("list_taxes",
		mcp.WithDescription("List taxes. AUTO-FILLED: scope='active'. Use scope='all' or 'inactive' to see the rest."),
		mcp.WithString("scope", mcp.Description("Tax scope: 'active', 'inactive' or 'all'"), mcp.DefaultString("active")),
	), d.handleListTaxes())

	srv.AddTool(mcp.NewTool("get_tax",
		mcp.WithDescription("Get detailed information about a specific tax. REQUIRED: tax_id."),
		mcp.WithNumber("tax_id", mcp.Required(), mcp.Description("Tax ID")),
	), d.handleGet(domain.KindTax, "tax_id"))

	// Currencies.
	srv.AddTool(mcp.NewTool("list_currencies",
		mcp.WithDescription("List all currencies configured in the Bexio account."),
	), d.handleList(domain.KindCurrency))

	srv.AddTool(mcp.NewTool("get_currency",
		mcp.WithDescription("Get detailed information about a specific currency. REQUIRED: currency_id."),
		mcp.WithNumber("currency_id", mcp.Required(), mcp.Description("Currency ID")),
	), d.handleGet(domain.KindCurrency, "currency_id"))

	srv.AddTool(mcp.NewTool("create_currency",
		mcp.WithDescription("Create a new currency. REQUIRED: name (ISO code) and round_factor."),
		mcp.WithObject("currency_data",
			mcp.Required(),
			mcp.Description("Currency data"),
			mcp.Properties(map[string]any{
				"name":         map[string]any{"type": "string", "description": "REQUIRED: ISO currency code, e.g. 'EUR'"},
				"round_factor": map[string]any{"type": "number", "description": "REQUIRED: Rounding factor, e.g. 0.05"},
			}),
		),
	), d.handleCreate(domain.KindCurrency, "currency_data"))

	srv.AddTool(mcp.NewTool("get_exchange_rates",
		mcp.WithDescription("Get currency exchange rates. Optional: date (YYYY-MM-DD) for historical rates."),
		mcp.WithString("date", mcp.Description("Rate date (YYYY-MM-DD). Defaults to today.")),
	), d.handleExchangeRates())

	// Manual entries.
	srv.AddTool(listTool("list_manual_entries",
		"List manual accounting entries. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindManualEntry))

	srv.AddTool(mcp.NewTool("get_manual_entry",
		mcp.WithDescription("Get detailed information about a specific manual entry. REQUIRED: entry_id."),
		mcp.WithNumber("entry_id", mcp.Required(), mcp.Description("Manual entry ID")),
	), d.handleGet(domain.KindManualEntry, "entry_id"))

	srv.AddTool(mcp.NewTool("create_manual_entry",
		mcp.WithDescription("Create a manual accounting entry. REQUIRED: type, date, entries array with debit_account_id, credit_account_id, amount and description."),
		mcp.WithObject("entry_data",
			mcp.Required(),
			mcp.Description("Manual entry data"),
			mcp.Properties(map[string]any{
				"type":           map[string]any{"type": "string", "description": "REQUIRED: Entry type, e.g. 'manual_single_entry'"},
				"date":           map[string]any{"type": "string", "description": "REQUIRED: Booking date (YYYY-MM-DD)"},
				"reference_nr":   map[string]any{"type": "string", "description": "Reference number (use get_next_reference_number)"},
				"entries": map[string]any{
					"type":        "array",
					"description": "REQUIRED: Booking lines",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"debit_account_id":  map[string]any{"type": "integer", "description": "REQUIRED: Debit account ID"},
							"credit_account_id": map[string]any{"type": "integer", "description": "REQUIRED: Credit account ID"},
							"amount":            map[string]any{"type": "number", "description": "REQUIRED: Amount"},
							"description":       map[string]any{"type": "string", "description": "REQUIRED: Booking text"},
							"currency_id":       map[string]any{"type": "integer", "description": "Currency ID. Defaults to the base currency."},
							"currency_factor":   map[string]any{"type": "number", "description": "Currency factor"},
						},
					},
				},
			}),
		),
	), d.handleCreate(domain.KindManualEntry, "entry_data"))

	srv.AddTool(mcp.NewTool("get_next_reference_number",
		mcp.WithDescription("Get the next free reference number for a manual accounting entry."),
	), d.handleNextReferenceNumber())

	srv.AddTool(mcp.NewTool("get_journal",
		mcp.WithDescription("Get the accounting journal. Optional: from_date, to_date (YYYY-MM-DD), account_uuid, limit (default 500)."),
		mcp.WithString("from_date", mcp.Description("Start date (YYYY-MM-DD)")),
		mcp.WithString("to_date", mcp.Description("End date (YYYY-MM-DD)")),
		mcp.WithString("account_uuid", mcp.Description("Restrict to a single account by UUID")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of journal rows"), mcp.DefaultNumber(defaultJournalLimit)),
	), d.handleJournal())

	// Fiscal periods.
	srv.AddTool(mcp.NewTool("list_business_years",
		mcp.WithDescription("List all business years."),
	), d.handleList(domain.KindBusinessYear))

	srv.AddTool(mcp.NewTool("get_business_year",
		mcp.WithDescription("Get detailed information about a specific business year. REQUIRED: business_year_id."),
		mcp.WithNumber("business_year_id", mcp.Required(), mcp.Description("Business year ID")),
	), d.handleGet(domain.KindBusinessYear, "business_year_id"))

	srv.AddTool(mcp.NewTool("list_calendar_years",
		mcp.WithDescription("List all calendar years."),
	), d.handleList(domain.KindCalendarYear))

	srv.AddTool(mcp.NewTool("get_calendar_year",
		mcp.WithDescription("Get detailed information about a specific calendar year. REQUIRED: calendar_year_id."),
		mcp.WithNumber("calendar_year_id", mcp.Required(), mcp.Description("Calendar year ID")),
	), d.handleGet(domain.KindCalendarYear, "calendar_year_id"))

	srv.AddTool(mcp.NewTool("create_calendar_year",
		mcp.WithDescription("Create a new calendar year. REQUIRED: start (YYYY-01-01) and end (YYYY-12-31)."),
		mcp.WithObject("calendar_year_data",
			mcp.Required(),
			mcp.Description("Calendar year data"),
			mcp.Properties(map[string]any{
				"start": map[string]any{"type": "string", "description": "REQUIRED: First day (YYYY-MM-DD)"},
				"end":   map[string]any{"type": "string", "description": "REQUIRED: Last day (YYYY-MM-DD)"},
			}),
		),
	), d.handleCreate(domain.KindCalendarYear, "calendar_year_data"))

	srv.AddTool(mcp.NewTool("search_calendar_years",
		mcp.WithDescription("Search calendar years by criteria. REQUIRED: criteria array."),
		criteriaOption("(e.g., 'start', 'end')"),
	), d.handleSearch(domain.KindCalendarYear))

	srv.AddTool(mcp.NewTool("list_vat_periods",
		mcp.WithDescription("List all VAT periods."),
	), d.handleList(domain.KindVatPeriod))

	srv.AddTool(mcp.NewTool("get_vat_period",
		mcp.WithDescription("Get detailed information about a specific VAT period. REQUIRED: vat_period_id."),
		mcp.WithNumber("vat_period_id", mcp.Required(), mcp.Description("VAT period ID")),
	), d.handleGet(domain.KindVatPeriod, "vat_period_id"))
}

func (d Deps) handleListTaxes() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope := req.GetString("scope", "active")
		if scope == "all" {
			scope = ""
		}
		records, err := d.Client.List(ctx, domain.KindTax, bexio.ListParams{Scope: scope})
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(records)
	}
}

func (d Deps) handleExchangeRates() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rates, err := d.Client.ExchangeRates(ctx, req.GetString("date", ""))
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(rates)
	}
}

func (d Deps) handleNextReferenceNumber() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		record, err := d.Client.NextReferenceNumber(ctx)
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(record)
	}
}

func (d Deps) handleJournal() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := bexio.JournalParams{
			FromDate:    req.GetString("from_date", ""),
			ToDate:      req.GetString("to_date", ""),
			AccountUUID: req.GetString("account_uuid", ""),
			Limit:       req.GetInt("limit", defaultJournalLimit),
		}
		rows, err := d.Client.Journal(ctx, params)
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(rows)
	}
}
