package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

// positionItems is the schema for document position arrays. Invoices, quotes
// and orders share the same line-item shape.
func positionItems() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":       map[string]any{"type": "string", "description": "Position type. Auto-filled with 'KbPositionCustom' if missing."},
			"text":       map[string]any{"type": "string", "description": "REQUIRED: Line item description"},
			"amount":     map[string]any{"type": "number", "description": "Quantity. Auto-filled with 1 if missing."},
			"unit_price": map[string]any{"type": "number", "description": "Price per unit. Auto-filled with 0.0 if missing."},
			"tax_id":     map[string]any{"type": "integer", "description": "Tax ID. Auto-filled with the first active tax if missing."},
			"account_id": map[string]any{"type": "integer", "description": "Account ID for bookkeeping"},
		},
		"required": []string{"text"},
	}
}

func registerSalesTools(srv *mcpserver.MCPServer, d Deps) {
	// Invoices. Create and update take their fields at the top level, the way
	// most MCP clients emit them.
	srv.AddTool(mcp.NewTool("search_invoices",
		mcp.WithDescription("Search for invoices using specific criteria. REQUIRED: criteria array. Falls back to client-side filtering when the native search rejects the query."),
		criteriaOption("(e.g., 'title', 'contact_id', 'kb_item_status_id')"),
	), d.handleSearch(domain.KindInvoice))

	srv.AddTool(mcp.NewTool("get_invoice",
		mcp.WithDescription("Get detailed information about a specific invoice. REQUIRED: invoice_id."),
		mcp.WithNumber("invoice_id", mcp.Required(), mcp.Description("Invoice ID")),
	), d.handleGet(domain.KindInvoice, "invoice_id"))

	srv.AddTool(mcp.NewTool("create_invoice",
		mcp.WithDescription("Create a new invoice in Bexio. REQUIRED: contact_id and at least one position with 'text'. AUTO-FILLED: user_id, position type/amount/unit_price/tax_id."),
		mcp.WithNumber("contact_id", mcp.Required(), mcp.Description("ID of an existing contact (use search_contacts to find one)")),
		mcp.WithString("title", mcp.Description("Invoice title")),
		mcp.WithNumber("user_id", mcp.Description("User ID. Auto-filled if missing.")),
		mcp.WithString("is_valid_from", mcp.Description("Invoice date (YYYY-MM-DD)")),
		mcp.WithString("is_valid_to", mcp.Description("Due date (YYYY-MM-DD)")),
		mcp.WithArray("positions",
			mcp.Required(),
			mcp.Description("Invoice line items - each needs at least 'text'"),
			mcp.Items(positionItems()),
		),
	), d.handleCreate(domain.KindInvoice, ""))

	srv.AddTool(mcp.NewTool("update_invoice",
		mcp.WithDescription("Update an existing invoice. REQUIRED: invoice_id. AUTO-RETRIEVED: contact_id, user_id from the existing invoice when omitted."),
		mcp.WithNumber("invoice_id", mcp.Required(), mcp.Description("Invoice ID")),
		mcp.WithObject("invoice_data",
			mcp.Required(),
			mcp.Description("Updated invoice data"),
			mcp.Properties(map[string]any{
				"title":         map[string]any{"type": "string", "description": "Invoice title"},
				"contact_id":    map[string]any{"type": "integer", "description": "Contact ID. Auto-retrieved if missing."},
				"user_id":       map[string]any{"type": "integer", "description": "User ID. Auto-retrieved if missing."},
				"is_valid_from": map[string]any{"type": "string", "description": "Invoice date (YYYY-MM-DD)"},
				"is_valid_to":   map[string]any{"type": "string", "description": "Due date (YYYY-MM-DD)"},
			}),
		),
	), d.handleUpdate(domain.KindInvoice, "invoice_id", "invoice_data"))

	srv.AddTool(mcp.NewTool("delete_invoice",
		mcp.WithDescription("Delete an invoice. REQUIRED: invoice_id."),
		mcp.WithNumber("invoice_id", mcp.Required(), mcp.Description("Invoice ID to delete")),
	), d.handleDelete(domain.KindInvoice, "invoice_id"))

	srv.AddTool(listTool("list_invoices",
		"List all invoices with optional pagination. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindInvoice))

	// Quotes (kb_offer).
	srv.AddTool(mcp.NewTool("search_quotes",
		mcp.WithDescription("Search for quotes using specific criteria. REQUIRED: criteria array. Falls back to client-side filtering when the native search rejects the query."),
		criteriaOption("(e.g., 'title', 'contact_id', 'kb_item_status_id')"),
	), d.handleSearch(domain.KindQuote))

	srv.AddTool(mcp.NewTool("get_quote",
		mcp.WithDescription("Get detailed information about a specific quote. REQUIRED: quote_id."),
		mcp.WithNumber("quote_id", mcp.Required(), mcp.Description("Quote ID")),
	), d.handleGet(domain.KindQuote, "quote_id"))

	srv.AddTool(mcp.NewTool("create_quote",
		mcp.WithDescription("Create a new quote in Bexio. REQUIRED: contact_id and at least one position with 'text'. AUTO-FILLED: user_id, position type/amount/unit_price/tax_id."),
		mcp.WithNumber("contact_id", mcp.Required(), mcp.Description("ID of an existing contact")),
		mcp.WithString("title", mcp.Description("Quote title")),
		mcp.WithNumber("user_id", mcp.Description("User ID. Auto-filled if missing.")),
		mcp.WithString("is_valid_from", mcp.Description("Quote date (YYYY-MM-DD)")),
		mcp.WithString("is_valid_until", mcp.Description("Validity end date (YYYY-MM-DD)")),
		mcp.WithArray("positions",
			mcp.Required(),
			mcp.Description("Quote line items - each needs at least 'text'"),
			mcp.Items(positionItems()),
		),
	), d.handleCreate(domain.KindQuote, ""))

	srv.AddTool(mcp.NewTool("update_quote",
		mcp.WithDescription("Update an existing quote. REQUIRED: quote_id. AUTO-RETRIEVED: contact_id, user_id from the existing quote when omitted."),
		mcp.WithNumber("quote_id", mcp.Required(), mcp.Description("Quote ID")),
		mcp.WithObject("quote_data",
			mcp.Required(),
			mcp.Description("Updated quote data"),
			mcp.Properties(map[string]any{
				"title":          map[string]any{"type": "string", "description": "Quote title"},
				"contact_id":     map[string]any{"type": "integer", "description": "Contact ID. Auto-retrieved if missing."},
				"user_id":        map[string]any{"type": "integer", "description": "User ID. Auto-retrieved if missing."},
				"is_valid_from":  map[string]any{"type": "string", "description": "Quote date (YYYY-MM-DD)"},
				"is_valid_until": map[string]any{"type": "string", "description": "Validity end date (YYYY-MM-DD)"},
			}),
		),
	), d.handleUpdate(domain.KindQuote, "quote_id", "quote_data"))

	srv.AddTool(mcp.NewTool("delete_quote",
		mcp.WithDescription("Delete a quote. REQUIRED: quote_id."),
		mcp.WithNumber("quote_id", mcp.Required(), mcp.Description("Quote ID to delete")),
	), d.handleDelete(domain.KindQuote, "quote_id"))

	srv.AddTool(listTool("list_quotes",
		"List all quotes with optional pagination. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindQuote))

	// Orders.
	srv.AddTool(mcp.NewTool("search_orders",
		mcp.WithDescription("Search for orders using specific criteria. REQUIRED: criteria array."),
		criteriaOption("(e.g., 'title', 'contact_id', 'kb_item_status_id')"),
	), d.handleSearch(domain.KindOrder))

	srv.AddTool(mcp.NewTool("get_order",
		mcp.WithDescription("Get detailed information about a specific order. REQUIRED: order_id."),
		mcp.WithNumber("order_id", mcp.Required(), mcp.Description("Order ID")),
	), d.handleGet(domain.KindOrder, "order_id"))

	srv.AddTool(mcp.NewTool("create_order",
		mcp.WithDescription("Create a new order in Bexio. REQUIRED: order_data with contact_id, user_id and positions."),
		mcp.WithObject("order_data",
			mcp.Required(),
			mcp.Description("Order data"),
			mcp.Properties(map[string]any{
				"title":      map[string]any{"type": "string", "description": "Order title"},
				"contact_id": map[string]any{"type": "integer", "description": "REQUIRED: Contact ID"},
				"user_id":    map[string]any{"type": "integer", "description": "REQUIRED: User ID"},
				"positions":  map[string]any{"type": "array", "description": "Order line items", "items": positionItems()},
			}),
		),
	), d.handleCreate(domain.KindOrder, "order_data"))

	srv.AddTool(mcp.NewTool("update_order",
		mcp.WithDescription("Update an existing order. REQUIRED: order_id and order_data."),
		mcp.WithNumber("order_id", mcp.Required(), mcp.Description("Order ID")),
		mcp.WithObject("order_data", mcp.Required(), mcp.Description("Updated order data")),
	), d.handleUpdate(domain.KindOrder, "order_id", "order_data"))

	srv.AddTool(mcp.NewTool("delete_order",
		mcp.WithDescription("Delete an order. REQUIRED: order_id."),
		mcp.WithNumber("order_id", mcp.Required(), mcp.Description("Order ID to delete")),
	), d.handleDelete(domain.KindOrder, "order_id"))

	srv.AddTool(listTool("list_orders",
		"List all orders with optional pagination. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindOrder))
}
