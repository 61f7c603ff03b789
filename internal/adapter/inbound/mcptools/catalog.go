package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

func registerCatalogTools(srv *mcpserver.MCPServer, d Deps) {
	// Projects.
	srv.AddTool(listTool("list_projects",
		"List all projects with optional pagination. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindProject))

	srv.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get detailed information about a specific project. REQUIRED: project_id."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project ID")),
	), d.handleGet(domain.KindProject, "project_id"))

	srv.AddTool(mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project in Bexio. REQUIRED: name, contact_id. AUTO-FILLED: user_id, pr_state_id=1, pr_project_type_id=1."),
		mcp.WithObject("project_data",
			mcp.Required(),
			mcp.Description("Project data"),
			mcp.Properties(map[string]any{
				"name":               map[string]any{"type": "string", "description": "REQUIRED: Project name"},
				"contact_id":         map[string]any{"type": "integer", "description": "REQUIRED: Contact ID (use search_contacts to find one)"},
				"user_id":            map[string]any{"type": "integer", "description": "User ID. Auto-filled if missing."},
				"pr_state_id":        map[string]any{"type": "integer", "description": "Project state ID. Auto-filled with 1 if missing."},
				"pr_project_type_id": map[string]any{"type": "integer", "description": "Project type ID. Auto-filled with 1 if missing."},
				"start_date":         map[string]any{"type": "string", "description": "Start date (YYYY-MM-DD)"},
				"end_date":           map[string]any{"type": "string", "description": "End date (YYYY-MM-DD)"},
				"comment":            map[string]any{"type": "string", "description": "Project description"},
			}),
		),
	), d.handleCreate(domain.KindProject, "project_data"))

	srv.AddTool(mcp.NewTool("update_project",
		mcp.WithDescription("Update an existing project. REQUIRED: project_id. AUTO-RETRIEVED: name, contact_id, user_id, pr_state_id, pr_project_type_id from the existing project when omitted."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithObject("project_data",
			mcp.Required(),
			mcp.Description("Updated project data"),
			mcp.Properties(map[string]any{
				"name":       map[string]any{"type": "string", "description": "Project name. Auto-retrieved if missing."},
				"comment":    map[string]any{"type": "string", "description": "Project description"},
				"start_date": map[string]any{"type": "string", "description": "Start date (YYYY-MM-DD)"},
				"end_date":   map[string]any{"type": "string", "description": "End date (YYYY-MM-DD)"},
			}),
		),
	), d.handleUpdate(domain.KindProject, "project_id", "project_data"))

	srv.AddTool(mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project. REQUIRED: project_id."),
		mcp.WithNumber("project_id", mcp.Required(), mcp.Description("Project ID to delete")),
	), d.handleDelete(domain.KindProject, "project_id"))

	srv.AddTool(mcp.NewTool("search_projects",
		mcp.WithDescription("Search for projects using specific criteria. REQUIRED: criteria array."),
		criteriaOption("(e.g., 'name', 'contact_id', 'pr_state_id')"),
	), d.handleSearch(domain.KindProject))

	// Items (articles).
	srv.AddTool(listTool("list_items",
		"List all items/articles with optional pagination. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindItem))

	srv.AddTool(mcp.NewTool("get_item",
		mcp.WithDescription("Get detailed information about a specific item/article. REQUIRED: item_id."),
		mcp.WithNumber("item_id", mcp.Required(), mcp.Description("Item ID")),
	), d.handleGet(domain.KindItem, "item_id"))

	srv.AddTool(mcp.NewTool("create_item",
		mcp.WithDescription("Create a new item/article in Bexio. REQUIRED: intern_name. AUTO-FILLED: user_id, article_type_id=1, currency_id=1, is_stock=false, delivery_price=0."),
		mcp.WithObject("item_data",
			mcp.Required(),
			mcp.Description("Item data"),
			mcp.Properties(map[string]any{
				"intern_name":     map[string]any{"type": "string", "description": "REQUIRED: Internal item name"},
				"user_id":         map[string]any{"type": "integer", "description": "User ID. Auto-filled if missing."},
				"nr":              map[string]any{"type": "string", "description": "Item number. API auto-generates if missing."},
				"article_type_id": map[string]any{"type": "integer", "description": "Article type ID. Auto-filled with 1 if missing."},
				"contact_id":      map[string]any{"type": "integer", "description": "Supplier contact ID"},
				"intern_code":     map[string]any{"type": "string", "description": "Internal article number"},
				"purchase_price":  map[string]any{"type": "number", "description": "Purchase price"},
				"sale_price":      map[string]any{"type": "number", "description": "Sale price"},
				"currency_id":     map[string]any{"type": "integer", "description": "Currency ID. Auto-filled with 1 if missing."},
				"tax_income_id":   map[string]any{"type": "integer", "description": "Income tax ID"},
				"tax_expense_id":  map[string]any{"type": "integer", "description": "Expense tax ID"},
				"unit_id":         map[string]any{"type": "integer", "description": "Unit ID"},
				"is_stock":        map[string]any{"type": "boolean", "description": "Is stock item. Auto-filled with false if missing."},
				"stock_min":       map[string]any{"type": "number", "description": "Minimum stock"},
				"delivery_price":  map[string]any{"type": "number", "description": "Delivery price. Auto-filled with 0 if missing."},
				"remarks":         map[string]any{"type": "string", "description": "Remarks"},
			}),
		),
	), d.handleCreate(domain.KindItem, "item_data"))

	srv.AddTool(mcp.NewTool("update_item",
		mcp.WithDescription("Update an existing item/article. REQUIRED: item_id and item_data."),
		mcp.WithNumber("item_id", mcp.Required(), mcp.Description("Item ID")),
		mcp.WithObject("item_data", mcp.Required(), mcp.Description("Updated item data")),
	), d.handleUpdate(domain.KindItem, "item_id", "item_data"))

	srv.AddTool(mcp.NewTool("delete_item",
		mcp.WithDescription("Delete an item/article. REQUIRED: item_id."),
		mcp.WithNumber("item_id", mcp.Required(), mcp.Description("Item ID to delete")),
	), d.handleDelete(domain.KindItem, "item_id"))

	srv.AddTool(mcp.NewTool("search_items",
		mcp.WithDescription("Search for items/articles using specific criteria. REQUIRED: criteria array."),
		criteriaOption("(e.g., 'intern_name', 'intern_code', 'sale_price')"),
	), d.handleSearch(domain.KindItem))
}
