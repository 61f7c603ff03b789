package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

func registerTimeTrackingTools(srv *mcpserver.MCPServer, d Deps) {
	// Timesheets.
	srv.AddTool(listTool("list_timesheets",
		"List timesheet entries with optional pagination. AUTO-FILLED: limit=50, offset=0.",
	), d.handleList(domain.KindTimesheet))

	srv.AddTool(mcp.NewTool("get_timesheet",
		mcp.WithDescription("Get detailed information about a specific timesheet entry. REQUIRED: timesheet_id."),
		mcp.WithNumber("timesheet_id", mcp.Required(), mcp.Description("Timesheet ID")),
	), d.handleGet(domain.KindTimesheet, "timesheet_id"))

	srv.AddTool(mcp.NewTool("create_timesheet",
		mcp.WithDescription("Create a new timesheet entry. REQUIRED: user_id, client_service_id, date and duration. Duration is HH:MM, e.g. '02:30'."),
		mcp.WithObject("timesheet_data",
			mcp.Required(),
			mcp.Description("Timesheet data"),
			mcp.Properties(map[string]any{
				"user_id":           map[string]any{"type": "integer", "description": "REQUIRED: User ID"},
				"client_service_id": map[string]any{"type": "integer", "description": "REQUIRED: Client service ID (use list_client_services)"},
				"date":              map[string]any{"type": "string", "description": "REQUIRED: Work date (YYYY-MM-DD)"},
				"duration":          map[string]any{"type": "string", "description": "REQUIRED: Duration as HH:MM"},
				"contact_id":        map[string]any{"type": "integer", "description": "Related contact ID"},
				"pr_project_id":     map[string]any{"type": "integer", "description": "Related project ID"},
				"status_id":         map[string]any{"type": "integer", "description": "Timesheet status ID"},
				"text":              map[string]any{"type": "string", "description": "Work description"},
				"allowable_bill":    map[string]any{"type": "boolean", "description": "Whether the entry is billable"},
			}),
		),
	), d.handleCreate(domain.KindTimesheet, "timesheet_data"))

	srv.AddTool(mcp.NewTool("search_timesheets",
		mcp.WithDescription("Search timesheet entries by criteria. REQUIRED: criteria array. Falls back to client-side filtering when the native search rejects the query."),
		criteriaOption("(e.g., 'user_id', 'date', 'pr_project_id', 'status_id')"),
	), d.handleSearch(domain.KindTimesheet))

	srv.AddTool(mcp.NewTool("update_timesheet",
		mcp.WithDescription("Update an existing timesheet entry. REQUIRED: timesheet_id. AUTO-RETRIEVED: user_id, client_service_id, date, duration from the existing entry when omitted."),
		mcp.WithNumber("timesheet_id", mcp.Required(), mcp.Description("Timesheet ID")),
		mcp.WithObject("timesheet_data",
			mcp.Required(),
			mcp.Description("Updated timesheet data"),
			mcp.Properties(map[string]any{
				"date":           map[string]any{"type": "string", "description": "Work date (YYYY-MM-DD). Auto-retrieved if missing."},
				"duration":       map[string]any{"type": "string", "description": "Duration as HH:MM. Auto-retrieved if missing."},
				"text":           map[string]any{"type": "string", "description": "Work description"},
				"status_id":      map[string]any{"type": "integer", "description": "Timesheet status ID"},
				"allowable_bill": map[string]any{"type": "boolean", "description": "Whether the entry is billable"},
			}),
		),
	), d.handleUpdate(domain.KindTimesheet, "timesheet_id", "timesheet_data"))

	srv.AddTool(mcp.NewTool("delete_timesheet",
		mcp.WithDescription("Delete a timesheet entry. REQUIRED: timesheet_id."),
		mcp.WithNumber("timesheet_id", mcp.Required(), mcp.Description("Timesheet ID to delete")),
	), d.handleDelete(domain.KindTimesheet, "timesheet_id"))

	// Timesheet statuses.
	srv.AddTool(mcp.NewTool("list_timesheet_statuses",
		mcp.WithDescription("List all timesheet statuses."),
	), d.handleList(domain.KindTimesheetStatus))

	srv.AddTool(mcp.NewTool("get_timesheet_status",
		mcp.WithDescription("Get detailed information about a specific timesheet status. REQUIRED: status_id."),
		mcp.WithNumber("status_id", mcp.Required(), mcp.Description("Timesheet status ID")),
	), d.handleGet(domain.KindTimesheetStatus, "status_id"))

	// Client services.
	srv.AddTool(mcp.NewTool("list_client_services",
		mcp.WithDescription("List all client services (billable service types)."),
	), d.handleList(domain.KindClientService))

	srv.AddTool(mcp.NewTool("get_client_service",
		mcp.WithDescription("Get detailed information about a specific client service. REQUIRED: service_id."),
		mcp.WithNumber("service_id", mcp.Required(), mcp.Description("Client service ID")),
	), d.handleGet(domain.KindClientService, "service_id"))

	srv.AddTool(mcp.NewTool("create_client_service",
		mcp.WithDescription("Create a new client service. REQUIRED: name."),
		mcp.WithObject("service_data",
			mcp.Required(),
			mcp.Description("Client service data"),
			mcp.Properties(map[string]any{
				"name":                   map[string]any{"type": "string", "description": "REQUIRED: Service name"},
				"default_is_billable":    map[string]any{"type": "boolean", "description": "Whether new entries are billable by default"},
				"default_price_per_hour": map[string]any{"type": "number", "description": "Default hourly rate"},
			}),
		),
	), d.handleCreate(domain.KindClientService, "service_data"))

	srv.AddTool(mcp.NewTool("search_client_services",
		mcp.WithDescription("Search client services by criteria. REQUIRED: criteria array."),
		criteriaOption("(e.g., 'name')"),
	), d.handleSearch(domain.KindClientService))

	// Business activities.
	srv.AddTool(mcp.NewTool("list_business_activities",
		mcp.WithDescription("List all business activities."),
	), d.handleList(domain.KindBusinessActivity))

	srv.AddTool(mcp.NewTool("get_business_activity",
		mcp.WithDescription("Get detailed information about a specific business activity. REQUIRED: activity_id."),
		mcp.WithNumber("activity_id", mcp.Required(), mcp.Description("Business activity ID")),
	), d.handleGet(domain.KindBusinessActivity, "activity_id"))

	srv.AddTool(mcp.NewTool("create_business_activity",
		mcp.WithDescription("Create a new business activity. REQUIRED: name."),
		mcp.WithObject("activity_data",
			mcp.Required(),
			mcp.Description("Business activity data"),
			mcp.Properties(map[string]any{
				"name":                   map[string]any{"type": "string", "description": "REQUIRED: Activity name"},
				"default_is_billable":    map[string]any{"type": "boolean", "description": "Whether entries are billable by default"},
				"default_price_per_hour": map[string]any{"type": "number", "description": "Default hourly rate"},
			}),
		),
	), d.handleCreate(domain.KindBusinessActivity, "activity_data"))

	srv.AddTool(mcp.NewTool("search_business_activities",
		mcp.WithDescription("Search business activities by criteria. REQUIRED: criteria array."),
		criteriaOption("(e.g., 'name')"),
	), d.handleSearch(domain.KindBusinessActivity))
}
