package mcptools

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

func registerContactTools(srv *mcpserver.MCPServer, d Deps) {
	srv.AddTool(mcp.NewTool("search_contacts",
		mcp.WithDescription("Search for contacts in Bexio using specific criteria. REQUIRED: criteria array with field/value/criteria objects."),
		criteriaOption("(e.g., 'name_1', 'name_2', 'mail', 'city')"),
	), d.handleSearch(domain.KindContact))

	srv.AddTool(mcp.NewTool("get_contact",
		mcp.WithDescription("Get detailed information about a specific contact. REQUIRED: contact_id."),
		mcp.WithNumber("contact_id", mcp.Required(), mcp.Description("Contact ID")),
	), d.handleGet(domain.KindContact, "contact_id"))

	srv.AddTool(mcp.NewTool("create_contact",
		mcp.WithDescription("Create a new contact in Bexio. REQUIRED: name_1. AUTO-FILLED: contact_type_id=2, user_id, owner_id. 'email' is accepted as an alias for 'mail'."),
		mcp.WithObject("contact_data",
			mcp.Required(),
			mcp.Description("Contact data"),
			mcp.Properties(map[string]any{
				"name_1":          map[string]any{"type": "string", "description": "REQUIRED: First name or company name"},
				"name_2":          map[string]any{"type": "string", "description": "Last name (for persons)"},
				"contact_type_id": map[string]any{"type": "integer", "description": "Contact type (1=company, 2=person). Auto-filled with 2 if missing."},
				"user_id":         map[string]any{"type": "integer", "description": "User ID. Auto-filled if missing."},
				"owner_id":        map[string]any{"type": "integer", "description": "Owner ID. Auto-filled if missing."},
				"email":           map[string]any{"type": "string", "description": "Email address (alias for 'mail')"},
				"mail":            map[string]any{"type": "string", "description": "Email address"},
				"phone_fixed":     map[string]any{"type": "string", "description": "Fixed phone number"},
				"phone_mobile":    map[string]any{"type": "string", "description": "Mobile phone number"},
				"address":         map[string]any{"type": "string", "description": "Street address"},
				"postcode":        map[string]any{"type": "string", "description": "Postal code"},
				"city":            map[string]any{"type": "string", "description": "City"},
				"country_id":      map[string]any{"type": "integer", "description": "Country ID (1=Switzerland, 2=Germany, ...)"},
				"language_id":     map[string]any{"type": "integer", "description": "Language ID (1=German, 2=French, 3=Italian, 4=English)"},
			}),
		),
	), d.handleCreate(domain.KindContact, "contact_data"))

	srv.AddTool(mcp.NewTool("update_contact",
		mcp.WithDescription("Update an existing contact. REQUIRED: contact_id. AUTO-RETRIEVED: name_1, contact_type_id, user_id, owner_id, nr from the existing contact when omitted."),
		mcp.WithNumber("contact_id", mcp.Required(), mcp.Description("Contact ID")),
		mcp.WithObject("contact_data",
			mcp.Required(),
			mcp.Description("Updated contact data"),
			mcp.Properties(map[string]any{
				"name_1":      map[string]any{"type": "string", "description": "First name or company name. Auto-retrieved if missing."},
				"name_2":      map[string]any{"type": "string", "description": "Last name"},
				"mail":        map[string]any{"type": "string", "description": "Email address"},
				"phone_fixed": map[string]any{"type": "string", "description": "Phone number"},
				"address":     map[string]any{"type": "string", "description": "Street address"},
				"postcode":    map[string]any{"type": "string", "description": "Postal code"},
				"city":        map[string]any{"type": "string", "description": "City"},
			}),
		),
	), d.handleUpdate(domain.KindContact, "contact_id", "contact_data"))

	srv.AddTool(mcp.NewTool("delete_contact",
		mcp.WithDescription("Delete a contact. REQUIRED: contact_id."),
		mcp.WithNumber("contact_id", mcp.Required(), mcp.Description("Contact ID to delete")),
	), d.handleDelete(domain.KindContact, "contact_id"))

	srv.AddTool(listTool("list_contacts",
		"List all contacts with optional filtering. AUTO-FILLED: limit=50, offset=0, show_archived=false.",
		mcp.WithBoolean("show_archived", mcp.Description("Include archived contacts in results"), mcp.DefaultBool(false)),
	), d.handleList(domain.KindContact))
}
