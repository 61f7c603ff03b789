// Package mcptools is the inbound adapter: it declares the MCP tool catalog
// and dispatches tool calls into the usecases and the Bexio client. Mutating
// tools run the completion engine before the remote call; search tools go
// through the search resolver; every failure is routed through the error
// enhancer so callers always get actionable text.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tomasbottlik/bexio-mcp-server/internal/adapter/outbound/bexio"
	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
	"github.com/tomasbottlik/bexio-mcp-server/internal/usecase"
)

const defaultListLimit = 50

// Deps are the collaborators shared by every tool handler.
type Deps struct {
	Client   *bexio.Client
	Engine   *usecase.CompletionEngine
	Resolver *usecase.SearchResolver
	Enhancer *usecase.ErrorEnhancer
	Logger   *slog.Logger
}

// Register adds the full tool catalog to the server.
func Register(srv *mcpserver.MCPServer, deps Deps) {
	deps.Logger = deps.Logger.With("component", "mcptools")
	registerContactTools(srv, deps)
	registerSalesTools(srv, deps)
	registerCatalogTools(srv, deps)
	registerAccountingTools(srv, deps)
	registerTimeTrackingTools(srv, deps)
}

// jsonResult renders a successful result as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult renders a failure through the enhancer. Tool-level failures are
// results, not protocol errors.
func (d Deps) errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(d.Enhancer.Enhance(err))
}

// objectArg extracts a nested object argument as a payload.
func objectArg(req mcp.CallToolRequest, key string) (domain.Payload, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return domain.Payload{}, fmt.Errorf("missing required argument %q", key)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.Payload{}, fmt.Errorf("argument %q must be an object", key)
	}
	return domain.NewPayload(obj), nil
}

// conditionsArg extracts the search criteria array.
func conditionsArg(req mcp.CallToolRequest) ([]domain.Condition, error) {
	raw, ok := req.GetArguments()["criteria"].([]any)
	if !ok {
		return nil, fmt.Errorf("missing required argument \"criteria\" (array of {field, value, criteria})")
	}
	conditions := make([]domain.Condition, 0, len(raw))
	for i, elem := range raw {
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("criteria[%d] must be an object", i)
		}
		cond := domain.Condition{Value: obj["value"]}
		if f, ok := obj["field"].(string); ok {
			cond.Field = f
		}
		if op, ok := obj["criteria"].(string); ok {
			cond.Op = op
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

func listParamsArg(req mcp.CallToolRequest) bexio.ListParams {
	return bexio.ListParams{
		Limit:        req.GetInt("limit", defaultListLimit),
		Offset:       req.GetInt("offset", 0),
		OrderBy:      req.GetString("order_by", ""),
		ShowArchived: req.GetBool("show_archived", false),
	}
}

// --- Generic handlers. Most tools are one of these six shapes; only the
// resources with extra query surface (taxes, journal, exchange rates) carry
// custom handlers. ---

func (d Deps) handleList(kind domain.Kind) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		records, err := d.Client.List(ctx, kind, listParamsArg(req))
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(records)
	}
}

func (d Deps) handleGet(kind domain.Kind, idArg string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt(idArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		record, err := d.Client.Fetch(ctx, kind, id)
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(record)
	}
}

func (d Deps) handleDelete(kind domain.Kind, idArg string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt(idArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := d.Client.Delete(ctx, kind, id); err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(map[string]any{
			"success": true,
			"message": fmt.Sprintf("%s %d deleted successfully", kind, id),
		})
	}
}

func (d Deps) handleSearch(kind domain.Kind) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		conditions, err := conditionsArg(req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		records, err := d.Resolver.Search(ctx, kind, conditions)
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(records)
	}
}

// handleCreate completes and posts a new record. dataArg names the object
// argument holding the payload; when empty the tool's whole argument map is
// the payload (invoices and quotes take their fields at the top level).
func (d Deps) handleCreate(kind domain.Kind, dataArg string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var payload domain.Payload
		if dataArg == "" {
			payload = domain.NewPayload(req.GetArguments())
		} else {
			var err error
			if payload, err = objectArg(req, dataArg); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		completed, err := d.Engine.Complete(ctx, domain.Operation{
			Kind:    kind,
			Action:  domain.ActionCreate,
			Payload: payload,
		})
		if err != nil {
			return d.errorResult(err), nil
		}
		record, err := d.Client.Create(ctx, kind, completed)
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(record)
	}
}

func (d Deps) handleUpdate(kind domain.Kind, idArg, dataArg string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireInt(idArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload, err := objectArg(req, dataArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		completed, err := d.Engine.Complete(ctx, domain.Operation{
			Kind:    kind,
			Action:  domain.ActionUpdate,
			ID:      id,
			Payload: payload,
		})
		if err != nil {
			return d.errorResult(err), nil
		}
		record, err := d.Client.Update(ctx, kind, id, completed)
		if err != nil {
			return d.errorResult(err), nil
		}
		return jsonResult(record)
	}
}

// --- Shared schema fragments. ---

func criteriaOption(fieldsHint string) mcp.ToolOption {
	return mcp.WithArray("criteria",
		mcp.Required(),
		mcp.Description("Search criteria array - each item must have field, value, and criteria"),
		mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"field":    map[string]any{"type": "string", "description": "Field to search " + fieldsHint},
				"value":    map[string]any{"type": "string", "description": "Search value"},
				"criteria": map[string]any{"type": "string", "description": "Comparison: 'like', '=', '!=', '>', '<', '>=', '<=', 'is_null', 'not_null'", "default": "like"},
			},
			"required": []string{"field", "value", "criteria"},
		}),
	)
}

// listTool builds a list tool with the shared pagination options plus any
// kind-specific extras.
func listTool(name, description string, extra ...mcp.ToolOption) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results"), mcp.DefaultNumber(defaultListLimit)),
		mcp.WithNumber("offset", mcp.Description("Number of records to skip"), mcp.DefaultNumber(0)),
		mcp.WithString("order_by", mcp.Description("Field to order by")),
	}
	return mcp.NewTool(name, append(opts, extra...)...)
}
