package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminder"
	serverVersion = "1.0.0"
)

// Server is the MCP server for reminder management.
type Server struct {
	mcpServer *server.MCPServer
	store     *Store
}

// NewServer creates a new Reminder MCP server backed by the given store.
func NewServer(store *Store) *Server {
	s := &Server{
		store: store,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a new reminder with a title, due date and optional description"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder title")),
			mcp.WithString("due_date", mcp.Required(), mcp.Description("Due date in RFC3339 format (e.g. 2025-01-15T09:00:00Z)")),
			mcp.WithString("description", mcp.Description("Optional description")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List reminders newest first, optionally filtered by status (pending or completed)"),
			mcp.WithString("status", mcp.Description("Filter by status: pending, completed, or empty for all")),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_overdue_reminders",
			mcp.WithDescription("Get all pending reminders whose due date has passed"),
		),
		s.handleGetOverdueReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("toggle_reminder",
			mcp.WithDescription("Mark a pending reminder as completed, or reopen a completed one"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleToggleReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Reminder ID")),
		),
		s.handleDeleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("reminder_stats",
			mcp.WithDescription("Count total, pending and completed reminders"),
		),
		s.handleReminderStats,
	)
}

type statsResult struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

func toStats(c Counts) statsResult {
	return statsResult{Total: c.Total, Pending: c.Pending, Completed: c.Completed()}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleAddReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dueDateStr := req.GetString("due_date", "")
	if dueDateStr == "" {
		return mcp.NewToolResultError("due_date is required"), nil
	}

	dueDate, err := time.Parse(time.RFC3339, dueDateStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid due_date format: %v (use RFC3339, e.g. 2025-01-15T09:00:00Z)", err)), nil
	}

	in := Input{
		Title:   req.GetString("title", ""),
		DueDate: dueDate,
	}
	if d := req.GetString("description", ""); d != "" {
		in.Description = &d
	}

	in, err = ValidateInput(in)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	added := s.store.Create(in)

	return jsonResult(added)
}

func (s *Server) handleListReminders(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode, err := ParseFilter(req.GetString("status", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	reminders := s.store.View(mode)
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	return jsonResult(reminders)
}

func (s *Server) handleGetOverdueReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders := Overdue(s.store.Snapshot(), s.store.Now())
	if len(reminders) == 0 {
		return mcp.NewToolResultText("No overdue reminders."), nil
	}

	return jsonResult(reminders)
}

func (s *Server) handleToggleReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	r, ok := s.store.ToggleComplete(id)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("Reminder %s not found, nothing changed.", id)), nil
	}

	if r.Completed {
		return mcp.NewToolResultText(fmt.Sprintf("Reminder %q marked as completed.", r.Title)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %q reopened and marked as pending.", r.Title)), nil
}

func (s *Server) handleDeleteReminder(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	r, ok := s.store.Delete(id)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("Reminder %s not found, nothing changed.", id)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %q deleted.", r.Title)), nil
}

func (s *Server) handleReminderStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(toStats(s.store.Counts()))
}
