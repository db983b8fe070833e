package mcpserver

import (
	"strings"

	"github.com/icyhq/icy/internal/wizard"
	"github.com/mark3labs/mcp-go/mcp"
)

func sessionArg() mcp.ToolOption {
	return mcp.WithString("session", mcp.Required(),
		mcp.Description("Session id returned by brand-start"),
	)
}

func fieldNames() []string {
	names := make([]string, 0, len(wizard.Fields))
	for _, f := range wizard.Fields {
		names = append(names, string(f))
	}
	return names
}

// registerTools registers the brand wizard tools with the MCP server.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("brand-start",
			mcp.WithDescription("Start a brand setup wizard session. If a profile is already saved under the key it is loaded for editing."),
			mcp.WithString("key",
				mcp.Description("Key to save the finished profile under (defaults to the configured session key)"),
			),
		),
		s.handleStart,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("brand-status",
			mcp.WithDescription("Show the current step, values and validation errors of a wizard session"),
			sessionArg(),
		),
		s.handleStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("brand-set-field",
			mcp.WithDescription("Set a field. For multi-select fields (targetAge, targetGender, platforms) a single value toggles; 'values' replaces the whole selection."),
			sessionArg(),
			mcp.WithString("field", mcp.Required(),
				mcp.Description("Field name: "+strings.Join(fieldNames(), ", ")),
				mcp.Enum(fieldNames()...),
			),
			mcp.WithString("value",
				mcp.Description("New value, or the option to toggle for multi-select fields"),
			),
			mcp.WithArray("values",
				mcp.Description("Complete selection for a multi-select field"),
				mcp.WithStringItems(),
			),
		),
		s.handleSetField,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("brand-next",
			mcp.WithDescription("Advance to the next step. Fails with the step's field errors if it is not valid."),
			sessionArg(),
		),
		s.handleNext,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("brand-previous",
			mcp.WithDescription("Go back one step without validating"),
			sessionArg(),
		),
		s.handlePrevious,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("brand-submit",
			mcp.WithDescription("Submit the wizard from the final step and save the profile"),
			sessionArg(),
		),
		s.handleSubmit,
	)
}
