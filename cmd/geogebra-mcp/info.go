package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// runInfo handles the "geogebra-mcp info" subcommand.
// It prints general MCP configuration information and, with flags,
// client-specific configuration snippets.
func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	opencode := fs.Bool("opencode", false, "show OpenCode MCP client configuration")
	claude := fs.Bool("claude", false, "show Claude Desktop MCP client configuration")
	cursor := fs.Bool("cursor", false, "show Cursor MCP client configuration")
	fs.Parse(args)

	switch {
	case *opencode:
		printOpenCodeConfig()
	case *claude:
		printClaudeConfig()
	case *cursor:
		printCursorConfig()
	default:
		printGeneralInfo()
	}
}

func printGeneralInfo() {
	fmt.Fprintf(os.Stdout, `GeoGebra MCP %s — GeoGebra construction orchestrator

GeoGebra MCP is a Model Context Protocol (MCP) server that pools headless
browser instances hosting the GeoGebra applet, and exposes them as tools
for building, plotting, styling, exporting, and animating constructions.

TRANSPORT MODES

  stdio (default)
    Communicates over stdin/stdout using JSON-RPC 2.0. Used when launched
    as a subprocess by an MCP client.

  http
    Runs as a standalone HTTP server (MCP Streamable HTTP transport,
    spec 2025-03-26).

    Endpoint:      POST/GET/DELETE /mcp
    Health check:  GET /health
    Metrics:       GET /metrics (if enabled)
    Default port:  21453
    Auth:          optional shared Bearer token (GEOGEBRA_MCP_API_KEY)

TOOLS

  Construction (4):  geogebra_clear_construction, geogebra_instance_status,
                     geogebra_get_objects, geogebra_eval_command
  Creation (6):      geogebra_create_point, geogebra_create_line,
                     geogebra_create_line_segment, geogebra_create_polygon,
                     geogebra_create_slider, geogebra_create_text
  Plotting (3):      geogebra_plot_function, geogebra_plot_parametric,
                     geogebra_plot_implicit
  Styling/view (5):  geogebra_set_object_style, geogebra_set_axes_labels,
                     geogebra_set_axes_visible, geogebra_set_grid_visible,
                     geogebra_set_coord_system
  Export (4):        geogebra_export_png, geogebra_export_svg,
                     geogebra_export_pdf, geogebra_export_animation
  Templates (2):     geogebra_list_templates, geogebra_run_template
  Performance (5):   performance_get_stats, performance_get_pool_stats,
                     performance_warm_up_pool, performance_clear_metrics,
                     performance_monitor_compliance
  Meta (3):          ping, echo, server_info

PROMPTS (2)

  build-construction       Guide for turning a math description into tool calls
  diagnose-performance     Guide for investigating slow tool calls

RESOURCES (2)

  geogebra-mcp://dsl-reference    GeoGebra DSL command reference
  geogebra-mcp://tool-reference   Tool catalogue quick reference

GETTING STARTED

  1. geogebra_clear_construction
  2. Create objects (points, lines, sliders, ...) in dependency order
  3. Plot or style as needed
  4. Export a snapshot or animation

CLIENT CONFIGURATION

  To see configuration for a specific MCP client, run:

    geogebra-mcp info --opencode    OpenCode (.opencode.json)
    geogebra-mcp info --claude      Claude Desktop (claude_desktop_config.json)
    geogebra-mcp info --cursor      Cursor (.cursor/mcp.json)
`, Version)
}

func printOpenCodeConfig() {
	printStdioConfig("OpenCode", ".opencode.json or opencode.json", `{
  "mcpServers": {
    "geogebra-mcp": {
      "command": "geogebra-mcp"
    }
  }
}`)

	printHTTPConfig("OpenCode", ".opencode.json or opencode.json", `{
  "mcpServers": {
    "geogebra-mcp": {
      "type": "streamable-http",
      "url": "http://your-geogebra-mcp-server:21453/mcp"
    }
  }
}`)
}

func printClaudeConfig() {
	printStdioConfig("Claude Desktop", "claude_desktop_config.json", `{
  "mcpServers": {
    "geogebra-mcp": {
      "command": "geogebra-mcp"
    }
  }
}`)

	printHTTPConfig("Claude Desktop", "claude_desktop_config.json", `{
  "mcpServers": {
    "geogebra-mcp": {
      "type": "streamable-http",
      "url": "http://your-geogebra-mcp-server:21453/mcp"
    }
  }
}`)
}

func printCursorConfig() {
	printStdioConfig("Cursor", ".cursor/mcp.json", `{
  "mcpServers": {
    "geogebra-mcp": {
      "command": "geogebra-mcp"
    }
  }
}`)

	printHTTPConfig("Cursor", ".cursor/mcp.json", `{
  "mcpServers": {
    "geogebra-mcp": {
      "type": "streamable-http",
      "url": "http://your-geogebra-mcp-server:21453/mcp"
    }
  }
}`)
}

func printStdioConfig(client, file, config string) {
	fmt.Fprintf(os.Stdout, `%s — stdio mode
%s

Add to %s:

%s

geogebra-mcp runs as a subprocess — no server needed. A headless Chrome
(or Chromium) binary must be available on PATH.

`, client, strings.Repeat("─", len(client)+14), file, config)
}

func printHTTPConfig(client, file, config string) {
	fmt.Fprintf(os.Stdout, `%s — HTTP mode (remote server)
%s

Add to %s:

%s

If the server has GEOGEBRA_MCP_API_KEY set, add an "Authorization: Bearer
<key>" header to the client configuration.

`, client, strings.Repeat("─", len(client)+30), file, config)
}
