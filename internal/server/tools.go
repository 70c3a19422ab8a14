package server

import "github.com/ironsheep/crown-tools-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Raster Information
		{
			Name:        "raster_load",
			Description: "Load a canopy height raster and return its dimensions, format, bit depth and value range.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the raster file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_dimensions",
			Description: "Get the width and height of a raster file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the raster file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_sample_value",
			Description: "Get the height value at a pixel, after value scaling. Useful for choosing a cutoff.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the raster file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"value_scale": map[string]interface{}{
						"type":        "number",
						"description": "Multiplier applied to raw samples (default 1)",
					},
					"value_offset": map[string]interface{}{
						"type":        "number",
						"description": "Offset added to scaled samples (default 0)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Crown Detection
		{
			Name:        "crown_detect",
			Description: "Detect individual tree crowns in a canopy height raster. Every pixel at or above the cutoff climbs to its summit; pixels sharing a summit form one crown. Returns the crown count and per-crown area, apex, heights and bounds, and optionally the label grid as a 16-bit grayscale PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the single-band raster (PNG, JPEG, GIF or TIFF)",
					},
					"cutoff": map[string]interface{}{
						"type":        "number",
						"description": "Minimum height, after value scaling, considered canopy (default from CROWN_DEFAULT_CUTOFF, 15)",
					},
					"local_max_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Half-width of the window searched for a higher neighbor while climbing (default 1)",
						"minimum":     0,
					},
					"plateau_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Half-width of the window used to grow flat summits (default 1)",
						"minimum":     0,
					},
					"max_chain_depth": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of plateau hand-offs before the run fails (default 10000)",
						"minimum":     1,
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Restrict detection to this rectangle; x2/y2 are exclusive",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
					"smooth_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before detection (default 0, no smoothing)",
						"minimum":     0,
					},
					"value_scale": map[string]interface{}{
						"type":        "number",
						"description": "Multiplier applied to raw samples to get heights (default 1)",
					},
					"value_offset": map[string]interface{}{
						"type":        "number",
						"description": "Offset added to scaled samples (default 0)",
					},
					"include_crowns": map[string]interface{}{
						"type":        "boolean",
						"description": "Include per-crown summaries (default true)",
					},
					"include_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the label grid as a base64 16-bit PNG, gray level = crown id (default false)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "crown_render",
			Description: "Detect tree crowns and return a colored crown map as base64 PNG: one color per crown, crown edges darkened, background transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the single-band raster (PNG, JPEG, GIF or TIFF)",
					},
					"cutoff": map[string]interface{}{
						"type":        "number",
						"description": "Minimum height, after value scaling, considered canopy (default from CROWN_DEFAULT_CUTOFF, 15)",
					},
					"local_max_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Half-width of the window searched for a higher neighbor while climbing (default 1)",
						"minimum":     0,
					},
					"plateau_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Half-width of the window used to grow flat summits (default 1)",
						"minimum":     0,
					},
					"max_chain_depth": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of plateau hand-offs before the run fails (default 10000)",
						"minimum":     1,
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Restrict detection to this rectangle; x2/y2 are exclusive",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
					"smooth_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur radius applied before detection (default 0, no smoothing)",
						"minimum":     0,
					},
					"value_scale": map[string]interface{}{
						"type":        "number",
						"description": "Multiplier applied to raw samples to get heights (default 1)",
					},
					"value_offset": map[string]interface{}{
						"type":        "number",
						"description": "Offset added to scaled samples (default 0)",
					},
					"include_crowns": map[string]interface{}{
						"type":        "boolean",
						"description": "Include per-crown summaries (default false)",
					},
					"include_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the label grid as a base64 16-bit PNG (default false)",
					},
					"scale": map[string]interface{}{
						"type":             "number",
						"description":      "Scale factor for the rendered map (default 1.0, e.g. 4.0 to enlarge small rasters). The scaled map is limited to 16777216 pixels.",
						"default":          1.0,
						"exclusiveMinimum": 0,
						"maximum":          imaging.MaxRenderScale,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
