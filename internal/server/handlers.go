package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/crown-tools-mcp/internal/detection"
	"github.com/ironsheep/crown-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "raster_load", "crown_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: jsonRPCVersion,
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for omitted parameters
//  3. Loads rasters from cache as needed
//  4. Calls the appropriate imaging/detection function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Raster Information
	case "raster_load":
		return s.handleRasterLoad(args)
	case "raster_dimensions":
		return s.handleRasterDimensions(args)
	case "raster_sample_value":
		return s.handleRasterSampleValue(args)

	// Crown Detection
	case "crown_detect":
		return s.handleCrownDetect(ctx, args)
	case "crown_render":
		return s.handleCrownRender(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. An empty data is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: jsonRPCVersion, ID: id, Error: e}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Raster Information Handlers ===

type rasterPathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleRasterLoad(args json.RawMessage) (interface{}, error) {
	var a rasterPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadRasterInfo(s.cache, a.Path)
}

func (s *Server) handleRasterDimensions(args json.RawMessage) (interface{}, error) {
	var a rasterPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type rasterSampleValueArgs struct {
	Path        string  `json:"path"`
	X           int     `json:"x"`
	Y           int     `json:"y"`
	ValueScale  float64 `json:"value_scale"`
	ValueOffset float64 `json:"value_offset"`
}

func (s *Server) handleRasterSampleValue(args json.RawMessage) (interface{}, error) {
	var a rasterSampleValueArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	raster := imaging.ToRaster(img, imaging.RasterOptions{Scale: a.ValueScale, Offset: a.ValueOffset})
	return imaging.SampleValue(raster, a.X, a.Y)
}

// === Crown Detection Handlers ===

// crownDetectArgs are the arguments shared by crown_detect and crown_render.
// Pointer fields distinguish an omitted parameter, which takes the configured
// default, from an explicit zero.
type crownDetectArgs struct {
	Path           string          `json:"path"`
	Cutoff         *float64        `json:"cutoff"`
	LocalMaxRadius *int            `json:"local_max_radius"`
	PlateauRadius  *int            `json:"plateau_radius"`
	MaxChainDepth  *int            `json:"max_chain_depth"`
	Region         *imaging.Region `json:"region"`
	SmoothRadius   float64         `json:"smooth_radius"`
	ValueScale     float64         `json:"value_scale"`
	ValueOffset    float64         `json:"value_offset"`
	IncludeCrowns  *bool           `json:"include_crowns"`
	IncludeLabels  bool            `json:"include_labels"`
}

// params resolves the arguments against the server defaults.
func (s *Server) params(a *crownDetectArgs) detection.Params {
	d := s.cfg.Defaults
	p := detection.Params{
		Cutoff:         d.Cutoff,
		LocalMaxRadius: d.LocalMaxRadius,
		PlateauRadius:  d.PlateauRadius,
		MaxChainDepth:  d.MaxChainDepth,
		Region:         a.Region,
		SmoothRadius:   a.SmoothRadius,
		ValueScale:     a.ValueScale,
		ValueOffset:    a.ValueOffset,
		IncludeCrowns:  true,
		IncludeLabels:  a.IncludeLabels,
	}
	if a.Cutoff != nil {
		p.Cutoff = *a.Cutoff
	}
	if a.LocalMaxRadius != nil {
		p.LocalMaxRadius = *a.LocalMaxRadius
	}
	if a.PlateauRadius != nil {
		p.PlateauRadius = *a.PlateauRadius
	}
	if a.MaxChainDepth != nil {
		p.MaxChainDepth = *a.MaxChainDepth
	}
	if a.IncludeCrowns != nil {
		p.IncludeCrowns = *a.IncludeCrowns
	}
	return p
}

func (s *Server) detect(ctx context.Context, path string, p detection.Params) (*detection.Result, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := detection.DetectCrowns(ctx, img, p)
	if err != nil {
		return nil, err
	}
	if s.cfg.Debug() {
		log.Printf("run %s: %s %dx%d, %d crowns in %d ms",
			res.RunID, path, res.Width, res.Height, res.CrownCount, res.ElapsedMS)
	}
	return res, nil
}

func (s *Server) handleCrownDetect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a crownDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.detect(ctx, a.Path, s.params(&a))
}

type crownRenderArgs struct {
	crownDetectArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleCrownRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a crownRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	p := s.params(&a.crownDetectArgs)
	p.IncludeRender = true
	p.RenderScale = a.Scale
	if a.IncludeCrowns == nil {
		p.IncludeCrowns = false
	}
	return s.detect(ctx, a.Path, p)
}
