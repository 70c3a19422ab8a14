// Package server implements the MCP (Model Context Protocol) server for tree
// crown detection.
//
// This package provides a JSON-RPC 2.0 server that exposes canopy height
// raster analysis through the MCP protocol, so MCP clients can count and
// delineate individual tree crowns.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Raster Information:
//   - raster_load: Load a raster and get dimensions, bit depth and value range
//   - raster_dimensions: Get width and height
//   - raster_sample_value: Get the height at a pixel
//
// Crown Detection:
//   - crown_detect: Label crowns; return count, summaries and optional label PNG
//   - crown_render: Label crowns; return a colored crown map
//
// Detection parameters left out of a call take the defaults from
// [config.Config]. An explicit zero is honored.
//
// # Raster Caching
//
// Decoded rasters are cached by path for the lifetime of the server process,
// so repeated detection runs with different parameters skip disk I/O.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
