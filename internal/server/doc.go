// Package server implements the MCP (Model Context Protocol) server for the
// ultimate eroded points analysis.
//
// This package provides a JSON-RPC 2.0 server that exposes distance map and
// local maxima extraction through the MCP protocol, so that MCP-compatible
// clients can count and locate particles in binary images.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Distance Analysis:
//   - image_distance_map: Euclidean distance map of the binarized image
//   - image_ultimate_points: Local maxima of the distance map
//
// The analysis tools binarize the input at a configurable level. Color images
// are rejected unless convert_grayscale is set.
//
// # Configuration
//
// ConfigFromEnv reads MAXIMA_MCP_LOG_LEVEL ("debug" enables per-call timing
// logs), MAXIMA_MCP_TOLERANCE and MAXIMA_MCP_MAX_RETRIES. Tool arguments take
// precedence over the environment defaults.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.NewWithConfig(cfg).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
