// Package server implements the MCP (Model Context Protocol) server for
// region analysis and swapping.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Diagnostics go to the injected logger, never to stdout.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_diff: Compare two images in Lab space
//
// Region analysis:
//   - region_metrics: Centroid, area, circularity, orientation, curvature
//   - region_estimate_transform: Similarity or three-point affine fit
//   - region_mask: Convex-hull mask of a landmark set, with colour statistics
//   - region_find: Connected regions of a mask image
//
// Compositing:
//   - region_swap: Exchange landmark-delimited regions
//   - region_overlay: Draw landmark sets and their hulls
//
// Points travel as [x, y] pairs. Landmark sets for region_swap and
// region_overlay can be given inline ("regions") or as a path to a landmark
// file ("landmarks_file").
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with
// code -32000 and the Go error string as data. Failures of individual pairs
// in region_swap are not errors; they are listed in the result.
package server
