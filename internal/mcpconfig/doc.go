// Package mcpconfig parses Claude Desktop MCP server configuration documents.
//
// The loader degrades gracefully: a missing, empty, unreadable, or
// malformed file never produces a panic or a bare error return. Callers
// always receive a usable Document (falling back to {mcpServers:{}}) plus a
// typed LoadError describing what went wrong, so the diagnostics engine can
// report the failure rather than die on it.
//
// Structural problems inside a parseable document (wrong field types,
// malformed entries) are collected as tagged SchemaIssue values in one
// validation pass; downstream rules consume the tags instead of re-probing
// the JSON.
package mcpconfig
