// Package mcp implements the Model Context Protocol (MCP) server for NCBI.
//
// The server exposes seven tools to AI assistants:
//   - search_ncbi: Search an NCBI database (esearch)
//   - fetch_records: Fetch full records in a requested format (efetch)
//   - summarize_records: Structured per-record summaries (esummary)
//   - find_related_records: Cross-database record links (elink)
//   - blast_search: Asynchronous BLAST submit/poll/retrieve
//   - list_databases: Available database names (einfo)
//   - get_database_info: Details for one database (einfo)
//
// and two static resources:
//   - ncbi://databases: database catalog with descriptions
//   - ncbi://blast-programs: BLAST program guide
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates via standard input/output; logs go to stderr.
//
// # Error Handling
//
// Malformed arguments are rejected at the protocol level with standard
// JSON-RPC errors (-32602). Failures during tool execution, such as
// transport errors, remote-reported errors, or BLAST timeouts, are returned
// as the tool's result with IsError set and a structured payload:
//
//	{
//	  "success": false,
//	  "error": {
//	    "kind": "remote_error",
//	    "message": "remote service error: ..."
//	  }
//	}
//
// Error kinds mirror the taxonomy in pkg/types: transport_error,
// remote_error, format_error, invalid_database, unknown_database,
// unknown_resource, not_found, timeout, blast_job_failed,
// blast_job_expired.
//
// # Rate Limiting
//
// All tools share the NCBI client's single rate limiter. Concurrent tool
// calls are handled concurrently, but their outbound requests are spaced at
// the NCBI-permitted rate (see internal/ratelimit).
package mcp
