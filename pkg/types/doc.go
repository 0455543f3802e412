// Package types provides shared type definitions for the NCBI MCP server.
//
// This package defines domain types used across multiple components,
// including E-utilities result shapes, BLAST job lifecycle types, and the
// error taxonomy shared by the remote client and the MCP tool layer.
//
// # Core Types
//
// SearchResult carries the outcome of an esearch call:
//
//	result := &types.SearchResult{
//	    Count: 1432,
//	    IDs:   []string{"36038128", "35998042"},
//	}
//
// RecordSummary is one record's esummary document:
//
//	summary := types.RecordSummary{
//	    UID:     "36038128",
//	    Title:   "CRISPR-based diagnostics",
//	    Authors: []string{"Kaminski MM", "Abudayyeh OO"},
//	}
//
// BlastJob tracks one BLAST submission through its remote lifecycle:
//
//	job := types.BlastJob{RID: "8AZKM3BC014", Status: types.BlastWaiting}
//
// # Error Taxonomy
//
// Every failure surfaced by the remote client wraps one of the sentinel
// errors declared in errors.go. Callers classify with errors.Is:
//
//	if errors.Is(err, types.ErrNotFound) { ... }
package types
