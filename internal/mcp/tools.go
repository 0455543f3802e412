package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/dshills/ncbi-mcp/internal/ncbi"
	"github.com/dshills/ncbi-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
)

var blastPrograms = map[string]bool{
	"blastn":  true,
	"blastp":  true,
	"blastx":  true,
	"tblastn": true,
	"tblastx": true,
}

// handleSearchNCBI handles the search_ncbi tool invocation
func (s *Server) handleSearchNCBI(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	database, ok := args["database"].(string)
	if !ok || database == "" {
		return nil, missingParam("database")
	}
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, missingParam("query")
	}

	maxResults := getIntDefault(args, "max_results", 20)
	if maxResults < 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_results must be positive", map[string]interface{}{
			"param": "max_results",
			"value": maxResults,
		})
	}
	startIndex := getIntDefault(args, "start_index", 0)
	sortOrder := getStringDefault(args, "sort_order", "")

	s.log.Info("searching",
		zap.String("database", database),
		zap.Int("max_results", maxResults))

	result, err := s.client.Search(ctx, database, query, maxResults, startIndex, sortOrder)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"success":           true,
		"database":          database,
		"query":             query,
		"total_count":       result.Count,
		"returned_count":    len(result.IDs),
		"start_index":       result.RetStart,
		"ids":               result.IDs,
		"query_translation": result.QueryTranslation,
		"web_env":           result.WebEnv,
		"query_key":         result.QueryKey,
	})), nil
}

// handleFetchRecords handles the fetch_records tool invocation
func (s *Server) handleFetchRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	database, ok := args["database"].(string)
	if !ok || database == "" {
		return nil, missingParam("database")
	}
	ids, err := getStringSlice(args, "ids")
	if err != nil {
		return nil, err
	}

	returnType := getStringDefault(args, "return_type", "xml")
	returnMode := getStringDefault(args, "return_mode", "xml")

	s.log.Info("fetching records",
		zap.String("database", database),
		zap.Int("ids", len(ids)),
		zap.String("return_type", returnType))

	content, err := s.client.Fetch(ctx, database, ids, returnType, returnMode)
	if err != nil {
		return errorResult(err), nil
	}

	// Raw record content in the requested format, passed through untouched
	return mcp.NewToolResultText(content), nil
}

// handleSummarizeRecords handles the summarize_records tool invocation
func (s *Server) handleSummarizeRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	database, ok := args["database"].(string)
	if !ok || database == "" {
		return nil, missingParam("database")
	}
	ids, err := getStringSlice(args, "ids")
	if err != nil {
		return nil, err
	}

	s.log.Info("summarizing records",
		zap.String("database", database),
		zap.Int("ids", len(ids)))

	summaries, err := s.client.Summarize(ctx, database, ids)
	if err != nil {
		return errorResult(err), nil
	}

	summaryData := make([]map[string]interface{}, 0, len(summaries))
	for _, summary := range summaries {
		summaryData = append(summaryData, map[string]interface{}{
			"uid":      summary.UID,
			"title":    summary.Title,
			"authors":  summary.Authors,
			"journal":  summary.Journal,
			"pub_date": summary.PubDate,
			"doi":      summary.DOI,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"success":   true,
		"database":  database,
		"summaries": summaryData,
	})), nil
}

// handleFindRelatedRecords handles the find_related_records tool invocation
func (s *Server) handleFindRelatedRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	sourceDB, ok := args["source_database"].(string)
	if !ok || sourceDB == "" {
		return nil, missingParam("source_database")
	}
	targetDB, ok := args["target_database"].(string)
	if !ok || targetDB == "" {
		return nil, missingParam("target_database")
	}
	ids, err := getStringSlice(args, "ids")
	if err != nil {
		return nil, err
	}

	s.log.Info("finding related records",
		zap.String("source", sourceDB),
		zap.String("target", targetDB),
		zap.Int("ids", len(ids)))

	related, err := s.client.Link(ctx, sourceDB, targetDB, ids)
	if err != nil {
		return errorResult(err), nil
	}

	total := 0
	for _, linked := range related {
		total += len(linked)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"success":         true,
		"source_database": sourceDB,
		"target_database": targetDB,
		"source_ids":      ids,
		"related":         related,
		"related_count":   total,
	})), nil
}

// handleBlastSearch handles the blast_search tool invocation
func (s *Server) handleBlastSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	program, ok := args["program"].(string)
	if !ok || program == "" {
		return nil, missingParam("program")
	}
	if !blastPrograms[program] {
		return nil, newMCPError(ErrorCodeInvalidParams, "unknown BLAST program", map[string]interface{}{
			"param":   "program",
			"value":   program,
			"allowed": []string{"blastn", "blastp", "blastx", "tblastn", "tblastx"},
		})
	}
	database, ok := args["database"].(string)
	if !ok || database == "" {
		return nil, missingParam("database")
	}
	sequence, ok := args["sequence"].(string)
	if !ok || sequence == "" {
		return nil, missingParam("sequence")
	}

	megablast := getBoolDefault(args, "megablast", false)
	if megablast && program != "blastn" {
		return nil, newMCPError(ErrorCodeInvalidParams, "megablast is only valid with blastn", map[string]interface{}{
			"param": "megablast",
		})
	}
	outputFmt := getStringDefault(args, "output_fmt", "full")
	if outputFmt != "full" && outputFmt != "summary" {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid output_fmt", map[string]interface{}{
			"param":   "output_fmt",
			"value":   outputFmt,
			"allowed": []string{"full", "summary"},
		})
	}

	req := ncbi.BlastRequest{
		Program:        program,
		Database:       database,
		Sequence:       sequence,
		Expect:         getFloatDefault(args, "expect_value", 10.0),
		WordSize:       getIntDefault(args, "word_size", 0),
		Matrix:         getStringDefault(args, "matrix", ""),
		GapCosts:       getStringDefault(args, "gap_costs", ""),
		Megablast:      megablast,
		FullAlignments: outputFmt == "full",
	}

	s.log.Info("starting blast search",
		zap.String("program", program),
		zap.String("database", database),
		zap.Int("sequence_len", len(sequence)))

	report, err := s.client.BlastSearch(ctx, req)
	if err != nil {
		return errorResult(err), nil
	}

	hits := make([]map[string]interface{}, 0, len(report.Hits))
	for _, hit := range report.Hits {
		hsps := make([]map[string]interface{}, 0, len(hit.HSPs))
		for _, hsp := range hit.HSPs {
			entry := map[string]interface{}{
				"score":      hsp.Score,
				"bit_score":  hsp.BitScore,
				"evalue":     hsp.EValue,
				"query_from": hsp.QueryFrom,
				"query_to":   hsp.QueryTo,
				"hit_from":   hsp.HitFrom,
				"hit_to":     hsp.HitTo,
				"identity":   hsp.Identity,
				"align_len":  hsp.AlignLen,
			}
			if outputFmt == "full" {
				entry["query_seq"] = hsp.QuerySeq
				entry["midline"] = hsp.Midline
				entry["subject_seq"] = hsp.SubjectSeq
			}
			hsps = append(hsps, entry)
		}
		hits = append(hits, map[string]interface{}{
			"title":     hit.Title,
			"accession": hit.Accession,
			"length":    hit.Length,
			"hsps":      hsps,
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"success":      true,
		"program":      report.Program,
		"database":     report.Database,
		"rid":          report.RID,
		"query":        report.Query,
		"query_length": report.QueryLength,
		"hit_count":    len(hits),
		"hits":         hits,
	})), nil
}

// handleListDatabases handles the list_databases tool invocation
func (s *Server) handleListDatabases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.log.Info("listing databases")

	databases, err := s.client.Databases(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"success":   true,
		"databases": databases,
		"count":     len(databases),
	})), nil
}

// handleGetDatabaseInfo handles the get_database_info tool invocation
func (s *Server) handleGetDatabaseInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	database, ok := args["database"].(string)
	if !ok || database == "" {
		return nil, missingParam("database")
	}

	// Catalog gate first, before spending a remote call
	if !ncbi.CatalogHas(database) {
		return errorResult(fmt.Errorf("%w: %q is not in the database catalog",
			types.ErrUnknownDatabase, database)), nil
	}

	s.log.Info("retrieving database info", zap.String("database", database))

	info, err := s.client.Info(ctx, database)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"success": true,
		"database": map[string]interface{}{
			"name":        info.Name,
			"menu_name":   info.MenuName,
			"description": info.Description,
			"count":       info.Count,
			"last_update": info.LastUpdate,
		},
	})), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func missingParam(name string) error {
	return newMCPError(ErrorCodeInvalidParams, name+" parameter is required", map[string]interface{}{
		"param":  name,
		"reason": "missing or empty",
	})
}

// errorKind maps a client error onto the tool-facing error kind
func errorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrInvalidDatabase):
		return "invalid_database"
	case errors.Is(err, types.ErrUnknownDatabase):
		return "unknown_database"
	case errors.Is(err, types.ErrUnknownResource):
		return "unknown_resource"
	case errors.Is(err, types.ErrNotFound):
		return "not_found"
	case errors.Is(err, types.ErrPollTimeout):
		return "timeout"
	case errors.Is(err, types.ErrBlastFailed):
		return "blast_job_failed"
	case errors.Is(err, types.ErrBlastExpired):
		return "blast_job_expired"
	case errors.Is(err, types.ErrFormat):
		return "format_error"
	case errors.Is(err, types.ErrTransport):
		return "transport_error"
	case errors.Is(err, types.ErrRemote):
		return "remote_error"
	default:
		return "internal_error"
	}
}

// errorResult shapes a tool execution failure as the tool's error payload.
// The kind and the remote-provided message are returned verbatim; nothing is
// retried or suppressed.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(formatJSON(map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"kind":    errorKind(err),
			"message": err.Error(),
		},
	}))
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getStringSlice extracts a required non-empty string array parameter
func getStringSlice(args map[string]interface{}, key string) ([]string, error) {
	raw, ok := args[key].([]interface{})
	if !ok || len(raw) == 0 {
		return nil, newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
			"param":  key,
			"reason": "missing or empty",
		})
	}
	out := make([]string, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, newMCPError(ErrorCodeInvalidParams, key+" must contain non-empty strings", map[string]interface{}{
				"param": key,
				"index": i,
			})
		}
		out = append(out, s)
	}
	return out, nil
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getFloatDefault extracts a float parameter with a default value
func getFloatDefault(args map[string]interface{}, key string, defaultValue float64) float64 {
	if val, ok := args[key].(float64); ok {
		return val
	}
	if val, ok := args[key].(int); ok {
		return float64(val)
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
