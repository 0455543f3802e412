package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchNCBITool returns the tool definition for search_ncbi
func searchNCBITool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_ncbi",
		Description: "Search an NCBI database using E-utilities and return matching record IDs",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"database": map[string]interface{}{
					"type":        "string",
					"description": "NCBI database to search (e.g. 'pubmed', 'protein', 'nucleotide')",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query string (Entrez query syntax)",
				},
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return",
					"default":     20,
					"minimum":     1,
					"maximum":     10000,
				},
				"start_index": map[string]interface{}{
					"type":        "integer",
					"description": "Starting index into the result set",
					"default":     0,
					"minimum":     0,
				},
				"sort_order": map[string]interface{}{
					"type":        "string",
					"description": "Sort order for results (database-specific, e.g. 'pub_date')",
				},
			},
			Required: []string{"database", "query"},
		},
	}
}

// fetchRecordsTool returns the tool definition for fetch_records
func fetchRecordsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "fetch_records",
		Description: "Fetch full records from an NCBI database in the requested format",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"database": map[string]interface{}{
					"type":        "string",
					"description": "NCBI database name",
				},
				"ids": map[string]interface{}{
					"type":        "array",
					"description": "Record IDs to fetch",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"return_type": map[string]interface{}{
					"type":        "string",
					"description": "Format of returned data (xml, fasta, gb, medline, ...)",
					"default":     "xml",
				},
				"return_mode": map[string]interface{}{
					"type":        "string",
					"description": "Mode of returned data (xml or text)",
					"default":     "xml",
				},
			},
			Required: []string{"database", "ids"},
		},
	}
}

// summarizeRecordsTool returns the tool definition for summarize_records
func summarizeRecordsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "summarize_records",
		Description: "Get document summaries (title, authors, journal, date) for NCBI records",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"database": map[string]interface{}{
					"type":        "string",
					"description": "NCBI database name",
				},
				"ids": map[string]interface{}{
					"type":        "array",
					"description": "Record IDs to summarize",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"database", "ids"},
		},
	}
}

// findRelatedRecordsTool returns the tool definition for find_related_records
func findRelatedRecordsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_related_records",
		Description: "Find records in a target NCBI database related to records in a source database",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source_database": map[string]interface{}{
					"type":        "string",
					"description": "Source NCBI database",
				},
				"target_database": map[string]interface{}{
					"type":        "string",
					"description": "Target NCBI database to find related records in",
				},
				"ids": map[string]interface{}{
					"type":        "array",
					"description": "Source record IDs",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"source_database", "target_database", "ids"},
		},
	}
}

// blastSearchTool returns the tool definition for blast_search
func blastSearchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "blast_search",
		Description: "Run a BLAST sequence-alignment search against NCBI (asynchronous: submits a job and polls until ready)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"program": map[string]interface{}{
					"type":        "string",
					"description": "BLAST program",
					"enum":        []string{"blastn", "blastp", "blastx", "tblastn", "tblastx"},
				},
				"database": map[string]interface{}{
					"type":        "string",
					"description": "BLAST database (nt, nr, refseq_protein, swissprot, ...)",
				},
				"sequence": map[string]interface{}{
					"type":        "string",
					"description": "Query sequence, raw or FASTA",
				},
				"expect_value": map[string]interface{}{
					"type":        "number",
					"description": "E-value threshold",
					"default":     10.0,
				},
				"word_size": map[string]interface{}{
					"type":        "integer",
					"description": "Word size for the initial match",
				},
				"matrix": map[string]interface{}{
					"type":        "string",
					"description": "Scoring matrix (e.g. BLOSUM62)",
				},
				"gap_costs": map[string]interface{}{
					"type":        "string",
					"description": "Gap costs as 'open extend' (e.g. '11 1')",
				},
				"megablast": map[string]interface{}{
					"type":        "boolean",
					"description": "Use megablast for highly similar sequences (blastn only)",
					"default":     false,
				},
				"output_fmt": map[string]interface{}{
					"type":        "string",
					"description": "'full' includes alignment strings, 'summary' omits them",
					"enum":        []string{"full", "summary"},
					"default":     "full",
				},
			},
			Required: []string{"program", "database", "sequence"},
		},
	}
}

// listDatabasesTool returns the tool definition for list_databases
func listDatabasesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_databases",
		Description: "List the available NCBI databases",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// getDatabaseInfoTool returns the tool definition for get_database_info
func getDatabaseInfoTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_database_info",
		Description: "Get details (description, record count, last update) for one NCBI database",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"database": map[string]interface{}{
					"type":        "string",
					"description": "NCBI database name",
				},
			},
			Required: []string{"database"},
		},
	}
}
