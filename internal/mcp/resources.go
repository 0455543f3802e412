package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/ncbi-mcp/internal/ncbi"
	"github.com/dshills/ncbi-mcp/pkg/types"
)

// Resource URIs
const (
	ResourceDatabases     = "ncbi://databases"
	ResourceBlastPrograms = "ncbi://blast-programs"
)

// registerResources registers the two informational documents
func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(
		ResourceDatabases,
		"NCBI Databases",
		mcp.WithResourceDescription("Catalog of available NCBI databases with descriptions"),
		mcp.WithMIMEType("text/markdown"),
	), s.handleReadResource)

	s.mcp.AddResource(mcp.NewResource(
		ResourceBlastPrograms,
		"BLAST Programs",
		mcp.WithResourceDescription("Guide to BLAST programs and common BLAST databases"),
		mcp.WithMIMEType("text/markdown"),
	), s.handleReadResource)
}

// handleReadResource serves both resources through a single dispatch
func (s *Server) handleReadResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := s.resourceText(ctx, request.Params.URI)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		},
	}, nil
}

// resourceText resolves a resource URI to its document
func (s *Server) resourceText(ctx context.Context, uri string) (string, error) {
	switch uri {
	case ResourceDatabases:
		return s.databasesDocument(ctx), nil
	case ResourceBlastPrograms:
		return blastProgramsDocument, nil
	default:
		return "", fmt.Errorf("%w: %s", types.ErrUnknownResource, uri)
	}
}

// databasesDocument renders the database catalog, preferring the live
// einfo list (Databases falls back to the static catalog on its own).
func (s *Server) databasesDocument(ctx context.Context) string {
	databases, err := s.client.Databases(ctx)
	if err != nil {
		databases = ncbi.CatalogNames()
	}

	var b strings.Builder
	b.WriteString("# Available NCBI Databases\n\n")
	fmt.Fprintf(&b, "Total databases: %d\n\n", len(databases))
	for _, db := range databases {
		fmt.Fprintf(&b, "- **%s**: %s\n", db, ncbi.CatalogDescription(db))
	}
	b.WriteString("\n## Usage\n")
	b.WriteString("Use these database names with the search_ncbi, fetch_records, and other tools.\n")
	return b.String()
}

const blastProgramsDocument = `# BLAST Programs Available

## Basic BLAST Programs

- **blastn**: Nucleotide-nucleotide BLAST
  - Compares nucleotide query sequences against nucleotide sequence databases
  - Best for DNA/RNA sequences
  - megablast option available only on blastn for highly similar sequences

- **blastp**: Protein-protein BLAST
  - Compares amino acid query sequences against protein sequence databases
  - Best for protein sequences

- **blastx**: Nucleotide-protein BLAST
  - Compares nucleotide query sequences translated in all frames against protein databases
  - Useful for finding protein matches for DNA sequences
  - Good for gene prediction from short nucleotide sequences; long sequences may fail due to resource limits

- **tblastn**: Protein-nucleotide BLAST
  - Compares protein query sequences against nucleotide databases translated in all frames
  - Useful for finding DNA matches for protein sequences

- **tblastx**: Translated nucleotide-nucleotide BLAST
  - Compares nucleotide query sequences translated in all frames against nucleotide databases also translated in all frames
  - Most sensitive but slowest option

## Common BLAST Databases

### Nucleotide Databases
- **nt**: Non-redundant nucleotide collection
- **refseq_rna**: RefSeq RNA sequences
- **16S_ribosomal_RNA**: 16S ribosomal RNA sequences

### Protein Databases
- **nr**: Non-redundant protein sequences
- **refseq_protein**: RefSeq protein sequences
- **pdb**: Protein Data Bank sequences
- **swissprot**: SwissProt protein sequences

## Usage Example
-- **slow** search for distant nucleotide homology with full alignments returned
` + "```" + `
blast_search(
    program="blastn",
    database="nt",
    sequence="ATCGATCGATCG",
    expect_value=0.001
)
` + "```" + `
-- **fast** run a megablast search for very similar nucleotide sequences, only hit metadata returned, no alignment strings
` + "```" + `
blast_search(
    program="blastn",
    database="nt",
    sequence="ATCGATCGATCG",
    expect_value=0.001,
    output_fmt="summary",
    megablast=true
)
` + "```" + `
`
