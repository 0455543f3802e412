package ncbi

import "sort"

// catalog is the static database inventory, used to gate get_database_info
// and as the offline fallback for list_databases. Descriptions cover the
// commonly used databases; the remainder carry a generic description.
var catalog = map[string]string{
	"pubmed":          "PubMed biomedical literature database",
	"protein":         "Protein sequence database",
	"nucleotide":      "Nucleotide sequence database",
	"nuccore":         "Nucleotide collection (GenBank+EMBL+DDBJ+PDB+RefSeq)",
	"nucest":          "Expressed Sequence Tags",
	"nucgss":          "Genome Survey Sequences",
	"gene":            "Gene-centered information",
	"genome":          "Genome sequencing projects",
	"assembly":        "Genome assemblies",
	"bioproject":      "BioProject metadata",
	"biosample":       "BioSample metadata",
	"books":           "NCBI Bookshelf",
	"cdd":             "Conserved Domain Database",
	"clinvar":         "Clinical significance of genomic variation",
	"gap":             "Genotypes and Phenotypes",
	"gapplus":         "Genotypes and Phenotypes (internal)",
	"grasp":           "GRASP genome-wide association data",
	"dbvar":           "Genomic structural variation",
	"gds":             "GEO DataSets",
	"geoprofiles":     "GEO expression profiles",
	"homologene":      "Homologous gene sets",
	"mesh":            "Medical Subject Headings",
	"nlmcatalog":      "NLM Catalog",
	"omim":            "Online Mendelian Inheritance in Man",
	"pmc":             "PubMed Central full-text articles",
	"popset":          "Population study sequence sets",
	"probe":           "Probe sequences and reagents",
	"proteinclusters": "Related protein sequence clusters",
	"pcassay":         "PubChem BioAssay",
	"pccompound":      "PubChem Compound",
	"pcsubstance":     "PubChem Substance",
	"snp":             "Single Nucleotide Polymorphism",
	"sra":             "Sequence Read Archive",
	"taxonomy":        "Taxonomic information",
	"unigene":         "Transcript clusters",
}

// CatalogHas reports whether the database name is in the static catalog
func CatalogHas(database string) bool {
	_, ok := catalog[database]
	return ok
}

// CatalogDescription returns the catalog description for a database, or a
// generic one when the name is known but undocumented.
func CatalogDescription(database string) string {
	if desc, ok := catalog[database]; ok {
		return desc
	}
	return "NCBI database"
}

// CatalogNames returns all catalog database names, sorted
func CatalogNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
