package ncbi

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	t.Run("known database", func(t *testing.T) {
		assert.True(t, CatalogHas("pubmed"))
		assert.Equal(t, "PubMed biomedical literature database", CatalogDescription("pubmed"))
	})

	t.Run("unknown database", func(t *testing.T) {
		assert.False(t, CatalogHas("nonexistent_db"))
	})

	t.Run("generic description for undocumented names", func(t *testing.T) {
		assert.Equal(t, "NCBI database", CatalogDescription("something_new"))
	})

	t.Run("names sorted and complete", func(t *testing.T) {
		names := CatalogNames()
		assert.True(t, sort.StringsAreSorted(names))
		assert.Len(t, names, len(catalog))
		assert.Contains(t, names, "taxonomy")
		assert.Contains(t, names, "sra")
	})
}
