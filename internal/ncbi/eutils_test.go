package ncbi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ncbi-mcp/pkg/types"
)

const esearchFixture = `{
  "header": {"type": "esearch", "version": "0.3"},
  "esearchresult": {
    "count": "1432",
    "retmax": "3",
    "retstart": "0",
    "idlist": ["36038128", "35998042", "35821512"],
    "querytranslation": "crispr[All Fields]"
  }
}`

func TestSearch(t *testing.T) {
	t.Run("parses result", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/esearch.fcgi", r.URL.Path)
			assert.Equal(t, "pubmed", r.URL.Query().Get("db"))
			assert.Equal(t, "crispr", r.URL.Query().Get("term"))
			assert.Equal(t, "json", r.URL.Query().Get("retmode"))
			_, _ = w.Write([]byte(esearchFixture))
		}))

		result, err := client.Search(context.Background(), "pubmed", "crispr", 3, 0, "")
		require.NoError(t, err)

		assert.Equal(t, 1432, result.Count)
		assert.Equal(t, 3, result.RetMax)
		assert.Equal(t, []string{"36038128", "35998042", "35821512"}, result.IDs)
		assert.Equal(t, "crispr[All Fields]", result.QueryTranslation)
	})

	t.Run("invalid database", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"esearchresult":{"ERROR":"Invalid db name specified: bogus"}}`))
		}))

		_, err := client.Search(context.Background(), "bogus", "crispr", 3, 0, "")
		assert.ErrorIs(t, err, types.ErrInvalidDatabase)
		assert.Contains(t, err.Error(), "bogus")
	})

	t.Run("other embedded error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"esearchresult":{"ERROR":"Empty term and query_key - nothing todo"}}`))
		}))

		_, err := client.Search(context.Background(), "pubmed", "", 3, 0, "")
		assert.ErrorIs(t, err, types.ErrRemote)
	})

	t.Run("non-JSON body", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		}))

		_, err := client.Search(context.Background(), "pubmed", "crispr", 3, 0, "")
		assert.ErrorIs(t, err, types.ErrFormat)
	})

	t.Run("sort parameter forwarded", func(t *testing.T) {
		var sort string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sort = r.URL.Query().Get("sort")
			_, _ = w.Write([]byte(esearchFixture))
		}))

		_, err := client.Search(context.Background(), "pubmed", "crispr", 3, 0, "pub_date")
		require.NoError(t, err)
		assert.Equal(t, "pub_date", sort)
	})
}

func TestFetch(t *testing.T) {
	t.Run("returns raw content", func(t *testing.T) {
		const fasta = ">NM_000546.6 Homo sapiens tumor protein p53\nATGGAGGAGCCGCAGTCAGAT"
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/efetch.fcgi", r.URL.Path)
			assert.Equal(t, "fasta", r.URL.Query().Get("rettype"))
			assert.Equal(t, "123,456", r.URL.Query().Get("id"))
			_, _ = w.Write([]byte(fasta))
		}))

		content, err := client.Fetch(context.Background(), "nucleotide", []string{"123", "456"}, "fasta", "text")
		require.NoError(t, err)
		assert.Equal(t, fasta, content)
	})

	t.Run("empty id list is NotFound", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be issued for an empty id list")
		}))

		_, err := client.Fetch(context.Background(), "nucleotide", nil, "fasta", "text")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("empty body is NotFound, never empty success", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("\n\n"))
		}))

		_, err := client.Fetch(context.Background(), "nucleotide", []string{"999999999"}, "fasta", "text")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

// summaryFixture returns an esummary JSON body covering the given uids
func summaryFixture(uids ...string) string {
	docs := make([]string, 0, len(uids))
	quoted := make([]string, 0, len(uids))
	for _, uid := range uids {
		quoted = append(quoted, fmt.Sprintf("%q", uid))
		docs = append(docs, fmt.Sprintf(`%q: {
			"uid": %q,
			"title": "Record %s",
			"authors": [{"name": "Kaminski MM", "authtype": "Author"}, {"name": "Abudayyeh OO", "authtype": "Author"}],
			"fulljournalname": "Nature Biomedical Engineering",
			"pubdate": "2021 Jul",
			"articleids": [{"idtype": "pubmed", "value": %q}, {"idtype": "doi", "value": "10.1038/s41551-021-00760-7"}]
		}`, uid, uid, uid, uid))
	}
	return fmt.Sprintf(`{"result": {"uids": [%s], %s}}`,
		strings.Join(quoted, ","), strings.Join(docs, ","))
}

func TestSummarize(t *testing.T) {
	t.Run("parses summaries", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/esummary.fcgi", r.URL.Path)
			_, _ = w.Write([]byte(summaryFixture("34931002", "34931003")))
		}))

		summaries, err := client.Summarize(context.Background(), "pubmed", []string{"34931002", "34931003"})
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		assert.Equal(t, "34931002", summaries[0].UID)
		assert.Equal(t, "Record 34931002", summaries[0].Title)
		assert.Equal(t, []string{"Kaminski MM", "Abudayyeh OO"}, summaries[0].Authors)
		assert.Equal(t, "Nature Biomedical Engineering", summaries[0].Journal)
		assert.Equal(t, "2021 Jul", summaries[0].PubDate)
		assert.Equal(t, "10.1038/s41551-021-00760-7", summaries[0].DOI)
	})

	t.Run("empty id list is NotFound", func(t *testing.T) {
		client, _ := newTestClient(t, nil)
		_, err := client.Summarize(context.Background(), "pubmed", nil)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("batches large id lists", func(t *testing.T) {
		var requests atomic.Int32
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			ids := strings.Split(r.URL.Query().Get("id"), ",")
			assert.LessOrEqual(t, len(ids), MaxIDsPerSummary)
			_, _ = w.Write([]byte(summaryFixture(ids...)))
		}))

		ids := make([]string, MaxIDsPerSummary+50)
		for i := range ids {
			ids[i] = fmt.Sprintf("%d", 1000000+i)
		}

		summaries, err := client.Summarize(context.Background(), "pubmed", ids)
		require.NoError(t, err)
		assert.Len(t, summaries, len(ids))
		assert.Equal(t, int32(2), requests.Load())

		// Input order survives batching
		assert.Equal(t, ids[0], summaries[0].UID)
		assert.Equal(t, ids[len(ids)-1], summaries[len(summaries)-1].UID)
	})

	t.Run("skips per-record errors", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"result": {"uids": ["1", "2"],
				"1": {"uid": "1", "title": "Good record"},
				"2": {"uid": "2", "error": "cannot get document summary"}}}`))
		}))

		summaries, err := client.Summarize(context.Background(), "pubmed", []string{"1", "2"})
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Good record", summaries[0].Title)
	})
}

func TestLink(t *testing.T) {
	t.Run("maps each source id", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/elink.fcgi", r.URL.Path)
			assert.Equal(t, []string{"111", "222"}, r.URL.Query()["id"])
			_, _ = w.Write([]byte(`{"linksets": [
				{"dbfrom": "pubmed", "ids": ["111"], "linksetdbs": [
					{"dbto": "gene", "linkname": "pubmed_gene", "links": ["7157", "672"]}]},
				{"dbfrom": "pubmed", "ids": ["222"], "linksetdbs": [
					{"dbto": "gene", "linkname": "pubmed_gene", "links": ["4609"]}]}
			]}`))
		}))

		related, err := client.Link(context.Background(), "pubmed", "gene", []string{"111", "222"})
		require.NoError(t, err)

		assert.Equal(t, map[string][]string{
			"111": {"7157", "672"},
			"222": {"4609"},
		}, related)
	})

	t.Run("no relations yields empty mapping, not an error", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"linksets": [{"dbfrom": "pubmed", "ids": ["111"]}]}`))
		}))

		related, err := client.Link(context.Background(), "pubmed", "gene", []string{"111"})
		require.NoError(t, err)
		assert.NotNil(t, related)
		assert.Empty(t, related)
	})
}

func TestInfo(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/einfo.fcgi", r.URL.Path)
		assert.Equal(t, "pubmed", r.URL.Query().Get("db"))
		_, _ = w.Write([]byte(`{"einforesult": {"dbinfo": [{
			"dbname": "pubmed",
			"menuname": "PubMed",
			"description": "PubMed bibliographic record",
			"count": "36500000",
			"lastupdate": "2026/08/20 10:30"
		}]}}`))
	}))

	info, err := client.Info(context.Background(), "pubmed")
	require.NoError(t, err)

	assert.Equal(t, "pubmed", info.Name)
	assert.Equal(t, "PubMed", info.MenuName)
	assert.Equal(t, int64(36500000), info.Count)
	assert.Equal(t, "2026/08/20 10:30", info.LastUpdate)
}

func TestDatabases(t *testing.T) {
	t.Run("live dblist", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"einforesult": {"dblist": ["pubmed", "protein", "nuccore"]}}`))
		}))

		databases, err := client.Databases(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"pubmed", "protein", "nuccore"}, databases)
	})

	t.Run("falls back to catalog on remote failure", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		databases, err := client.Databases(context.Background())
		require.NoError(t, err)
		assert.Equal(t, CatalogNames(), databases)
		assert.Contains(t, databases, "pubmed")
	})
}

func TestBatchIDs(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		want  []int // batch lengths
	}{
		{"under limit", 3, 10, []int{3}},
		{"exactly limit", 10, 10, []int{10}},
		{"one over", 11, 10, []int{10, 1}},
		{"several batches", 25, 10, []int{10, 10, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.total)
			batches := batchIDs(ids, tt.size)
			require.Len(t, batches, len(tt.want))
			for i, want := range tt.want {
				assert.Len(t, batches[i], want)
			}
		})
	}
}
