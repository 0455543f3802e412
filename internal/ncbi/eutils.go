package ncbi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/ncbi-mcp/pkg/types"
)

// summaryBatchWorkers bounds concurrent esummary batches. The shared rate
// limiter still spaces the actual requests.
const summaryBatchWorkers = 4

// Search queries a database with esearch and returns the matching ids plus
// the total count. The database name is passed through to the remote
// service; its own validation decides whether the name is legal
// (ErrInvalidDatabase).
func (c *Client) Search(ctx context.Context, database, query string, retmax, retstart int, sort string) (*types.SearchResult, error) {
	params := url.Values{}
	params.Set("db", database)
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(retmax))
	params.Set("retstart", strconv.Itoa(retstart))
	params.Set("retmode", "json")
	if sort != "" {
		params.Set("sort", sort)
	}

	body, err := c.eutils(ctx, "esearch", params)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: esearch response is not JSON: %s", types.ErrFormat, bodySnippet(body))
	}
	root := gjson.ParseBytes(body)

	if msg := root.Get("error").Str; msg != "" {
		return nil, remoteSearchError(database, msg)
	}
	res := root.Get("esearchresult")
	if !res.Exists() {
		return nil, fmt.Errorf("%w: esearch response missing esearchresult", types.ErrFormat)
	}
	if msg := res.Get("ERROR").Str; msg != "" {
		return nil, remoteSearchError(database, msg)
	}

	result := &types.SearchResult{
		Count:            atoiField(res, "count"),
		RetMax:           atoiField(res, "retmax"),
		RetStart:         atoiField(res, "retstart"),
		QueryTranslation: res.Get("querytranslation").Str,
		WebEnv:           res.Get("webenv").Str,
		QueryKey:         res.Get("querykey").Str,
	}
	for _, id := range res.Get("idlist").Array() {
		result.IDs = append(result.IDs, id.String())
	}

	c.log.Debug("search complete",
		zap.String("database", database),
		zap.Int("count", result.Count),
		zap.Int("returned", len(result.IDs)))

	return result, nil
}

// remoteSearchError classifies an embedded esearch error. A rejected
// database name is the caller's mistake (ErrInvalidDatabase); everything
// else is the remote service reporting failure.
func remoteSearchError(database, msg string) error {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "db name") || strings.Contains(lower, "database") {
		return fmt.Errorf("%w: %q: %s", types.ErrInvalidDatabase, database, msg)
	}
	return fmt.Errorf("%w: %s", types.ErrRemote, msg)
}

// Fetch retrieves raw record content with efetch in the requested rettype
// and retmode. The body is passed through untouched; NCBI's own formats
// (xml, fasta, gb, medline, ...) are not validated locally.
func (c *Client) Fetch(ctx context.Context, database string, ids []string, rettype, retmode string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: no ids to fetch", types.ErrNotFound)
	}

	params := url.Values{}
	params.Set("db", database)
	params.Set("id", strings.Join(ids, ","))
	if rettype != "" {
		params.Set("rettype", rettype)
	}
	if retmode != "" {
		params.Set("retmode", retmode)
	}

	body, err := c.eutils(ctx, "efetch", params)
	if err != nil {
		return "", err
	}

	content := string(body)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: none of %d ids resolved in %s", types.ErrNotFound, len(ids), database)
	}
	return content, nil
}

// Summarize retrieves esummary documents for the given ids, batching large
// id lists and reassembling results in input order. Batches run through an
// errgroup; the shared limiter still paces the underlying requests.
func (c *Client) Summarize(ctx context.Context, database string, ids []string) ([]types.RecordSummary, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no ids to summarize", types.ErrNotFound)
	}

	batches := batchIDs(ids, MaxIDsPerSummary)
	results := make([][]types.RecordSummary, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryBatchWorkers)
	for i, batch := range batches {
		g.Go(func() error {
			summaries, err := c.summarizeBatch(gctx, database, batch)
			if err != nil {
				return err
			}
			results[i] = summaries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []types.RecordSummary
	for _, part := range results {
		all = append(all, part...)
	}
	return all, nil
}

func (c *Client) summarizeBatch(ctx context.Context, database string, ids []string) ([]types.RecordSummary, error) {
	params := url.Values{}
	params.Set("db", database)
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")

	body, err := c.eutils(ctx, "esummary", params)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: esummary response is not JSON: %s", types.ErrFormat, bodySnippet(body))
	}
	root := gjson.ParseBytes(body)

	if msg := root.Get("error").Str; msg != "" {
		return nil, fmt.Errorf("%w: %s", types.ErrRemote, msg)
	}
	result := root.Get("result")
	if !result.Exists() {
		return nil, fmt.Errorf("%w: esummary response missing result", types.ErrFormat)
	}

	// The result object keys records by UID; the uids array preserves
	// request order.
	summaries := make([]types.RecordSummary, 0, len(ids))
	for _, uid := range result.Get("uids").Array() {
		doc := result.Get(uid.String())
		if !doc.Exists() {
			continue
		}
		if msg := doc.Get("error").Str; msg != "" {
			// Individual record errors (e.g. a withdrawn id) are
			// skipped rather than failing the whole batch.
			c.log.Warn("summary unavailable",
				zap.String("uid", uid.String()),
				zap.String("reason", msg))
			continue
		}
		summaries = append(summaries, parseSummaryDoc(uid.String(), doc))
	}
	return summaries, nil
}

func parseSummaryDoc(uid string, doc gjson.Result) types.RecordSummary {
	summary := types.RecordSummary{
		UID:     uid,
		Title:   doc.Get("title").Str,
		Journal: doc.Get("fulljournalname").Str,
		PubDate: doc.Get("pubdate").Str,
	}
	for _, author := range doc.Get("authors").Array() {
		if name := author.Get("name").Str; name != "" {
			summary.Authors = append(summary.Authors, name)
		}
	}
	for _, aid := range doc.Get("articleids").Array() {
		if aid.Get("idtype").Str == "doi" {
			summary.DOI = aid.Get("value").Str
			break
		}
	}
	return summary
}

// Link finds related records in the target database with elink. Each source
// id is sent as its own id parameter so the response carries one linkset
// per id, giving a per-source mapping. Ids with no relations are absent
// from the map; no relations at all yields an empty map, not an error.
func (c *Client) Link(ctx context.Context, fromDB, toDB string, ids []string) (map[string][]string, error) {
	params := url.Values{}
	params.Set("dbfrom", fromDB)
	params.Set("db", toDB)
	params.Set("retmode", "json")
	for _, id := range ids {
		params.Add("id", id)
	}

	body, err := c.eutils(ctx, "elink", params)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: elink response is not JSON: %s", types.ErrFormat, bodySnippet(body))
	}
	root := gjson.ParseBytes(body)

	if msg := root.Get("error").Str; msg != "" {
		return nil, fmt.Errorf("%w: %s", types.ErrRemote, msg)
	}

	related := make(map[string][]string)
	for _, linkset := range root.Get("linksets").Array() {
		sources := linkset.Get("ids").Array()
		if len(sources) == 0 {
			continue
		}
		source := sources[0].String()
		for _, lsdb := range linkset.Get("linksetdbs").Array() {
			for _, link := range lsdb.Get("links").Array() {
				related[source] = append(related[source], link.String())
			}
		}
	}
	return related, nil
}

// Info retrieves einfo details for one database. Callers gate the name
// against the catalog first; this method trusts it.
func (c *Client) Info(ctx context.Context, database string) (*types.DatabaseInfo, error) {
	params := url.Values{}
	params.Set("db", database)
	params.Set("retmode", "json")

	body, err := c.eutils(ctx, "einfo", params)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: einfo response is not JSON: %s", types.ErrFormat, bodySnippet(body))
	}
	root := gjson.ParseBytes(body)

	if msg := root.Get("error").Str; msg != "" {
		return nil, fmt.Errorf("%w: %s", types.ErrRemote, msg)
	}
	dbinfo := root.Get("einforesult.dbinfo.0")
	if !dbinfo.Exists() {
		return nil, fmt.Errorf("%w: einfo response missing dbinfo", types.ErrFormat)
	}

	return &types.DatabaseInfo{
		Name:        dbinfo.Get("dbname").Str,
		MenuName:    dbinfo.Get("menuname").Str,
		Description: dbinfo.Get("description").Str,
		Count:       dbinfo.Get("count").Int(),
		LastUpdate:  dbinfo.Get("lastupdate").Str,
	}, nil
}

// Databases lists the databases the remote service reports via einfo. When
// the live call fails the static catalog stands in, so the tool keeps
// working offline.
func (c *Client) Databases(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("retmode", "json")

	body, err := c.eutils(ctx, "einfo", params)
	if err != nil {
		c.log.Warn("einfo dblist unavailable, using static catalog", zap.Error(err))
		return CatalogNames(), nil
	}

	root := gjson.ParseBytes(body)
	list := root.Get("einforesult.dblist").Array()
	if len(list) == 0 {
		return CatalogNames(), nil
	}

	names := make([]string, 0, len(list))
	for _, db := range list {
		names = append(names, db.String())
	}
	return names, nil
}

// atoiField reads a numeric field that esearch serializes as a string
func atoiField(res gjson.Result, key string) int {
	n, err := strconv.Atoi(res.Get(key).Str)
	if err != nil {
		return int(res.Get(key).Int())
	}
	return n
}

// batchIDs splits ids into chunks of at most size
func batchIDs(ids []string, size int) [][]string {
	var batches [][]string
	for len(ids) > size {
		batches = append(batches, ids[:size])
		ids = ids[size:]
	}
	return append(batches, ids)
}
