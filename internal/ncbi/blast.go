package ncbi

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/ncbi-mcp/pkg/types"
)

// BlastRequest describes one BLAST submission
type BlastRequest struct {
	// Program is one of blastn, blastp, blastx, tblastn, tblastx
	Program  string
	Database string
	// Sequence is the query, raw or FASTA; passed through unvalidated
	Sequence string

	Expect   float64
	WordSize int
	Matrix   string
	GapCosts string
	// Megablast selects the megablast algorithm; only meaningful for blastn
	Megablast bool

	// FullAlignments keeps the aligned sequence strings in each HSP;
	// when false only hit metadata and scores are returned.
	FullAlignments bool
}

var (
	ridPattern    = regexp.MustCompile(`RID = (\S+)`)
	statusPattern = regexp.MustCompile(`Status=(\S+)`)
	// Submission rejections come back as an HTML page with a numbered message
	blastErrPattern = regexp.MustCompile(`Message ID#\d+ Error:\s*([^<\n]+)`)
)

// BlastSearch runs the full submit, poll, retrieve lifecycle for one BLAST
// job and returns the parsed report. The job is local to this call: nothing
// survives the return, and a lost process simply resubmits.
//
// The lifecycle is an explicit state machine on BlastJob.Status. Every
// remote call, including each poll, passes through the shared rate limiter.
// Polls are separated by the configured interval and stop as soon as the
// wait budget is exhausted (ErrPollTimeout).
func (c *Client) BlastSearch(ctx context.Context, req BlastRequest) (*types.BlastReport, error) {
	job := types.BlastJob{
		SubmittedAt: time.Now(),
		Status:      types.BlastSubmitted,
	}
	deadline := job.SubmittedAt.Add(c.cfg.BlastMaxWait)

	// Reason reported by the last status poll, for terminal failure states
	var reason string

	for {
		switch job.Status {
		case types.BlastSubmitted:
			rid, err := c.blastSubmit(ctx, req)
			if err != nil {
				return nil, err
			}
			job.RID = rid
			job.Status = types.BlastWaiting
			c.log.Info("blast job submitted",
				zap.String("rid", rid),
				zap.String("program", req.Program),
				zap.String("database", req.Database))

		case types.BlastWaiting:
			if !time.Now().Before(deadline) {
				return nil, fmt.Errorf("%w: job %s still waiting after %s",
					types.ErrPollTimeout, job.RID, c.cfg.BlastMaxWait)
			}
			if err := sleepCtx(ctx, c.cfg.BlastPollInterval); err != nil {
				return nil, fmt.Errorf("%w: %v", types.ErrTransport, err)
			}
			status, msg, err := c.blastStatus(ctx, job.RID)
			if err != nil {
				return nil, err
			}
			job.Status = status
			reason = msg
			c.log.Debug("blast job polled",
				zap.String("rid", job.RID),
				zap.String("status", string(status)))

		case types.BlastReady:
			return c.blastRetrieve(ctx, job.RID, req)

		case types.BlastFailed:
			if reason == "" {
				reason = "remote service reported failure"
			}
			return nil, fmt.Errorf("%w: job %s: %s", types.ErrBlastFailed, job.RID, reason)

		case types.BlastExpired:
			return nil, fmt.Errorf("%w: job %s was purged by the remote service",
				types.ErrBlastExpired, job.RID)
		}
	}
}

// blastSubmit issues CMD=Put and returns the assigned request id
func (c *Client) blastSubmit(ctx context.Context, req BlastRequest) (string, error) {
	params := c.baseParams()
	params.Set("CMD", "Put")
	params.Set("PROGRAM", req.Program)
	params.Set("DATABASE", req.Database)
	params.Set("QUERY", req.Sequence)
	if req.Expect > 0 {
		params.Set("EXPECT", strconv.FormatFloat(req.Expect, 'g', -1, 64))
	}
	if req.WordSize > 0 {
		params.Set("WORD_SIZE", strconv.Itoa(req.WordSize))
	}
	if req.Matrix != "" {
		params.Set("MATRIX_NAME", req.Matrix)
	}
	if req.GapCosts != "" {
		params.Set("GAPCOSTS", req.GapCosts)
	}
	if req.Megablast {
		params.Set("MEGABLAST", "on")
	}

	body, err := c.get(ctx, c.cfg.BlastBaseURL, params)
	if err != nil {
		return "", err
	}

	if m := blastErrPattern.FindSubmatch(body); m != nil {
		return "", fmt.Errorf("%w: submission rejected: %s",
			types.ErrRemote, strings.TrimSpace(string(m[1])))
	}
	m := ridPattern.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("%w: no RID in submission response: %s",
			types.ErrFormat, bodySnippet(body))
	}
	return string(m[1]), nil
}

// blastStatus issues CMD=Get with FORMAT_OBJECT=SearchInfo and maps the
// remote status word onto the job state machine. UNKNOWN means the service
// no longer knows the RID, i.e. the job expired.
func (c *Client) blastStatus(ctx context.Context, rid string) (types.BlastStatus, string, error) {
	params := c.baseParams()
	params.Set("CMD", "Get")
	params.Set("RID", rid)
	params.Set("FORMAT_OBJECT", "SearchInfo")

	body, err := c.get(ctx, c.cfg.BlastBaseURL, params)
	if err != nil {
		return "", "", err
	}

	m := statusPattern.FindSubmatch(body)
	if m == nil {
		return "", "", fmt.Errorf("%w: no Status in poll response: %s",
			types.ErrFormat, bodySnippet(body))
	}

	var reason string
	if em := blastErrPattern.FindSubmatch(body); em != nil {
		reason = strings.TrimSpace(string(em[1]))
	}

	switch string(m[1]) {
	case "WAITING":
		return types.BlastWaiting, reason, nil
	case "READY":
		return types.BlastReady, reason, nil
	case "FAILED":
		return types.BlastFailed, reason, nil
	case "UNKNOWN":
		return types.BlastExpired, reason, nil
	default:
		return "", "", fmt.Errorf("%w: unrecognized blast status %q",
			types.ErrFormat, string(m[1]))
	}
}

// blastRetrieve fetches the XML report for a ready job and parses it
func (c *Client) blastRetrieve(ctx context.Context, rid string, req BlastRequest) (*types.BlastReport, error) {
	params := c.baseParams()
	params.Set("CMD", "Get")
	params.Set("RID", rid)
	params.Set("FORMAT_TYPE", "XML")

	body, err := c.get(ctx, c.cfg.BlastBaseURL, params)
	if err != nil {
		return nil, err
	}

	var out blastOutput
	if err := xml.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode blast XML for job %s: %v", types.ErrFormat, rid, err)
	}

	report := &types.BlastReport{
		RID:         rid,
		Program:     out.Program,
		Database:    out.Database,
		Query:       out.QueryDef,
		QueryLength: out.QueryLen,
	}
	if len(out.Iterations) > 0 {
		for _, hit := range out.Iterations[0].Hits {
			report.Hits = append(report.Hits, hit.toHit(req.FullAlignments))
		}
	}

	c.log.Info("blast job complete",
		zap.String("rid", rid),
		zap.Int("hits", len(report.Hits)))

	return report, nil
}

// sleepCtx sleeps for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wire structs for the NCBI BlastOutput XML DTD. Only the fields the report
// needs are mapped.

type blastOutput struct {
	XMLName    xml.Name         `xml:"BlastOutput"`
	Program    string           `xml:"BlastOutput_program"`
	Database   string           `xml:"BlastOutput_db"`
	QueryDef   string           `xml:"BlastOutput_query-def"`
	QueryLen   int              `xml:"BlastOutput_query-len"`
	Iterations []blastIteration `xml:"BlastOutput_iterations>Iteration"`
}

type blastIteration struct {
	Hits []blastHit `xml:"Iteration_hits>Hit"`
}

type blastHit struct {
	Def       string     `xml:"Hit_def"`
	Accession string     `xml:"Hit_accession"`
	Length    int        `xml:"Hit_len"`
	HSPs      []blastHsp `xml:"Hit_hsps>Hsp"`
}

type blastHsp struct {
	BitScore  float64 `xml:"Hsp_bit-score"`
	Score     float64 `xml:"Hsp_score"`
	EValue    float64 `xml:"Hsp_evalue"`
	QueryFrom int     `xml:"Hsp_query-from"`
	QueryTo   int     `xml:"Hsp_query-to"`
	HitFrom   int     `xml:"Hsp_hit-from"`
	HitTo     int     `xml:"Hsp_hit-to"`
	Identity  int     `xml:"Hsp_identity"`
	AlignLen  int     `xml:"Hsp_align-len"`
	QSeq      string  `xml:"Hsp_qseq"`
	HSeq      string  `xml:"Hsp_hseq"`
	Midline   string  `xml:"Hsp_midline"`
}

func (h blastHit) toHit(fullAlignments bool) types.BlastHit {
	hit := types.BlastHit{
		Title:     h.Def,
		Accession: h.Accession,
		Length:    h.Length,
	}
	for _, hsp := range h.HSPs {
		out := types.BlastHSP{
			Score:     hsp.Score,
			BitScore:  hsp.BitScore,
			EValue:    hsp.EValue,
			QueryFrom: hsp.QueryFrom,
			QueryTo:   hsp.QueryTo,
			HitFrom:   hsp.HitFrom,
			HitTo:     hsp.HitTo,
			Identity:  hsp.Identity,
			AlignLen:  hsp.AlignLen,
		}
		if fullAlignments {
			out.QuerySeq = hsp.QSeq
			out.SubjectSeq = hsp.HSeq
			out.Midline = hsp.Midline
		}
		hit.HSPs = append(hit.HSPs, out)
	}
	return hit
}
