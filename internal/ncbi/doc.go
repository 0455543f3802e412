// Package ncbi implements the remote client for NCBI E-utilities and BLAST.
//
// The client wraps two NCBI web APIs behind one rate-governed surface:
//
//   - E-utilities (esearch, efetch, esummary, elink, einfo) at
//     https://eutils.ncbi.nlm.nih.gov/entrez/eutils, synchronous
//     query/fetch/summary calls.
//   - BLAST URL API at https://blast.ncbi.nlm.nih.gov/Blast.cgi, an
//     asynchronous job service: a submission returns a request id (RID),
//     and results are polled until the job is ready.
//
// Every outbound request acquires the shared ratelimit.Limiter first, so
// the process as a whole never exceeds NCBI's request budget regardless of
// how many tool calls run concurrently.
//
// # Errors
//
// All failures wrap a sentinel from pkg/types: ErrTransport for requests
// that never completed, ErrRemote for remote-reported failures (message
// passed through verbatim), ErrFormat for unparsable bodies, plus the
// operation-specific ErrNotFound, ErrInvalidDatabase, ErrPollTimeout,
// ErrBlastFailed, and ErrBlastExpired. Nothing is retried.
//
// # BLAST lifecycle
//
// BlastSearch drives an explicit state machine:
//
//	submitted → waiting → ready    (retrieve and return)
//	                    → failed   (ErrBlastFailed)
//	                    → expired  (ErrBlastExpired)
//
// A job still waiting when the configured budget elapses returns
// ErrPollTimeout without issuing further polls. Poll interval and budget
// come from Config (NCBI_BLAST_POLL_INTERVAL, NCBI_BLAST_MAX_WAIT).
package ncbi
