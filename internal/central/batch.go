package central

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// RequestSpec is one unit of work for Batch: the same method/path/options
// shape Do takes, plus a Name used when reporting per-item results.
type RequestSpec struct {
	Name   string
	Method string
	Path   string
	Opts   []ReqOption
}

// BatchOptions control fan-out behavior.
type BatchOptions struct {
	// Concurrency caps in-flight requests; 0 uses DefaultBatchConcurrency.
	Concurrency int
	// ContinueOnFail keeps dispatching after a failure instead of canceling
	// the remaining requests.
	ContinueOnFail bool
	// RetryFailed makes one extra pass re-issuing requests that failed.
	RetryFailed bool
}

// DefaultBatchConcurrency bounds parallel requests per batch. The shared
// rate limiter still paces the aggregate request rate.
const DefaultBatchConcurrency = 10

// Batch fans out reqs with bounded concurrency and returns one Response per
// request, positionally aligned with the input. Without ContinueOnFail the
// first failure cancels requests not yet dispatched; their Response carries
// the cancellation error. With RetryFailed, failed entries get one more
// attempt after the first pass completes.
func (c *Client) Batch(ctx context.Context, reqs []RequestSpec, opts BatchOptions) []*Response {
	results := make([]*Response, len(reqs))
	if len(reqs) == 0 {
		return results
	}
	conc := opts.Concurrency
	if conc <= 0 {
		conc = DefaultBatchConcurrency
	}

	c.runBatchPass(ctx, reqs, results, conc, opts.ContinueOnFail, nil)

	if opts.RetryFailed {
		var retry []int
		for i, r := range results {
			if r != nil && !r.Ok() {
				retry = append(retry, i)
			}
		}
		if len(retry) > 0 {
			c.log.Info("retrying failed batch requests", "count", len(retry))
			c.runBatchPass(ctx, reqs, results, conc, true, retry)
		}
	}
	return results
}

// runBatchPass executes one pass over the given indices (all of reqs when
// indices is nil), writing into results.
func (c *Client) runBatchPass(ctx context.Context, reqs []RequestSpec, results []*Response, conc int, continueOnFail bool, indices []int) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(conc)

	if indices == nil {
		indices = make([]int, len(reqs))
		for i := range reqs {
			indices[i] = i
		}
	}

	for _, i := range indices {
		i := i
		g.Go(func() error {
			spec := reqs[i]
			resp := c.Do(gctx, spec.Method, spec.Path, spec.Opts...)
			results[i] = resp
			if !resp.Ok() && !continueOnFail {
				return fmt.Errorf("batch request %q failed: %s", spec.Name, resp.Error())
			}
			return nil
		})
	}
	// Error already recorded per-request; the group is used for cancellation.
	_ = g.Wait()

	for _, i := range indices {
		if results[i] == nil {
			r := newResponse(reqs[i].Method, c.baseURL+reqs[i].Path)
			r.Err = fmt.Errorf("canceled before dispatch")
			results[i] = r
		}
	}
}
