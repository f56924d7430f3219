package translateplus

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ConcurrentItem is the outcome of one text in a concurrent batch.
// Exactly one of Result and Err is set.
type ConcurrentItem struct {
	Text   string
	Result *TranslationResult
	Err    *Error
}

// ConcurrentResult collects the outcomes of a concurrent batch in
// input order. Total always equals Successful + Failed.
type ConcurrentResult struct {
	Items      []ConcurrentItem
	Total      int
	Successful int
	Failed     int
}

// ConcurrentOption tunes a single TranslateConcurrent call.
type ConcurrentOption func(*concurrentOptions)

type concurrentOptions struct {
	maxWorkers int
}

// WithMaxWorkers overrides the client's MaxConcurrent bound for one
// call. Values below 1 fall back to the client's configuration.
func WithMaxWorkers(n int) ConcurrentOption {
	return func(o *concurrentOptions) {
		o.maxWorkers = n
	}
}

// TranslateConcurrent fans out single-translate calls for many
// independent texts over a bounded worker pool.
//
// Items[i] always corresponds to texts[i] regardless of completion
// order. A failed item is captured in place and neither cancels nor
// delays the other in-flight items; retry of transient failures
// happens per item inside the transport. There is no batch-wide
// timeout beyond the per-request timeout.
//
// Example:
//
//	result, err := client.TranslateConcurrent(ctx, []string{"Hello", "Goodbye"}, "en", "fr")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, item := range result.Items {
//		if item.Err != nil {
//			fmt.Printf("%s -> error: %v\n", item.Text, item.Err)
//			continue
//		}
//		fmt.Printf("%s -> %s\n", item.Text, item.Result.Translations.Translation)
//	}
func (c *Client) TranslateConcurrent(ctx context.Context, texts []string, source, target string, opts ...ConcurrentOption) (*ConcurrentResult, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, newValidationError("texts list cannot be empty")
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	options := concurrentOptions{maxWorkers: c.config.MaxConcurrent}
	for _, opt := range opts {
		opt(&options)
	}
	if options.maxWorkers < 1 {
		options.maxWorkers = c.config.MaxConcurrent
	}

	items := make([]ConcurrentItem, len(texts))
	var group errgroup.Group
	group.SetLimit(options.maxWorkers)
	for i, text := range texts {
		i, text := i, text
		group.Go(func() error {
			result, err := c.Translate(ctx, text, source, target)
			items[i] = ConcurrentItem{Text: text, Result: result}
			if err != nil {
				items[i] = ConcurrentItem{Text: text, Err: asClientError(err)}
			}
			// Item failures are captured in place, never propagated,
			// so one bad text cannot cancel the rest of the batch.
			return nil
		})
	}
	_ = group.Wait()

	out := &ConcurrentResult{Items: items, Total: len(items)}
	for i := range items {
		if items[i].Err != nil {
			out.Failed++
		} else {
			out.Successful++
		}
	}
	return out, nil
}

// asClientError normalizes any endpoint error into the typed payload.
func asClientError(err error) *Error {
	if e, ok := AsError(err); ok {
		return e
	}
	return &Error{Kind: KindConnection, Message: err.Error()}
}
