package fetch

import (
	"context"
	"sync"
)

// Fetcher is the narrow interface the batch layer and the domain scrapers
// consume. Any client able to scrape one URL can satisfy it.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*Result, error)
	Concurrency() int
}

// FetchBatch scrapes all URLs with bounded concurrency and streams results
// as they complete. The channel yields exactly one Result per URL (failed
// fetches carry Err) and is closed afterwards; order follows completion,
// not submission. Consumers get a finite, one-pass sequence.
func FetchBatch(ctx context.Context, client Fetcher, urls []string) <-chan *Result {
	results := make(chan *Result, len(urls))

	go func() {
		defer close(results)

		sem := make(chan struct{}, client.Concurrency())
		var wg sync.WaitGroup

		for _, u := range urls {
			select {
			case <-ctx.Done():
				wg.Wait()
				return
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func(target string) {
				defer wg.Done()
				defer func() { <-sem }()

				r, err := client.Fetch(ctx, target)
				if err != nil {
					results <- &Result{URL: target, Err: err}
					return
				}
				results <- r
			}(u)
		}

		wg.Wait()
	}()

	return results
}
