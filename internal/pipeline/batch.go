package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency is used when ParseBatch is given a non-positive concurrency
const DefaultBatchConcurrency = 4

// BatchItem is the outcome for one file of a batch
type BatchItem struct {
	Path     string
	Result   *Result
	Err      error
	Duration time.Duration
}

// ParseBatch parses files concurrently with at most concurrency files in flight.
// Items are returned in input order. A failing file records its error and does not stop the others.
func (p *Pipeline) ParseBatch(ctx context.Context, paths []string, concurrency int) []BatchItem {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	items := make([]BatchItem, len(paths))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			start := time.Now()
			item := BatchItem{Path: path}
			if err := ctx.Err(); err != nil {
				item.Err = err
			} else {
				item.Result, item.Err = p.ParseFile(ctx, path)
			}
			item.Duration = time.Since(start)
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	p.logger.Info().Int("files", len(paths)).Int("failed", failed).Int("concurrency", concurrency).Msg("batch parsed")

	return items
}

// CollectDocuments expands directories into the PDF and DOCX files they contain (non-recursive)
// and keeps file arguments as given. Results are sorted within each directory.
func CollectDocuments(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || MimeTypeForExtension(e.Name()) == "" {
				continue
			}
			found = append(found, filepath.Join(arg, e.Name()))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}
