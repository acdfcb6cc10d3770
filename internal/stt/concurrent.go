package stt

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type chunkResult struct {
	Index  int
	Result *Result
}

// transcribeConcurrent processes chunks with bounded parallelism and API
// rate limiting. This concurrency lives entirely inside the transcription
// collaborator; the narration pipeline itself stays sequential.
func (s *Service) transcribeConcurrent(ctx context.Context, chunks []string) (*Result, error) {
	slog.Info("starting concurrent chunk transcription",
		"chunks", len(chunks),
		"max_concurrent", s.MaxConcurrent,
		"rate_limit_rpm", s.RateLimitPerMin)

	// Rate limiter: tokens per second = RPM / 60.
	limiter := rate.NewLimiter(rate.Limit(float64(s.RateLimitPerMin)/60.0), 1)

	var (
		mu      sync.Mutex
		results []chunkResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.MaxConcurrent)

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			slog.Info("starting chunk upload", "chunk", fmt.Sprintf("%d/%d", i+1, len(chunks)))

			progress := func(read, total int64) {
				pct := 0.0
				if total > 0 {
					pct = math.Min(float64(read)/float64(total)*100, 100)
				}
				slog.Debug("chunk upload progress",
					"chunk", i+1,
					"percent", fmt.Sprintf("%.1f%%", pct))
			}

			var result *Result
			err := s.Retry.Do(gctx, func(ctx context.Context) error {
				r, err := s.Transcribe(ctx, chunk, progress)
				if err != nil {
					slog.Warn("chunk attempt failed", "chunk", i+1, "err", err)
					return err
				}
				result = r
				return nil
			})
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}

			if i > 0 {
				applyTimeOffset(result.Words, float64(i*s.SplitDurationSec))
			}

			mu.Lock()
			results = append(results, chunkResult{Index: i, Result: result})
			mu.Unlock()

			slog.Info("chunk completed", "chunk", fmt.Sprintf("%d/%d", i+1, len(chunks)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Fall back to sequential for whatever did not finish.
		mu.Lock()
		completedCount := len(results)
		mu.Unlock()

		if completedCount > 0 {
			slog.Warn("concurrent transcription partially failed, falling back to sequential",
				"completed", completedCount, "total", len(chunks), "err", err)
			return s.finishSequential(ctx, chunks, results)
		}
		return nil, err
	}

	return mergeResults(results), nil
}

func mergeResults(results []chunkResult) *Result {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	combined := &Result{
		LanguageCode: results[0].Result.LanguageCode,
	}

	for _, r := range results {
		combined.Words = append(combined.Words, r.Result.Words...)
		if combined.Text != "" {
			combined.Text += " "
		}
		combined.Text += r.Result.Text
	}

	return combined
}

// finishSequential transcribes the chunks that the concurrent pass did not
// complete, one at a time.
func (s *Service) finishSequential(ctx context.Context, chunks []string, completed []chunkResult) (*Result, error) {
	done := make(map[int]bool)
	for _, r := range completed {
		done[r.Index] = true
	}

	for i, chunk := range chunks {
		if done[i] {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Info("sequential fallback transcribing chunk", "chunk", fmt.Sprintf("%d/%d", i+1, len(chunks)))

		result, err := s.transcribeWithProgress(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("sequential fallback chunk %d/%d: %w", i+1, len(chunks), err)
		}

		if i > 0 {
			applyTimeOffset(result.Words, float64(i*s.SplitDurationSec))
		}

		completed = append(completed, chunkResult{Index: i, Result: result})
	}

	return mergeResults(completed), nil
}
