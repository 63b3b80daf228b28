// Package publisher runs the background sweep that promotes scheduled news
// to published once their time arrives.
package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"newsroom/internal/cache"
	"newsroom/internal/repository"
)

// Publisher periodically scans for due, unpublished news and marks it
// published. It owns its goroutine: Start launches the loop, Shutdown stops
// ticking and waits for an in-flight sweep to finish.
type Publisher struct {
	repo     repository.NewsRepository
	cache    *cache.Client
	logger   *logrus.Logger
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Publisher sweeping at the given interval.
func New(repo repository.NewsRepository, cache *cache.Client, logger *logrus.Logger, interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Publisher{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		interval: interval,
	}
}

// Start launches the sweep loop.
func (p *Publisher) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	// Cancellation stops the ticking, not the pass already underway: an
	// interrupted store write would leave due items half-published, so the
	// sweep itself runs under a context that survives Shutdown.
	sweepCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.logger.Infof("publisher started, sweeping every %s", p.interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.Sweep(sweepCtx); err != nil {
					// The next tick is the retry; nothing else to do here.
					p.logger.Errorf("sweep failed: %v", err)
				}
			}
		}
	}()
}

// Shutdown stops the loop and waits for the current sweep to complete.
func (p *Publisher) Shutdown() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.logger.Info("publisher stopped")
}

// Sweep performs one scan-and-publish pass. A failing item is logged and
// skipped; it stays unpublished and is selected again on the next pass.
func (p *Publisher) Sweep(ctx context.Context) error {
	due, err := p.repo.FindDue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("find due news: %w", err)
	}

	for _, news := range due {
		if err := p.repo.MarkPublished(ctx, news.ID); err != nil {
			p.logger.WithFields(logrus.Fields{
				"id":    news.ID,
				"title": news.Title,
			}).Errorf("publish failed: %v", err)
			continue
		}
		_ = p.cache.Delete(ctx, cache.NewsKey(news.ID.String()))
		p.logger.Infof("%q is published", news.Title)
	}
	return nil
}
