package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/actiongate/internal/clock"
	"github.com/viant/actiongate/model/action"
)

// TimeoutActor is the identity recorded when a pending action expires.
const TimeoutActor = "system:timeout"

// ExpireStale rejects pending actions whose tier rule's approval window has
// elapsed as of now. The gate itself runs no background clock - hosting
// schedulers call this (or StartExpiryScanner) to enforce TimeoutHours.
func ExpireStale(ctx context.Context, svc Service, now time.Time) ([]*action.ProposedAction, error) {
	pending, err := svc.Pending(ctx)
	if err != nil {
		return nil, err
	}
	var expired []*action.ProposedAction
	for _, anAction := range pending {
		rule := svc.Rule(anAction.EffectiveLevel())
		if rule == nil || rule.TimeoutHours <= 0 {
			continue
		}
		deadline := anAction.CreatedAt.Add(time.Duration(rule.TimeoutHours) * time.Hour)
		if now.Before(deadline) {
			continue
		}
		rejected, err := svc.Reject(ctx, []string{anAction.ID}, TimeoutActor,
			fmt.Sprintf("approval window of %dh elapsed", rule.TimeoutHours))
		if err != nil {
			return expired, err
		}
		expired = append(expired, rejected...)
	}
	return expired, nil
}

// StartExpiryScanner polls the gate and expires stale pending actions at the
// supplied interval. It returns stop() - call it (or cancel ctx) to exit.
func StartExpiryScanner(ctx context.Context, svc Service, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = time.Minute
	}
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				_, _ = ExpireStale(ctx, svc, clock.Now())
			}
		}
	}()
	return func() { close(done) }
}
