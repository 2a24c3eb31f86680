package push

import (
	"context"
	"log/slog"
	"time"

	"respush/internal/domain/catalog"
)

// Service drives a run: for each type in catalog order it skips, or drafts and sends,
// then paces before the next type. A failed send never aborts the run.
type Service struct {
	formatter *Formatter
	provider  Provider
	pacer     Pacer
	perType   int
}

// NewService creates a new push service. perType is the maximum sample size per message.
func NewService(formatter *Formatter, provider Provider, pacer Pacer, perType int) *Service {
	return &Service{
		formatter: formatter,
		provider:  provider,
		pacer:     pacer,
		perType:   perType,
	}
}

// Run processes every group of idx. The returned error is non-nil only when ctx is
// cancelled; the summary then covers the types handled so far.
func (s *Service) Run(ctx context.Context, idx *catalog.Index) (*Summary, error) {
	groups := idx.Groups()
	summary := &Summary{}

	slog.Info("push started",
		"types", len(groups),
		"per_type", s.perType,
		"channel", s.provider.Channel(),
	)

	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if len(g.Items) < MinItems {
			slog.Info("type skipped: too few resources",
				"type", g.Type,
				"total", len(g.Items),
				"min", MinItems,
			)
			summary.add(Result{Type: g.Type, Total: len(g.Items), Outcome: OutcomeSkipped})
			continue
		}

		slog.Info("pushing type", "position", i+1, "of", len(groups), "type", g.Type)
		summary.add(s.push(ctx, g))

		if i < len(groups)-1 {
			if err := s.pacer.Wait(ctx); err != nil {
				return summary, err
			}
		}
	}

	slog.Info("push finished",
		"sent", summary.Sent,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}

// push drafts and sends one group.
func (s *Service) push(ctx context.Context, g catalog.Group) Result {
	start := time.Now()
	res := Result{Type: g.Type, Total: len(g.Items)}

	draft, err := s.formatter.Draft(g.Type, g.Items, s.perType)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		slog.Error("drafting message failed", "type", g.Type, "error", err)
		return res
	}
	res.Sampled = len(draft.Sampled)

	slog.Debug("message drafted", "type", g.Type, "content", draft.Content)

	if err := s.provider.Send(ctx, &Message{Type: g.Type, Content: draft.Content}); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		slog.Error("push failed",
			"type", g.Type,
			"channel", s.provider.Channel(),
			"error", err,
			"duration", time.Since(start),
		)
		return res
	}

	res.Outcome = OutcomeSent
	slog.Info("push sent",
		"type", g.Type,
		"total", res.Total,
		"sampled", res.Sampled,
		"duration", time.Since(start),
	)
	return res
}
