package push

import "respush/internal/domain/catalog"

// Channel represents a notification delivery channel.
type Channel string

const (
	ChannelWeCom Channel = "wecom"
)

// MinItems is the smallest group that is pushed; smaller groups are skipped.
const MinItems = 5

// Draft is one rendered message for a resource type.
type Draft struct {
	Type    string
	Total   int
	Sampled []catalog.Item
	Content string
}

// Message is the internal rendered message ready for delivery.
type Message struct {
	Type    string
	Content string
}

// Outcome is the terminal state of one resource type within a run.
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
)

// Result records what happened to one resource type.
type Result struct {
	Type    string
	Total   int
	Sampled int
	Outcome Outcome
	Err     error
}

// Summary aggregates the per-type results of a run.
type Summary struct {
	Results []Result
	Sent    int
	Skipped int
	Failed  int
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeSent:
		s.Sent++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}
