package mqtt

import (
	"context"
	"errors"
	"time"

	"github.com/inakineitor/algo-comp-2023/core/matching"
)

// ErrPublishFailed is returned when a result could not be delivered after
// every retry.
var ErrPublishFailed = errors.New("publish failed")

// ResultPublisher announces matching results to an external broker.
type ResultPublisher interface {
	PublishResult(ctx context.Context, msg ResultMessage) error
}

// PairMessage is one couple of a published result.
type PairMessage struct {
	Proposer     int     `json:"proposer"`
	Receiver     int     `json:"receiver"`
	ProposerName string  `json:"proposer_name,omitempty"`
	ReceiverName string  `json:"receiver_name,omitempty"`
	Score        float64 `json:"score"`
}

// ResultMessage is the payload published for each run.
type ResultMessage struct {
	RunID     string        `json:"run_id"`
	Status    string        `json:"status"`
	Pairs     []PairMessage `json:"pairs"`
	Unmatched []int         `json:"unmatched"`
	Timestamp int64         `json:"timestamp"`
}

// NewResultMessage converts res, resolving participant names when names is
// indexed by participant id.
func NewResultMessage(res matching.Result, names []string, ts time.Time) ResultMessage {
	name := func(id int) string {
		if id >= 0 && id < len(names) {
			return names[id]
		}
		return ""
	}
	msg := ResultMessage{
		RunID:     res.RunID,
		Status:    res.Status.String(),
		Pairs:     make([]PairMessage, 0, len(res.Pairs)),
		Unmatched: res.Unmatched,
		Timestamp: ts.UnixMilli(),
	}
	for _, p := range res.Pairs {
		msg.Pairs = append(msg.Pairs, PairMessage{
			Proposer:     p.Proposer,
			Receiver:     p.Receiver,
			ProposerName: name(p.Proposer),
			ReceiverName: name(p.Receiver),
			Score:        p.Score,
		})
	}
	return msg
}
