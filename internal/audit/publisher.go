package audit

import (
	"context"

	"fundguard/pkg/domain"
	"fundguard/pkg/requestcontext"
)

// Publisher captures structured audit events. It is append-only and fans out
// to every configured sink so tests can swap in an in-memory store while
// production adds the Kafka sink alongside it.
type Publisher struct {
	sinks []Store
}

func NewPublisher(sinks ...Store) *Publisher {
	return &Publisher{sinks: sinks}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = requestcontext.Now(ctx)
	}
	for _, sink := range p.sinks {
		if err := sink.Append(ctx, base); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) List(ctx context.Context, campaignID domain.CampaignID) ([]Event, error) {
	for _, sink := range p.sinks {
		events, err := sink.ListByCampaign(ctx, campaignID)
		if err != nil {
			continue
		}
		return events, nil
	}
	return nil, nil
}
