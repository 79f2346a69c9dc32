package enquiry

import (
	"context"
	"encoding/json"

	pubsub "cloud.google.com/go/pubsub/v2"

	pkgerrors "github.com/diarmuidw/enquiry-backend/pkg/errors"
)

const submittedEventName = "enquiry.submitted"

// PubSubPublisher emits submitted events to a Pub/Sub topic.
type PubSubPublisher struct {
	publisher *pubsub.Publisher
}

func NewPubSubPublisher(publisher *pubsub.Publisher) *PubSubPublisher {
	return &PubSubPublisher{publisher: publisher}
}

// PublishSubmitted marshals the event and waits for the server ack.
func (p *PubSubPublisher) PublishSubmitted(ctx context.Context, event SubmittedEvent) error {
	if p == nil || p.publisher == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "pubsub publisher not configured")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal submitted event")
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"event": submittedEventName},
	})
	if _, err := result.Get(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "publish submitted event")
	}
	return nil
}
