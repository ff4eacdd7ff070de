package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/softloom/storefront/lib/mypubsub"
	"github.com/softloom/storefront/lib/mytime"
	"github.com/softloom/storefront/lib/myuuid"
)

type directPublisher struct {
	pubsub mypubsub.PubSub
	nower  mytime.Nower
	uuider myuuid.UUIDer
}

// New returns a publisher that pushes each event straight onto its topic.
// Callers treat publication as fire-and-forget: a returned error must be
// logged, never turned into a failed request.
func New(c context.Context, pubsub mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer) *directPublisher {
	return &directPublisher{
		pubsub: pubsub,
		nower:  nower,
		uuider: uuider,
	}
}

func (p *directPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

func (p *directPublisher) Publish(c context.Context, topic string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error serializing event %s: %s", event.GetEventTypeName(), err)
	}

	envelope := EventEnvelope{
		UID:           p.uuider.Create(),
		CreatedAt:     p.nower.Now(),
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}

	jsonBytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error serializing envelope %s: %s", envelope.String(), err)
	}

	err = p.pubsub.Publish(c, topic, string(jsonBytes))
	if err != nil {
		return fmt.Errorf("error publishing %s: %s", envelope.String(), err)
	}

	return nil
}
