// Package pubsub publishes identity events to Google Pub/Sub or, for local
// development, to an HTTP endpoint speaking the Pub/Sub push format.
package pubsub

import (
	"encoding/json"

	"warden/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	attrType       = "type"
	attrIdentityID = "identity_id"
	attrRequestID  = "request_id"
)

// envelope is one encoded event ready for either transport.
type envelope struct {
	data        []byte
	attributes  map[string]string
	orderingKey string
}

// encodeEvent marshals the event and derives the attributes subscribers filter on.
// Events for one identity share an ordering key so registration is delivered before role changes.
func encodeEvent(event *service.IdentityEvent) (*envelope, error) {
	if event == nil {
		return nil, errors.New("identity event is nil")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode identity event")
	}

	attributes := map[string]string{
		attrType:       event.Type,
		attrIdentityID: event.IdentityID,
	}
	if event.RequestID != "" {
		attributes[attrRequestID] = event.RequestID
	}

	return &envelope{
		data:        data,
		attributes:  attributes,
		orderingKey: event.IdentityID,
	}, nil
}
