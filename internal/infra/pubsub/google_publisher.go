package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"warden/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePublisher sends identity events to one Pub/Sub topic with per-identity ordering.
type googlePublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePublisher connects to Pub/Sub and checks that the topic exists.
func NewGooglePublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	topic := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "topic %s is not available", topic)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	logger.Info("Publishing identity events to Google Pub/Sub", slog.String("topic", topic))

	return &googlePublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishIdentityEvent publishes and waits for the server to acknowledge.
func (p *googlePublisher) PublishIdentityEvent(ctx context.Context, event *service.IdentityEvent) error {
	env, err := encodeEvent(event)
	if err != nil {
		return err
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        env.data,
		Attributes:  env.attributes,
		OrderingKey: env.orderingKey,
	})
	messageID, err := result.Get(ctx)
	if err != nil {
		// A failed ordered publish pauses its key until resumed.
		p.publisher.ResumePublish(env.orderingKey)

		return errors.Wrap(err, "failed to publish identity event")
	}

	p.logger.Debug("Identity event published",
		slog.String("type", event.Type),
		slog.String("message_id", messageID),
	)

	return nil
}

// Close flushes pending messages and releases the client.
func (p *googlePublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
