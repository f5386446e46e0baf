// Package queue is the ingestion queue between the API server and the
// background workers. Messages are JSON documents published to a topic.
package queue

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
)

// FileMessage asks the workers to process a freshly uploaded file.
type FileMessage struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

// UserMessage announces a newly registered user.
type UserMessage struct {
	UserID string `json:"userId"`
}

// Producer enqueues payloads. Implementations encode payload as JSON.
type Producer interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Queue couples a watermill publisher with the subscriber that reads the
// same topics.
type Queue struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	closers    []io.Closer
}

var _ Producer = (*Queue)(nil)

// NewMemoryQueue returns an in-process queue. Delivery is at most once and
// only reaches subscribers running in the same process.
func NewMemoryQueue(logger logging.Logger) *Queue {
	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logging.NewWatermillAdapter(logger))
	return &Queue{publisher: pubSub, subscriber: pubSub, closers: []io.Closer{pubSub}}
}

// NewSQLQueue returns a queue stored in PostgreSQL tables. Delivery is at
// least once and survives restarts. consumerGroup names the offset cursor
// shared by the workers.
func NewSQLQueue(db *stdsql.DB, consumerGroup string, logger logging.Logger) (*Queue, error) {
	adapter := logging.NewWatermillAdapter(logger)
	var beginner sql.Beginner = db

	publisher, err := sql.NewPublisher(beginner, sql.PublisherConfig{
		SchemaAdapter:        sql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: true,
	}, adapter)
	if err != nil {
		return nil, fmt.Errorf("sql publisher: %w", err)
	}

	subscriber, err := sql.NewSubscriber(beginner, sql.SubscriberConfig{
		ConsumerGroup:    consumerGroup,
		SchemaAdapter:    sql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   sql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
	}, adapter)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("sql subscriber: %w", err)
	}

	return &Queue{
		publisher:  publisher,
		subscriber: subscriber,
		closers:    []io.Closer{publisher, subscriber},
	}, nil
}

func (q *Queue) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)

	if err := q.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscriber exposes the consuming side for message routers.
func (q *Queue) Subscriber() message.Subscriber {
	return q.subscriber
}

func (q *Queue) Close() error {
	var err error
	for _, c := range q.closers {
		err = errors.Join(err, c.Close())
	}
	return err
}

// Decode unmarshals a message payload into dst.
func Decode(msg *message.Message, dst any) error {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return fmt.Errorf("decode message %s: %w", msg.UUID, err)
	}
	return nil
}
