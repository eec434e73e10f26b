package mypubsub

import (
	"context"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(c context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPubSub struct {
	writer messageWriter
}

func newKafkaPubSub(c context.Context, brokers []string) (PubSub, func(), error) {
	if len(brokers) == 0 {
		return nil, func() {}, fmt.Errorf("no kafka brokers configured")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
	}
	return newKafkaPubSubWithWriter(writer), func() {
		err := writer.Close()
		if err != nil {
			log.Printf("error closing kafka writer: %s", err)
		}
	}, nil
}

func newKafkaPubSubWithWriter(writer messageWriter) *kafkaPubSub {
	return &kafkaPubSub{
		writer: writer,
	}
}

// CreateTopic relies on broker side auto-creation on first write.
func (ps *kafkaPubSub) CreateTopic(c context.Context, topicName string) error {
	return nil
}

func (ps *kafkaPubSub) Publish(c context.Context, topicName string, key string, data string) error {
	// Hash balancer keeps all events of one aggregate on the same partition
	err := ps.writer.WriteMessages(c, kafka.Message{
		Topic: topicName,
		Key:   []byte(key),
		Value: []byte(data),
	})
	if err != nil {
		return fmt.Errorf("error publishing event %s on kafka topic %s: %w", key, topicName, err)
	}
	return nil
}
