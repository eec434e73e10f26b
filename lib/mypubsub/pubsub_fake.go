package mypubsub

import (
	"context"
	"log"
)

type fakePubSub struct{}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return &fakePubSub{}, func() {}, nil
}

func (ps *fakePubSub) CreateTopic(c context.Context, topic string) error {
	return nil
}

func (ps *fakePubSub) Publish(c context.Context, topic string, key string, data string) error {
	log.Printf("Fake pubsub: published %s on topic %s", key, topic)
	return nil
}
