package mypubsub

import (
	"context"
	"os"
	"strings"
)

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	CreateTopic(c context.Context, topic string) error
	Publish(c context.Context, topic string, key string, data string) error
}

// New selects kafka when KAFKA_BROKERS is set, google pubsub on gcloud and a fake otherwise.
func New(c context.Context) (PubSub, func(), error) {
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		return newKafkaPubSub(c, strings.Split(brokers, ","))
	}
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudPubSub(c)
	}
	return newFakePubSub(c)
}
