package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	fetchInitialInterval = 500 * time.Millisecond
	fetchMaxInterval     = 30 * time.Second
)

// messageReader is the part of *kafkaGo.Reader the consume loop uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkaGo.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkaGo.Message) error
}

func fetchBackOff() backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = fetchInitialInterval
	policy.MaxInterval = fetchMaxInterval

	return policy
}

func consume(ctx context.Context, reader messageReader, topic string, handler Handler, policy func() backoff.BackOff) {
	for {
		msg, err := backoff.Retry(ctx, func() (kafkaGo.Message, error) {
			msg, err := reader.FetchMessage(ctx)
			if err != nil && ctx.Err() != nil {
				return msg, backoff.Permanent(err)
			}

			return msg, err //nolint:wrapcheck
		},
			backoff.WithBackOff(policy()),
			backoff.WithNotify(func(err error, wait time.Duration) {
				log.Error().Err(err).Str("topic", topic).Dur("retry_in", wait).Msg("Failed to read message from Kafka.")
			}),
		)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Info().Str("topic", topic).Msg("Consumer context done.")

				return
			}

			log.Error().Err(err).Str("topic", topic).Msg("Giving up on Kafka fetch, starting a new backoff cycle.")

			continue
		}

		log.Info().Str("topic", topic).Str("key", string(msg.Key)).Msg("Received message from Kafka.")

		if err = handler(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Msg("Failed to handle Kafka message.")
		}

		if err = reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to commit Kafka message.")
		}
	}
}
