package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Notifier is what the worker calls for each captured lead. Satisfied by the
// mail sender.
type Notifier interface {
	NotifyLeadCreated(payload LeadCreatedPayload) error
}

// Worker drains the notification queue and forwards each new lead to the
// notifier. It owns no database access.
type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
	Logger   *zap.Logger
}

func NewWorker(ch *amqp.Channel, notifier Notifier, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Notifier: notifier, Logger: logger}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		w.Logger.Fatal("failed to register RabbitMQ consumer", zap.Error(err))
	}

	w.Logger.Info("notification worker waiting", zap.String("queue", queueName))

	for d := range msgs {
		var payload LeadCreatedPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.Logger.Error("malformed lead.created message", zap.Error(err))
			// Malformed message: reject without requeue so it lands in the DLQ.
			d.Nack(false, false)
			continue
		}

		if err := w.Notifier.NotifyLeadCreated(payload); err != nil {
			w.Logger.Error("lead notification failed",
				zap.String("lead_id", payload.LeadID), zap.Error(err))
			d.Nack(false, false)
			continue
		}

		w.Logger.Info("lead notification sent", zap.String("lead_id", payload.LeadID))
		d.Ack(false)
	}
}
