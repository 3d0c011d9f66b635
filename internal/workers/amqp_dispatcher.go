package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"

	"github.com/streadway/amqp"
)

// AMQPDispatcher публикует письма в durable-очередь RabbitMQ; отправляет их cmd/mailworker
type AMQPDispatcher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	mu    sync.Mutex
}

func NewAMQPDispatcher(url, queue string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPDispatcher{conn: conn, ch: ch, queue: queue}, nil
}

func declareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable (survives broker restarts)
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return nil
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, msg EmailMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		logger.CtxSideEffect(ctx, "email_publish", err, "template", msg.Template)
		return
	}

	d.mu.Lock()
	err = d.ch.Publish(
		"",      // default exchange
		d.queue, // routing key = имя очереди
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	d.mu.Unlock()

	if err != nil {
		logger.CtxSideEffect(ctx, "email_publish", err, "template", msg.Template)
	}
}

func (d *AMQPDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ch.Close(); err != nil {
		return err
	}
	return d.conn.Close()
}

// AMQPConsumer читает письма из очереди и отправляет их через Provider
type AMQPConsumer struct {
	url      string
	queue    string
	provider email.Provider
}

func NewAMQPConsumer(url, queue string, provider email.Provider) *AMQPConsumer {
	return &AMQPConsumer{url: url, queue: queue, provider: provider}
}

// Run запускает numWorkers consumer'ов и блокируется до отмены ctx или ошибки соединения
func (c *AMQPConsumer) Run(ctx context.Context, numWorkers int) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}
	if err := ch.Qos(numWorkers, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := ch.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq messages: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(id int) {
			defer wg.Done()
			logger.Info("mail worker started", "worker_id", id)
			for {
				select {
				case <-ctx.Done():
					return
				case delivery, ok := <-msgs:
					if !ok {
						return
					}
					c.handle(delivery)
				}
			}
		}(i + 1)
	}
	wg.Wait()
	return nil
}

func (c *AMQPConsumer) handle(delivery amqp.Delivery) {
	msg, err := DecodeEmailMessage(delivery.Body)
	if err != nil {
		// битое сообщение повторно не обрабатываем
		logger.WorkerLog("mail_consumer", "decode", err)
		_ = delivery.Nack(false, false)
		return
	}

	err = send(c.provider, msg)
	logger.WorkerLog("mail_consumer", "send_"+msg.Template, err)
	if err != nil {
		_ = delivery.Nack(false, false)
		return
	}
	_ = delivery.Ack(false)
}

// DecodeEmailMessage разбирает тело сообщения из очереди
func DecodeEmailMessage(body []byte) (EmailMessage, error) {
	var msg EmailMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return EmailMessage{}, fmt.Errorf("error unmarshalling message body: %w", err)
	}
	if msg.Template == "" {
		return EmailMessage{}, fmt.Errorf("message has no template")
	}
	return msg, nil
}
