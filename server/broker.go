package main

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/lbgsct/cryptobreak/proto/analysispb"
)

const resultsExchange = "cryptobreak.results"

// ResultBroker рассылает готовые результаты всем подписчикам.
type ResultBroker interface {
	Publish(ctx context.Context, res *analysispb.Result) error
	Subscribe(ctx context.Context, consumer string) (<-chan *analysispb.Result, error)
}

// RabbitBroker публикует результаты в fanout exchange RabbitMQ.
type RabbitBroker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // публикация из нескольких обработчиков
}

func NewRabbitBroker(url string) (*RabbitBroker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("не удалось открыть канал RabbitMQ: %w", err)
	}

	err = channel.ExchangeDeclare(
		resultsExchange, // имя exchange
		"fanout",        // тип exchange
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("не удалось объявить exchange: %w", err)
	}

	return &RabbitBroker{conn: conn, channel: channel}, nil
}

func (b *RabbitBroker) Close() error {
	b.channel.Close()
	return b.conn.Close()
}

func (b *RabbitBroker) Publish(ctx context.Context, res *analysispb.Result) error {
	body, err := analysispb.MarshalResult(res)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	err = b.channel.Publish(
		resultsExchange, // имя exchange
		"",              // routing key (не используется в fanout)
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   res.JobID,
			Body:        body,
			Headers: amqp.Table{
				"operation": res.Operation,
				"owner":     res.Owner,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("не удалось опубликовать результат %s: %w", res.JobID, err)
	}
	return nil
}

// Subscribe создаёт временную очередь подписчика. Канал закрывается после отмены ctx.
func (b *RabbitBroker) Subscribe(ctx context.Context, consumer string) (<-chan *analysispb.Result, error) {
	// отдельный канал AMQP на подписку, чтобы Close не задевал публикацию
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть канал RabbitMQ: %w", err)
	}

	q, err := ch.QueueDeclare(
		"results_"+consumer+"_"+uuid.New().String(), // имя очереди
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("не удалось объявить очередь: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", resultsExchange, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("не удалось привязать очередь: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name, // имя очереди
		"",     // consumer tag
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("не удалось подписаться на результаты: %w", err)
	}

	out := make(chan *analysispb.Result)
	go func() {
		defer close(out)
		defer ch.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				res, err := analysispb.UnmarshalResult(msg.Body)
				if err != nil {
					log.Printf("Не удалось разобрать сообщение %s: %v", msg.MessageId, err)
					continue
				}
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
