package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yegebere/gebeya-auth/config"
	"github.com/yegebere/gebeya-auth/internal/events"
	"github.com/yegebere/gebeya-auth/pkg/helpers"
)

// event_worker drains the auth-event queue and indexes each event into
// Elasticsearch, where the marketplace analytics dashboards read them.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEventQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch client: %v", err)
	}
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var ev events.AuthEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}
			if ev.At.IsZero() {
				ev.At = time.Now().UTC()
			}

			if err := indexEvent(ctx, es, cfg.ESAuthEventsIndex, &ev); err != nil {
				log.Printf("index failed: %v", err)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("event worker listening on queue=%s", cfg.RabbitMQEventQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

func indexEvent(ctx context.Context, es *elasticsearch.Client, index string, ev *events.AuthEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: uuid.NewString(),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		log.Printf("es index response error: %s", res.Status())
	}
	return nil
}
