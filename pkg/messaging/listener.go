package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

func Connect(cfg RabbitConfig) (*amqp.Connection, error) {
	return amqp.DialConfig(cfg.Url, amqp.Config{
		Vhost:      cfg.VHost,
		Properties: amqp.NewConnectionProperties(),
	})
}

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic consumes a topic in the background. Deliveries the handler
// fails on are rejected without requeue so a bad message cannot loop.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, fn func(body []byte) error) error {
	msgs, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		for d := range msgs {
			if err := fn(d.Body); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
		log.Printf("Stopped listening to %s", topic)
	}(msgs)
	return nil
}

func upsertHandler(handler types.ProductHandler) func([]byte) error {
	return func(body []byte) error {
		var products []types.Product
		if err := jsoncompat.Unmarshal(body, &products); err != nil {
			return err
		}
		if err := validateProducts(products); err != nil {
			return err
		}
		handler.HandleProducts(products)
		return nil
	}
}

func deleteHandler(handler types.ProductHandler) func([]byte) error {
	return func(body []byte) error {
		var deletion ProductDeletion
		if err := jsoncompat.Unmarshal(body, &deletion); err != nil {
			return err
		}
		if !handler.DeleteProduct(deletion.Id) {
			log.Debug().Str("id", deletion.Id).Msg("deleted product was not in catalog")
		}
		return nil
	}
}

// ListenForProductChanges keeps handler in sync with the product topics.
func ListenForProductChanges(conn *amqp.Connection, prefix string, handler types.ProductHandler) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	for _, topic := range []ChangeTopic{ProductsUpserted, ProductDeleted} {
		if err = DefineTopic(ch, prefix, topic); err != nil {
			ch.Close()
			return err
		}
	}
	if err = ListenToTopic(ch, prefix, ProductsUpserted, upsertHandler(handler)); err != nil {
		ch.Close()
		return err
	}
	if err = ListenToTopic(ch, prefix, ProductDeleted, deleteHandler(handler)); err != nil {
		ch.Close()
		return err
	}
	log.Info().Str("exchange", getName(prefix, "*")).Msg("listening for product changes")
	return nil
}
