package messaging

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

func DefineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := getName(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return nil
}

func getName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

func SendChange[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	bytes, err := jsoncompat.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := getName(prefix, topic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}

// Publisher announces product changes to every listening catalog.
type Publisher struct {
	conn   *amqp.Connection
	prefix string
}

func NewPublisher(conn *amqp.Connection, prefix string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	defer ch.Close()
	for _, topic := range []ChangeTopic{ProductsUpserted, ProductDeleted} {
		if err = DefineTopic(ch, prefix, topic); err != nil {
			return nil, err
		}
	}
	return &Publisher{conn: conn, prefix: prefix}, nil
}

// SendProductsUpserted refuses batches holding a product without id,
// listeners could not upsert them.
func (p *Publisher) SendProductsUpserted(products []types.Product) error {
	if err := validateProducts(products); err != nil {
		return err
	}
	return SendChange(p.conn, p.prefix, ProductsUpserted, products)
}

func (p *Publisher) SendProductDeleted(id types.ProductId) error {
	return SendChange(p.conn, p.prefix, ProductDeleted, ProductDeletion{Id: id})
}
