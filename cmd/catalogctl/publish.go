package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/messaging"
)

func newPublishCmd(root *rootOptions) *cobra.Command {
	cfg := messaging.RabbitConfig{}
	var deleteId string
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the catalog file, or a single deletion, to running catalog services",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Url == "" {
				return fmt.Errorf("--amqp is required")
			}
			conn, err := messaging.Connect(cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			publisher, err := messaging.NewPublisher(conn, cfg.Prefix)
			if err != nil {
				return err
			}
			if deleteId != "" {
				if err = publisher.SendProductDeleted(deleteId); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "published deletion of %s\n", deleteId)
				return err
			}
			products, err := root.loadProducts()
			if err != nil {
				return err
			}
			if err = publisher.SendProductsUpserted(products); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %d products\n", len(products))
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.Url, "amqp", "", "RabbitMQ url")
	cmd.Flags().StringVar(&cfg.VHost, "vhost", "", "RabbitMQ virtual host")
	cmd.Flags().StringVar(&cfg.Prefix, "prefix", "catalog", "Exchange name prefix")
	cmd.Flags().StringVar(&deleteId, "delete", "", "Publish a deletion of this product id instead")
	return cmd
}
