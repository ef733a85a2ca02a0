package main

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/types"
)

type rootOptions struct {
	file    string
	output  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse a product catalog file from the terminal",
		Long:          `Filter, sort and summarize the products in a JSON, gzipped JSON or YAML catalog file.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = log.Logger.Level(level)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "data/products.json", "Catalog file (.json, .json.gz, .yaml)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newCategoriesCmd(opts))
	cmd.AddCommand(newPriceRangeCmd(opts))
	cmd.AddCommand(newPublishCmd(opts))
	return cmd
}

func (o *rootOptions) loadProducts() ([]types.Product, error) {
	ds := storage.NewDiskStorage(filepath.Dir(o.file))
	return ds.LoadProducts(filepath.Base(o.file))
}
