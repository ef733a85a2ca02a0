package storage

import (
	"compress/gzip"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

const ProductsFile = "products.json"

// LoadProducts reads a product file and passes the result to the handlers.
// The format follows the extension: .json, .json.gz/.jz or .yaml/.yml.
// Products without an id get one derived from their category and name.
func (d *DiskStorage) LoadProducts(name string, handlers ...types.ProductHandler) ([]types.Product, error) {
	fileName, _ := d.GetFileName(name)
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "open products file %s", fileName)
	}
	defer file.Close()

	products, err := decodeProducts(file, formatFromName(name))
	if err != nil {
		return nil, errors.Wrapf(err, "decode products file %s", fileName)
	}
	assignMissingIds(products)
	log.Info().Int("products", len(products)).Str("file", fileName).Msg("loaded products")

	for _, handler := range handlers {
		handler.HandleProducts(products)
	}
	return products, nil
}

func decodeProducts(r io.Reader, f format) ([]types.Product, error) {
	products := make([]types.Product, 0)
	switch f {
	case formatYaml:
		if err := yaml.NewDecoder(r).Decode(&products); err != nil && err != io.EOF {
			return nil, err
		}
	case formatGzippedJson:
		zipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zipReader.Close()
		if err = jsoncompat.NewDecoder(zipReader).Decode(&products); err != nil {
			return nil, err
		}
	default:
		if err := jsoncompat.NewDecoder(r).Decode(&products); err != nil {
			return nil, err
		}
	}
	return products, nil
}

var productIdSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matst80/slask-catalog/products"))

// assignMissingIds derives ids from category, name and the occurrence of that
// pair in the file, so loading the same file twice yields the same ids.
func assignMissingIds(products []types.Product) {
	seen := make(map[string]int)
	for i := range products {
		if products[i].Id != "" {
			continue
		}
		key := products[i].Category + "\x00" + products[i].Name
		n := seen[key]
		seen[key] = n + 1
		products[i].Id = uuid.NewSHA1(productIdSpace, []byte(key+"\x00"+strconv.Itoa(n))).String()
		log.Debug().Str("name", products[i].Name).Str("id", products[i].Id).Msg("assigned product id")
	}
}

// SaveProducts writes to a temporary file first and renames it into place.
func (d *DiskStorage) SaveProducts(name string, products []types.Product) error {
	fileName, tmpFileName := d.GetFileName(name)
	file, err := os.Create(tmpFileName)
	if err != nil {
		return errors.Wrapf(err, "create %s", tmpFileName)
	}
	if err = encodeProducts(file, formatFromName(name), products); err != nil {
		file.Close()
		os.Remove(tmpFileName)
		return errors.Wrapf(err, "encode products to %s", tmpFileName)
	}
	if err = file.Close(); err != nil {
		os.Remove(tmpFileName)
		return errors.Wrap(err, "close products file")
	}
	if err = os.Rename(tmpFileName, fileName); err != nil {
		return errors.Wrapf(err, "rename %s", tmpFileName)
	}
	log.Info().Int("products", len(products)).Str("file", fileName).Msg("saved products")
	return nil
}

func encodeProducts(w io.Writer, f format, products []types.Product) error {
	if products == nil {
		products = []types.Product{}
	}
	switch f {
	case formatYaml:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(products); err != nil {
			return err
		}
		return enc.Close()
	case formatGzippedJson:
		zipWriter := gzip.NewWriter(w)
		if err := jsoncompat.NewEncoder(zipWriter).Encode(products); err != nil {
			zipWriter.Close()
			return err
		}
		return zipWriter.Close()
	default:
		return jsoncompat.NewEncoder(w).Encode(products)
	}
}
