package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config is the whole environment surface: the four data file paths and the
// log level. Variables are prefixed INVENTORY_, e.g. INVENTORY_PRODUCTS_FILE.
type Config struct {
	ProductsFile       string `envconfig:"PRODUCTS_FILE" default:"products.txt"`
	SuppliersFile      string `envconfig:"SUPPLIERS_FILE" default:"suppliers.txt"`
	OrdersFile         string `envconfig:"ORDERS_FILE" default:"orders.txt"`
	SupplierOrdersFile string `envconfig:"SUPPLIER_ORDERS_FILE" default:"supplier_orders.txt"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded configuration from .env")
	}

	var c Config
	if err := envconfig.Process("inventory", &c); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return &c, nil
}
