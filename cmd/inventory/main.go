package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"inventory/pkg/config"
	"inventory/pkg/domain/service"
	"inventory/pkg/infrastructure/event"
	"inventory/pkg/infrastructure/storage"
)

func main() {
	app := &cli.App{
		Name:   "inventory",
		Usage:  "menu-driven inventory tracker backed by pipe-delimited files",
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("inventory exited with error")
	}
}

func run(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	setupLogger(cfg.LogLevel)

	products, err := storage.NewProductStore(cfg.ProductsFile)
	if err != nil {
		return err
	}
	suppliers, err := storage.NewSupplierStore(cfg.SuppliersFile)
	if err != nil {
		return err
	}
	orders, err := storage.NewOrderStore(cfg.OrdersFile)
	if err != nil {
		return err
	}
	supplierOrders, err := storage.NewSupplierOrderStore(cfg.SupplierOrdersFile)
	if err != nil {
		return err
	}

	inventoryService := service.NewInventoryService(products, suppliers, orders, supplierOrders, event.NewLogDispatcher())
	reports := service.NewReportEngine(products, suppliers, orders, supplierOrders)

	menu := newMenu(os.Stdin, os.Stdout, inventoryService, reports)
	return menu.run()
}

// setupLogger sends structured logs to inventory.log so the interactive
// menu keeps stdout to itself. Falls back to stderr if the file cannot be
// opened.
func setupLogger(level string) {
	log.SetFormatter(&log.JSONFormatter{})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)

	file, err := os.OpenFile("inventory.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err == nil {
		log.SetOutput(file)
	}
}
