package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/dependency"
	"chatbot-svc/src/internal/logger"
	"chatbot-svc/src/internal/migration"
	"chatbot-svc/src/internal/server"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.StandardLogger()

var configPath string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithError(err).Fatal("Command failed")
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "chatbot-svc",
		Short:         "API for managing users and chatbot sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the yml config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Create tables if missing and start the HTTP server",
		RunE:  runServe,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create tables and indexes, then exit",
		RunE:  runMigrate,
	})

	return root
}

func setup() (*config.Configuration, *dependency.Connections, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg)

	conns, err := dependency.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, conns, nil
}

func closeConnections(conns *dependency.Connections) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conns.Close(ctx); err != nil {
		log.WithError(err).Error("Failed to close connections")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, conns, err := setup()
	if err != nil {
		return err
	}
	defer closeConnections(conns)

	log.Infof("Application %s is starting....", cfg.App.Name)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migration.Run(ctx, conns, cfg); err != nil {
		return err
	}

	return server.New(cfg, conns).Start(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, conns, err := setup()
	if err != nil {
		return err
	}
	defer closeConnections(conns)

	return migration.Run(cmd.Context(), conns, cfg)
}
