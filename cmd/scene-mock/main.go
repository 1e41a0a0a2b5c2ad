// Command scene-mock serves a mock Lokan scene service over mutual TLS.
//
// Configuration comes from LOKAN_BIND, LOKAN_SERVER_CERT, LOKAN_SERVER_KEY,
// LOKAN_CA_CERT and LOKAN_MOCK_PREFIX, or a YAML file passed with -config.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lokanhome/lokan-go/config"
	"github.com/lokanhome/lokan-go/logger"
	"github.com/lokanhome/lokan-go/mockscene"
	"github.com/lokanhome/lokan-go/version"
)

func main() {
	configFile := flag.String("config", "", "config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.LoadMockConfig(opts...)
	if err != nil {
		logger.Error("invalid configuration", logger.ErrorFields("load config", err))
		os.Exit(1)
	}

	logger.Init(cfg.Logging)
	logger.RegisterDefaults(logger.ComponentMock)
	log := logger.Get(logger.ComponentMock)
	log.Info("starting mock scene service", logger.Fields(
		"bind", cfg.Bind,
		"prefix", cfg.Prefix,
		"version", version.Get().Short(),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mockscene.Run(ctx, cfg, logger.GetGlobalLogger()); err != nil {
		log.Error("mock scene service failed", logger.ErrorFields("serve", err))
		stop()
		os.Exit(1)
	}
}
