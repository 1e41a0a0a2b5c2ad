package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lokanhome/lokan-go/config"
	"github.com/lokanhome/lokan-go/logger"
	"github.com/lokanhome/lokan-go/observability"
	"github.com/lokanhome/lokan-go/scene"
	"github.com/lokanhome/lokan-go/version"
)

const appName = "scenectl"

// app holds the state shared by the subcommands of one invocation.
type app struct {
	cfgFile   string
	baseURL   string
	timeoutMs int64
	verbose   bool

	out    io.Writer
	errOut io.Writer

	cfg      *config.SDKConfig
	log      *logger.Logger
	client   *scene.Client
	shutdown observability.ShutdownFunc
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Client for the Lokan scene service",
		Long: `scenectl queries and drives a Lokan scene service over mutual TLS.

Configuration is read from LOKAN_SDK_* environment variables:
  LOKAN_SDK_BASE_URL     service base URL (default ` + config.DefaultBaseURL + `)
  LOKAN_SDK_CLIENT_CERT  client certificate
  LOKAN_SDK_CLIENT_KEY   client private key
  LOKAN_SDK_CA_CERT      CA bundle
  LOKAN_SDK_TIMEOUT_MS   request timeout in milliseconds`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./config.yml or ~/.lokan/scenectl.yml)")
	flags.StringVar(&a.baseURL, "base-url", "", "scene service base URL")
	flags.Int64Var(&a.timeoutMs, "timeout-ms", 0, "request timeout in milliseconds")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newHealthCmd(a), newApplyCmd(a), newVersionCmd(a))
	return root
}

// setup loads the configuration and creates the logger and client.
func (a *app) setup(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if a.cfgFile != "" {
		opts = append(opts, config.WithConfigFile(a.cfgFile))
	}
	cfg, err := config.LoadSDKConfig(opts...)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if cmd.Flags().Changed("timeout-ms") {
		cfg.TimeoutMs = a.timeoutMs
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	a.cfg = cfg

	a.log = logger.NewWithWriter(&cfg.Logging, cfg.Logging.ServiceName, a.errOut)
	logger.SetGlobalLogger(a.log)
	logger.RegisterDefaults(logger.ComponentCLI)

	if err := cfg.RequireTLS(); err != nil {
		fmt.Fprintln(a.errOut, "Missing TLS configuration. Set LOKAN_SDK_CLIENT_CERT, LOKAN_SDK_CLIENT_KEY, and LOKAN_SDK_CA_CERT")
		return err
	}

	shutdown, err := observability.Setup(cmd.Context(), appName, version.Version, cfg.OTel)
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	client, err := scene.New(cfg.SceneConfig(), scene.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.client = client
	return nil
}

// cleanup releases the client and flushes telemetry.
func (a *app) cleanup(ctx context.Context) {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.shutdown != nil {
		if err := a.shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Get(logger.ComponentCLI).Warn("telemetry shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
	}
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	a := &app{out: out, errOut: errOut}
	root := newRootCmd(a)
	root.SetArgs(args)

	cmd, err := root.ExecuteContextC(ctx)
	a.cleanup(ctx)
	if err == nil {
		return 0
	}

	log := a.log
	if log == nil {
		log = logger.NewWithWriter(&logger.Config{Level: "info", Format: logger.FormatConsole}, appName, errOut)
	}
	op := appName
	if cmd != nil {
		op = cmd.Name()
	}
	fields := logger.ErrorFields(op, err)
	var sceneErr *scene.Error
	if errors.As(err, &sceneErr) {
		fields[logger.FieldCode] = sceneErr.Code.String()
		if sceneErr.StatusCode > 0 {
			fields[logger.FieldStatusCode] = sceneErr.StatusCode
		}
	}
	log.Error("command failed", fields)
	return 1
}
