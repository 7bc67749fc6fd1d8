package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/basis-arb/ftxclient/config"
	"github.com/basis-arb/ftxclient/exchanges/ftx"
	"github.com/basis-arb/ftxclient/log"
	"github.com/urfave/cli/v2"
)

var (
	configPath    string
	apiURL        string
	apiKey        string
	apiSecret     string
	apiSubaccount string
	verbose       bool
)

func jsonOutput(in interface{}) {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return
	}
	fmt.Println(string(j))
}

// setupClient loads the config, applies flag overrides and starts logging
func setupClient(c *cli.Context) (*ftx.Ftx, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	if err = log.SetupGlobalLogger(&cfg.Logging); err != nil {
		return nil, nil, err
	}
	client, err := ftx.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if c.IsSet("apiurl") {
		cfg.Exchange.APIURL = apiURL
	}
	if c.IsSet("apikey") {
		cfg.Credentials.Key = apiKey
	}
	if c.IsSet("apisecret") {
		cfg.Credentials.Secret = apiSecret
	}
	if c.IsSet("apisubaccount") {
		cfg.Credentials.Subaccount = apiSubaccount
	}
	if verbose {
		cfg.Exchange.Verbose = true
	}
	return cfg, cfg.Validate()
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ftxcli"
	app.EnableBashCompletion = true
	app.Usage = "command line interface for the FTX REST API and basis arbitrage loop"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to a JSON or YAML config file, FTX_ environment variables override it",
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "apiurl",
			Usage:       "override config API base URL",
			Destination: &apiURL,
		},
		&cli.StringFlag{
			Name:        "apikey",
			Usage:       "override config API key",
			Destination: &apiKey,
		},
		&cli.StringFlag{
			Name:        "apisecret",
			Usage:       "override config API secret",
			Destination: &apiSecret,
		},
		&cli.StringFlag{
			Name:        "apisubaccount",
			Usage:       "override config API sub account",
			Destination: &apiSubaccount,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "logs every request and response",
			Destination: &verbose,
		},
	}
	app.Commands = []*cli.Command{
		getMarketsCommand,
		getTradesCommand,
		getSpreadCommand,
		getFundingCommand,
		getBalanceCommand,
		runArbCommand,
	}
	return app
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
