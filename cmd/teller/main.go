package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/tellerbank/teller"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfp := flag.String("config", "config.yml", "path to configuration file")
	flag.Parse()

	var cfg teller.Config
	cfg.Accounts.File = "current_accounts.txt"
	cfg.Session.LogDir = "."
	if cfgfl, err := os.Open(*cfp); err != nil {
		logger.Warn().Str("path", *cfp).Msg("config file not readable, using defaults")
	} else {
		if err = yaml.NewDecoder(cfgfl).Decode(&cfg); err != nil {
			logger.Fatal().Err(err).Msg("error decoding config file")
		}
		cfgfl.Close()
	}

	sess := teller.NewSession()
	prompter := teller.NewReaderPrompter(os.Stdin, os.Stdout)
	svc, err := teller.NewService(sess, prompter, teller.ServiceOpts{
		AccountsFile: cfg.Accounts.File,
		LogDir:       cfg.Session.LogDir,
		PDFStatement: cfg.Session.PDFStatement,
		Out:          os.Stdout,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("error starting transaction engine")
	}

	var chained teller.Service = svc
	for _, mw := range []teller.Middleware{
		teller.NewAuthMiddleware(sess),
		teller.NewGateMiddleware(),
	} {
		chained = mw(chained)
	}
	router := teller.NewRouter(chained)

	fmt.Println("Welcome to the Banking System")
	fmt.Println(strings.Repeat("-", 40))

	for {
		line, err := prompter.Prompt("Enter transaction")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("\nEnd of input stream")
				return
			}
			logger.Fatal().Err(err).Msg("error reading input")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := router.Exec(line); err != nil {
			fmt.Printf("ERROR: %s\n", err)
		}
	}
}
