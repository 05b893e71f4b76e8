package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsradar/pkg/config"
	"github.com/umputun/newsradar/pkg/content"
	"github.com/umputun/newsradar/pkg/feed"
	"github.com/umputun/newsradar/pkg/pipeline"
	"github.com/umputun/newsradar/pkg/scheduler"
	"github.com/umputun/newsradar/pkg/view"
	"github.com/umputun/newsradar/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"newsradar.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Once   bool   `long:"once" description:"run a single ingestion pass and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	log.Printf("[INFO] starting newsradar version %s", revision)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Printf("[ERROR] can't load config: %v", err)
		os.Exit(1)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	runner := makeRunner(cfg)

	if opts.Once {
		// single batch run; only total failure terminates abnormally
		if _, err := runner.Run(ctx); err != nil {
			log.Printf("[ERROR] ingestion run failed: %v", err)
			os.Exit(1)
		}
		log.Print("[INFO] run complete")
		return
	}

	loader := makeLoader(cfg)
	sched := scheduler.New(runner, loader, cfg.UpdateInterval())
	sched.Start(ctx)

	srv := server.New(cfg, loader, sched, cfg.Artifact.Path, revision, opts.Debug)
	err = srv.Run(ctx)
	cancel()
	sched.Stop()

	if err != nil {
		log.Printf("[ERROR] server failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// makeRunner wires the ingestion pipeline from configuration
func makeRunner(cfg *config.Config) *pipeline.Runner {
	feedsCfg := cfg.GetFeedsConfig()
	fetcher := feed.NewFetcher(feed.Config{
		Language:      feedsCfg.Language,
		Region:        feedsCfg.Region,
		PerQueryLimit: feedsCfg.PerQueryLimit,
		Timeout:       feedsCfg.Timeout,
		UserAgent:     feedsCfg.UserAgent,
	})
	normalizer := feed.NewNormalizer(cfg.Summary.MaxChars)

	var extractor pipeline.Extractor
	if extCfg := cfg.GetExtractionConfig(); extCfg.Enabled {
		extractor = content.NewExtractor(extCfg.Timeout, extCfg.UserAgent, extCfg.MinTextLength)
	}

	return pipeline.NewRunner(fetcher, normalizer, extractor,
		feedsCfg.Queries, feedsCfg.MaxItems, cfg.Artifact.Path)
}

// makeLoader creates the view loader over the artifact file
func makeLoader(cfg *config.Config) *view.Loader {
	_, timeout := cfg.GetServerConfig()
	return view.NewLoader(cfg.Artifact.Path, timeout)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
