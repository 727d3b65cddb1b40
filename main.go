package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"auto_blog_publisher/config"
	"auto_blog_publisher/generator"
	"auto_blog_publisher/notify"
	"auto_blog_publisher/publisher"
	"auto_blog_publisher/runner"
	"auto_blog_publisher/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	envFile := flag.String("env", ".env", "path to env file with credentials")
	settingsFile := flag.String("settings", "", "path to settings ini file")
	platform := flag.String("platform", "", "publish platform (overrides BLOG_PLATFORM)")
	topic := flag.String("topic", "", "blog topic; picked from the pool when empty")
	listTopics := flag.Bool("topics", false, "print the topic pool and exit")
	mock := flag.Bool("mock", false, "use the canned generator instead of OpenAI")
	install := flag.Bool("install-browser", false, "download Chromium for medium-browser and exit")
	serve := flag.Bool("serve", false, "start the run API server")
	addr := flag.String("addr", ":8080", "http listen address when --serve")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	if *listTopics {
		for _, t := range runner.Topics() {
			fmt.Println(t)
		}
		return
	}
	if *install {
		if err := publisher.InstallBrowser(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Printf("[cli] chromium installed")
		return
	}

	cfg, err := config.Resolve(config.Options{
		EnvFile:      *envFile,
		SettingsFile: *settingsFile,
		Platform:     *platform,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ropts := runner.Options{
		Config:   cfg,
		Notifier: notify.NewSlack(cfg.SlackWebhookURL, nil),
		Logger:   log.Default(),
		Verbose:  verbose,
	}
	if *mock {
		g, err := generator.New(generator.MockLLM{}, nil, log.Default(), verbose)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		ropts.Generator = g
	}

	// Server mode
	if *serve {
		srv, err := server.New(server.Options{Runner: ropts, Logger: log.Default()})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Printf("Starting run server on %s", *addr)
		if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	r, err := runner.New(ropts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("[cli] starting run platform=%s topic=%q", cfg.Platform, *topic)
	run, err := r.Run(context.Background(), *topic)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("[cli] run %s done state=%s", run.ID, run.State)
	fmt.Println(run.URL)
}
