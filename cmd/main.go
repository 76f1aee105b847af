package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"file-manager-client/internal/adapters/apiclient"
	"file-manager-client/internal/adapters/localstorage"
	"file-manager-client/internal/adapters/terminal"
	"file-manager-client/internal/config"
	"file-manager-client/internal/usecases"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	envPath := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	if err := config.LoadEnvFile(*envPath); err != nil {
		logrus.Warnf("Could not load env file: %v", err)
	}
	cfg := config.LoadConfig(*configPath)

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	// вывод листинга идёт в stdout, логи не должны в нём смешиваться.
	logrus.SetOutput(os.Stderr)

	input := bufio.NewReader(os.Stdin)

	credential := cfg.Client.Credential
	if credential == "" && cfg.Client.AskCredential {
		credential, err = terminal.ReadCredential(os.Stdin, input, os.Stdout)
		if err != nil {
			logrus.Fatalf("Failed to read credential: %v", err)
		}
	}

	// Надо убедиться, что папка для скачивания существует до первого get.
	downloads := localstorage.NewLocalStorageService(cfg.Storage.DownloadDir, cfg.Storage.DirPermissions)
	if err := downloads.EnsureBase(); err != nil {
		logrus.Fatalf("Failed to create download directory: %v", err)
	}

	client, err := apiclient.NewClient(cfg, downloads)
	if err != nil {
		logrus.Fatalf("Failed to create API client: %v", err)
	}

	presenter := terminal.NewPresenter(os.Stdout, os.Stderr)
	confirmer := terminal.NewConfirmer(input, os.Stdout)
	view := usecases.NewDirectoryView(client, client, presenter, confirmer, cfg, credential)
	shell := terminal.NewShell(view, downloads, presenter, input, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// шелл блокируется на чтении stdin, поэтому сигнал ждём отдельно.
	done := make(chan error, 1)
	go func() {
		logrus.Debugf("Connected to %s, downloads go to %s", cfg.Client.BaseURL, cfg.Storage.DownloadDir)
		done <- shell.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			logrus.Errorf("Session ended with error: %v", err)
			os.Exit(1)
		}
	case <-quit:
		logrus.Info("Interrupted, cancelling outstanding requests")
		cancel()
	}
}
