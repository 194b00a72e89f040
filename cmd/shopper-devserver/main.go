package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/five82/shopper/internal/config"
	"github.com/five82/shopper/internal/devserver"
	"github.com/five82/shopper/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "127.0.0.1:8000", "listen address")
	delay := flag.Duration("delay", 2*time.Second, "simulated analysis time for uploads")
	maxUpload := flag.Int64("max-upload", devserver.DefaultMaxUploadSize, "upload size limit in bytes")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	envPath := flag.String("env", "", "load environment from this file (optional, defaults to ./.env)")
	flag.Parse()

	logger := logging.New(os.Stderr, logging.ParseLevel(*level), isatty.IsTerminal(os.Stderr.Fd()))

	if err := config.LoadEnv(*envPath); err != nil {
		fmt.Fprintf(os.Stderr, "shopper-devserver: %v\n", err)
		return 1
	}
	if v := os.Getenv("SHOPPER_DEVSERVER_ADDR"); v != "" && !flagSet("addr") {
		*addr = v
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr: *addr,
		Handler: devserver.New(devserver.Options{
			Logger:        logger,
			MaxUploadSize: *maxUpload,
			Delay:         *delay,
		}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("dev backend listening", "addr", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("dev backend stopped", "error", err)
		return 1
	}
	return 0
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
