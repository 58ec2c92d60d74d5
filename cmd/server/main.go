package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/jwtpizza/pizza-service/gormstore"
	"github.com/jwtpizza/pizza-service/internal/config"
	"github.com/jwtpizza/pizza-service/internal/logging"
	"github.com/jwtpizza/pizza-service/internal/metrics"
	"github.com/jwtpizza/pizza-service/order"
	"github.com/jwtpizza/pizza-service/server"
	"github.com/jwtpizza/pizza-service/session"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load(os.Getenv("PIZZA_CONFIG"))
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	displayAppname(cfg.App.Name)

	logger := logging.New(cfg.Logging)

	db, err := gormstore.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("gormstore.Open: %w", err)
	}
	if err := gormstore.AutoMigrate(db); err != nil {
		return fmt.Errorf("gormstore.AutoMigrate: %w", err)
	}

	codec, err := session.NewCodec(cfg.JWT.Secret)
	if err != nil {
		return fmt.Errorf("session.NewCodec: %w", err)
	}
	sessions, err := session.NewService(codec, gormstore.NewRevocations(db))
	if err != nil {
		return fmt.Errorf("session.NewService: %w", err)
	}

	factory, err := order.NewHTTPFactory(cfg.Factory.URL, cfg.Factory.APIKey, order.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("order.NewHTTPFactory: %w", err)
	}

	options := []server.Option{server.WithLogger(logger)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector()
		options = append(options, server.WithMetrics(collector))
		go metrics.NewReporter(collector, cfg.Metrics, logger).Run(ctx)
	}

	handler, err := server.New(cfg, server.Repos{
		Users:      gormstore.NewUsers(db),
		Franchises: gormstore.NewFranchises(db),
		Orders:     gormstore.NewOrders(db),
	}, sessions, factory, options...)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler: handler,
	}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
