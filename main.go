package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jnovack/flag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Moulick/firehose-inventory/log"
	"github.com/Moulick/firehose-inventory/outgoing"
)

const shutdownTimeout = 30 * time.Second

func main() {
	fmt.Println("Starting firehose-inventory")
	// kill (no param) default send syscall.SIGTERM, kill -2 is syscall.SIGINT
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		elasticURL  string
		elasticAuth string
		outputIndex string
		port        string
		region      string
		account     string
	)

	flag.StringVar(&port, "port", "8080", "port to listen on")
	flag.StringVar(&elasticURL, "elastic_url", "", "URL of the ElasticSearch Cluster with schema and optional Port, collected streams are only returned when empty")
	flag.StringVar(&elasticAuth, "elastic_auth", "", "base64 encoded username:password for ElasticSearch basic auth")
	flag.StringVar(&outputIndex, "output_index", "cloud-inventory", "output_index name to create documents, output_index will be created if does not exist")
	flag.StringVar(&region, "region", "", "region reported for collected streams unless the request sets one")
	flag.StringVar(&account, "account", "", "account reported for collected streams unless the request sets one")
	opts := log.Options{}
	opts.BindFlags(flag.CommandLine)

	flag.Parse()

	logger, zapConfig, err := log.New(opts)
	if err != nil {
		panic(fmt.Sprintf("invalid log options: %v", err))
	}
	defer func(logger *zap.Logger) {
		// if cannot sync logger, probably nothing can be done anyway
		_ = logger.Sync()
	}(logger)

	suggar := logger.Sugar()
	suggar.Infof("Log Level is %s", zapConfig.Level.String())

	srv := &server{
		region:  region,
		account: account,
		logger:  suggar,
	}

	if elasticURL != "" {
		suggar.Infow("ElasticSearch URL is ", "URL", elasticURL)
		suggar.Infow("ElasticSearch Output Index", "index", outputIndex)
		idx, err := outgoing.NewIndexer(outgoing.Config{
			URL:   elasticURL,
			Auth:  elasticAuth,
			Index: outputIndex,
			// more colourful logs when in debug mode
			Debug: zapConfig.Level.Level() == zapcore.DebugLevel,
		}, suggar)
		if err != nil {
			suggar.Fatalw("Failed creating es client", "err", err)
		}
		srv.indexer = idx
	} else {
		suggar.Infof("No ElasticSearch URL set, collected streams are only returned")
	}

	if !opts.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	httpSrv := &http.Server{
		Addr:    ":" + port,
		Handler: srv.router(logger, true),
	}
	// Initializing the server in a goroutine so that
	// it won't block the graceful shutdown handling below
	go func() {
		suggar.Infof("Listening and serving HTTP on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			suggar.Fatalw("Gin startup Failed", "err", err)
		}
	}()

	// Listen for the interrupt signal.
	<-ctx.Done()
	// Restore default behavior on the interrupt signal and notify user of shutdown.
	stop()
	suggar.Infof("shutting down gracefully, waiting %s, press Ctrl+C again to force", shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		suggar.Fatal("Server forced to shutdown: ", err)
	}

	suggar.Info("Server exiting")
}
