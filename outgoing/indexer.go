package outgoing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/estransport"
	"github.com/elastic/go-elasticsearch/v7/esutil"
	"go.uber.org/zap"

	"github.com/Moulick/firehose-inventory/resource"
)

const (
	defaultNumWorkers    = 3
	defaultFlushBytes    = 5000000
	defaultFlushInterval = 5 * time.Second
)

var ErrIndexFailed = errors.New("documents failed to index")

// Config of the ElasticSearch output
type Config struct {
	URL string
	// Auth is base64 of username:password, sent as basic auth when set
	Auth  string
	Index string
	// Debug enables the colourful request logger of the client
	Debug         bool
	NumWorkers    int
	FlushBytes    int
	FlushInterval time.Duration
}

// Indexer writes responses to ElasticSearch with the bulk api
type Indexer struct {
	cfg    Config
	client *elasticsearch.Client
	logger *zap.SugaredLogger
}

// NewIndexer creates the client, no request is sent until Index is called
func NewIndexer(cfg Config, logger *zap.SugaredLogger) (*Indexer, error) {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = defaultNumWorkers
	}
	if cfg.FlushBytes <= 0 {
		cfg.FlushBytes = defaultFlushBytes
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}

	// exponential backoff to prevent overloading elasticsearch
	retryBackoff := backoff.NewExponentialBackOff()
	esCfg := elasticsearch.Config{
		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},
		Logger:        &estransport.JSONLogger{Output: os.Stdout},
		Addresses:     []string{cfg.URL},
		RetryOnStatus: []int{502, 503, 504, 429},
	}
	if cfg.Auth != "" {
		esCfg.Header = http.Header{"Authorization": {"Basic " + cfg.Auth}}
	}
	if cfg.Debug {
		esCfg.EnableDebugLogger = true
		esCfg.Logger = &estransport.ColorLogger{Output: os.Stdout}
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("creating es client: %w", err)
	}

	return &Indexer{cfg: cfg, client: es, logger: logger}, nil
}

// Index sends the responses in one bulk and waits for it to be flushed.
// It returns how many documents were indexed, and ErrIndexFailed if any was rejected.
func (i *Indexer) Index(ctx context.Context, responses ...*resource.CloudServiceResponse) (uint64, error) {
	var countSuccessful uint64

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         i.cfg.Index,
		Client:        i.client,
		NumWorkers:    i.cfg.NumWorkers,
		FlushBytes:    i.cfg.FlushBytes,
		FlushInterval: i.cfg.FlushInterval,
		OnError: func(ctx context.Context, err error) {
			i.logger.Errorw("Failed BulkIndex flush", "err", err)
		},
	})
	if err != nil {
		return 0, fmt.Errorf("creating bulk indexer: %w", err)
	}

	now := time.Now()
	for _, resp := range responses {
		doc := NewDocument(resp, now)
		body, err := json.Marshal(doc)
		if err != nil {
			i.logger.Errorw("Failed to marshal document to Json", "err", err)
			_ = bi.Close(ctx)
			return countSuccessful, err
		}

		item := esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ResourceID,
			Body:       bytes.NewReader(body),
			OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
				atomic.AddUint64(&countSuccessful, 1)
			},
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					i.logger.Errorw("Failed BulkIndex", "id", item.DocumentID, "err", err)
				} else {
					i.logger.Errorw("Failed BulkIndex", "id", item.DocumentID, "type", res.Error.Type, "err", res.Error.Reason)
				}
			},
		}

		if err = bi.Add(ctx, item); err != nil {
			i.logger.Errorw("Failed to add to bulk indexer", "err", err)
			_ = bi.Close(ctx)
			return atomic.LoadUint64(&countSuccessful), err
		}
		i.logger.Debugw("added to bulk indexer", "id", doc.ResourceID)
	}

	// closing flushes whatever is still buffered
	if err = bi.Close(ctx); err != nil {
		return atomic.LoadUint64(&countSuccessful), fmt.Errorf("closing bulk indexer: %w", err)
	}

	if failed := bi.Stats().NumFailed; failed > 0 {
		return atomic.LoadUint64(&countSuccessful), fmt.Errorf("%w: %d of %d", ErrIndexFailed, failed, len(responses))
	}

	return atomic.LoadUint64(&countSuccessful), nil
}
