package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Depado/ginprom"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/Moulick/firehose-inventory/firehose"
	"github.com/Moulick/firehose-inventory/gzipbinding"
	"github.com/Moulick/firehose-inventory/incoming"
	"github.com/Moulick/firehose-inventory/resource"
)

const requestIDHeader = "X-Request-Id"

var (
	encodingMismatch = errors.New("data encoding mismatch")
	MIMEGZIP         = "application/x-gzip"
)

// indexer is the part of outgoing.Indexer the handlers need
type indexer interface {
	Index(ctx context.Context, responses ...*resource.CloudServiceResponse) (uint64, error)
}

// errorBody is the response sent back on any failure
type errorBody struct {
	RequestID string `json:"requestId"`
	Timestamp int64  `json:"timestamp"`
	Error     string `json:"errorMessage"`
}

// server holds what the handlers share, indexer is nil when no output is configured
type server struct {
	region  string
	account string
	indexer indexer
	logger  *zap.SugaredLogger
}

func (s *server) router(logger *zap.Logger, metrics bool) *gin.Engine {
	r := gin.New()

	// Logs all requests, like a combined access and error log, RFC3339 with UTC time format
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	// Logs all panic to error log with stack
	r.Use(ginzap.RecoveryWithZap(logger, true))

	if metrics {
		p := ginprom.New(ginprom.Engine(r))
		r.Use(p.Instrument())
	}

	// This one basically for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.GET("/metadata", s.metadata)
	r.POST("/collect", s.collect)

	return r
}

// metadata serves the tabs every delivery stream is displayed with
func (s *server) metadata(c *gin.Context) {
	c.JSON(http.StatusOK, firehose.FirehoseMeta)
}

/*
collect is invoked by the collector once per delivery stream.
The body is a normalized DeliveryStreamDescription, as json or gzip(ed) json.
The stream is validated, wrapped with the firehose metadata and returned as a
FirehoseResponse. When an output is configured the response is indexed first,
and the request fails if it could not be.
The region and account query parameters override the configured defaults.
*/
func (s *server) collect(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = "manual"
	}
	zaplog := s.logger.With(requestIDHeader, requestID)

	abort := func(status int, err error) {
		c.AbortWithStatusJSON(status, errorBody{
			RequestID: requestID,
			Timestamp: time.Now().UTC().UnixMilli(),
			Error:     err.Error(),
		})
	}

	contentType, err := dataDetect(c, zaplog)
	if errors.Is(err, encodingMismatch) {
		zaplog.Warnf("treating body as gzip(ed) json")
		contentType = MIMEGZIP
	} else if err != nil {
		abort(http.StatusBadRequest, err)
		return
	}

	var data incoming.DeliveryStreamDescription
	switch contentType {
	case MIMEGZIP:
		err = c.ShouldBindBodyWith(&data, gzipbinding.JSON{})
	default:
		err = c.ShouldBindBodyWith(&data, binding.JSON)
	}
	if err != nil {
		zaplog.Errorw("Error parsing request body", "error", err)
		abort(http.StatusBadRequest, err)
		return
	}

	ds, err := firehose.NewDeliveryStreamResource(data,
		resource.WithRegion(c.DefaultQuery("region", s.region)),
		resource.WithAccount(c.DefaultQuery("account", s.account)),
	)
	if err != nil {
		zaplog.Errorw("Invalid delivery stream", "error", err)
		abort(http.StatusBadRequest, err)
		return
	}
	resp := firehose.NewFirehoseResponse(ds)
	zaplog = zaplog.With("resource_id", ds.ResourceID())

	if s.indexer != nil {
		if _, err := s.indexer.Index(c.Request.Context(), &resp.CloudServiceResponse); err != nil {
			zaplog.Errorw("Failed to index delivery stream", "err", err)
			abort(http.StatusInternalServerError, err)
			return
		}
		zaplog.Debugf("indexed delivery stream")
	}

	zaplog.Infof("Collected delivery stream")
	c.JSON(http.StatusOK, resp)
}

// dataDetect detects the content type and encoding of the request body.
// returns error for unsupported Content-Encoding and Content-Type, or a mismatch in header vs body
// returns nil and the detected content type on success
func dataDetect(c *gin.Context, logger *zap.SugaredLogger) (string, error) {
	contentType := c.ContentType()
	logger.Debugw("Content-Type", "Content-Type", contentType)
	if contentType != "application/json" {
		return contentType, fmt.Errorf("unsupported Content-Type: %s", contentType)
	}

	contentEncodingHeader := c.GetHeader("Content-Encoding")
	logger.Debugw("Content-Encoding", "Content-Encoding", contentEncodingHeader)
	if contentEncodingHeader != "" && contentEncodingHeader != "gzip" {
		return "", fmt.Errorf("unsupported Content-Encoding %s", contentEncodingHeader)
	}

	if c.Request.Body == nil {
		return "", errors.New("empty body")
	}

	// the body is read for detection, restore it for binding
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	realContentEncoding := http.DetectContentType(body)
	switch {
	case realContentEncoding == MIMEGZIP:
		if contentEncodingHeader != "gzip" {
			logger.Warnw("detected data encoding mismatch, incoming Content-Encoding header not set properly", "expected", "gzip", "received", realContentEncoding)
			return "", encodingMismatch
		}
		return MIMEGZIP, nil
	case strings.Contains(realContentEncoding, "text/plain"):
		return "text/plain", nil
	default:
		return "", fmt.Errorf("unsupported data encoding %s", realContentEncoding)
	}
}
