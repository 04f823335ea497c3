package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/youtNa/doris/meta"
)

const (
	fetchTableMetadataMethod = "fetchTableMetadata"
	transportBufferSize      = 4096
)

// ClientConfig bounds every call made through the client. Retries cover
// transport failures only; an answer from the service, successful or
// not, is never retried.
type ClientConfig struct {
	Addr           string
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	MaxRetries     uint64
}

var _ Client = (*thriftClient)(nil)

type thriftClient struct {
	addr       string
	tcfg       *thrift.TConfiguration
	maxRetries uint64
	logger     *zap.Logger
}

func NewClient(logger *zap.Logger, cfg *ClientConfig) Client {
	return &thriftClient{
		addr: cfg.Addr,
		tcfg: &thrift.TConfiguration{
			ConnectTimeout: cfg.ConnectTimeout,
			SocketTimeout:  cfg.RequestTimeout,
		},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

func (c *thriftClient) FetchTableMetadata(ctx context.Context, request *meta.FetchRequest) (*meta.FetchResult, error) {
	args := &fetchTableMetadataArgs{Request: requestToWire(request)}

	var reply *fetchTableMetadataResult

	call := func() error {
		// A fresh reply per attempt, a failed read may leave it half-filled.
		reply = &fetchTableMetadataResult{}

		if err := c.call(ctx, fetchTableMetadataMethod, args, reply); err != nil {
			c.logger.Warn("frontend call attempt failed",
				zap.String("method", fetchTableMetadataMethod),
				zap.String("addr", c.addr),
				zap.Error(err))

			return err
		}

		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	if err := backoff.Retry(call, policy); err != nil {
		return nil, fmt.Errorf("%s rpc to %s: %w", fetchTableMetadataMethod, c.addr, err)
	}

	if reply.Success == nil {
		return nil, fmt.Errorf("%s reply carries no payload", fetchTableMetadataMethod)
	}

	return resultFromWire(reply.Success), nil
}

// call performs a single request over a dedicated connection. The
// frontend address may resolve differently between attempts, so no
// connection is cached across calls.
func (c *thriftClient) call(ctx context.Context, method string, args, result thrift.TStruct) error {
	sock := thrift.NewTSocketConf(c.addr, c.tcfg)

	if err := sock.Open(); err != nil {
		return fmt.Errorf("open frontend socket: %w", err)
	}

	defer func() {
		if err := sock.Close(); err != nil {
			c.logger.Warn("close frontend socket", zap.Error(err))
		}
	}()

	trans := thrift.NewTBufferedTransport(sock, transportBufferSize)
	proto := thrift.NewTBinaryProtocolConf(trans, c.tcfg)
	client := thrift.NewTStandardClient(proto, proto)

	if _, err := client.Call(ctx, method, args, result); err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}

	return nil
}
