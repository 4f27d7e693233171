package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"strings"
	"time"

	"account-transactions/internal/domain"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

const defaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	ServerAddr string
	APIKey     string
	// Timeout bounds a single lookup; zero means 30s
	Timeout time.Duration
}

// Client talks to the account transaction service.
type Client struct {
	conn      *grpc.ClientConn
	authToken string
	timeout   time.Duration
	log       *log.Logger
}

// NewClient connects to opts.ServerAddr. Targets on port 443 use TLS, anything
// else is dialed without transport security. Extra dial options are appended
// after the credentials.
func NewClient(opts Options, logger *log.Logger, dialOpts ...grpc.DialOption) (*Client, error) {
	var creds credentials.TransportCredentials
	if strings.HasSuffix(opts.ServerAddr, ":443") {
		creds = credentials.NewTLS(&tls.Config{})
	} else {
		creds = insecure.NewCredentials()
	}

	dialOpts = append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, dialOpts...)
	conn, err := grpc.NewClient(opts.ServerAddr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gRPC server: %w", err)
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		conn:      conn,
		authToken: opts.APIKey,
		timeout:   timeout,
		log:       logger,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// FetchTransactions returns the transactions of req.AccountNumber with display
// amounts in req.AccountCurrency.
func (c *Client) FetchTransactions(ctx context.Context, req domain.LookupRequest) ([]domain.Transaction, error) {
	requestID := uuid.NewString()
	ctx, cancel := context.WithTimeout(c.withAuth(ctx, requestID), c.timeout)
	defer cancel()

	in, err := encodeLookupRequest(req)
	if err != nil {
		return nil, err
	}

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, getAccountTransactionsMethod, in, out); err != nil {
		c.log.Warn("transaction lookup failed", "request_id", requestID, "err", err)
		return nil, convertError(err)
	}

	txs, err := decodeTransactions(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	c.log.Info("successfully fetched transactions", "request_id", requestID, "count", len(txs))
	return txs, nil
}

// withAuth adds authentication and tracing metadata to the context
func (c *Client) withAuth(ctx context.Context, requestID string) context.Context {
	md := metadata.Pairs(
		authHeader, c.authToken,
		requestIDHeader, requestID,
	)
	return metadata.NewOutgoingContext(ctx, md)
}
