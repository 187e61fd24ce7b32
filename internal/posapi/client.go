package posapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// Success codes embedded in every response body. The API signals failure
// through result_code even on HTTP 200.
const (
	ResultOK      = "200"
	ResultCreated = "201"
)

// Config holds the connection parameters for the POS API.
type Config struct {
	BaseURL string        `envconfig:"POS_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"POS_API_TIMEOUT" default:"10s"`
}

// Client talks to the remote POS API. All responses go through envelope
// decoding and result_code checking; errors come back classified per the
// taxonomy in errors.go.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a Client for the given endpoint.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Client{
		http:   resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(cfg.Timeout),
		logger: logger,
	}
}

// Close releases the underlying transport.
func (c *Client) Close() {
	c.http.Close()
}

// envelope is the common response wrapper. Which collection field is
// populated depends on the endpoint.
type envelope struct {
	ResultCode string         `json:"result_code"`
	Message    string         `json:"message"`
	SaleID     Number         `json:"sale_id"`
	Products   []Product      `json:"products"`
	Imports    []ImportRecord `json:"imports"`
	Exports    []ExportRecord `json:"exports"`
	Sales      []SaleRecord   `json:"sales"`
}

// LowStockProducts fetches products at or below their minimum quantity from
// the dedicated filtered endpoint.
func (c *Client) LowStockProducts(ctx context.Context) ([]Product, error) {
	env, err := c.get(ctx, "/All/Min/Product")
	if err != nil {
		return nil, err
	}
	return env.Products, nil
}

// AllProducts fetches the unfiltered product collection.
func (c *Client) AllProducts(ctx context.Context) ([]Product, error) {
	env, err := c.get(ctx, "/All/Product")
	if err != nil {
		return nil, err
	}
	return env.Products, nil
}

// AllImports fetches the unfiltered import collection.
func (c *Client) AllImports(ctx context.Context) ([]ImportRecord, error) {
	env, err := c.get(ctx, "/import/All/Import")
	if err != nil {
		return nil, err
	}
	return env.Imports, nil
}

// AllExports fetches the unfiltered export collection.
func (c *Client) AllExports(ctx context.Context) ([]ExportRecord, error) {
	env, err := c.get(ctx, "/export/All/Export")
	if err != nil {
		return nil, err
	}
	return env.Exports, nil
}

// AllSales fetches the sales history.
func (c *Client) AllSales(ctx context.Context) ([]SaleRecord, error) {
	env, err := c.get(ctx, "/sale/All/Sales")
	if err != nil {
		return nil, err
	}
	return env.Sales, nil
}

// InsertSale creates a sale record from a fully-coerced payload.
func (c *Client) InsertSale(ctx context.Context, payload SalePayload) (*SaleAck, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/sale/Insert/Sales")
	if err != nil {
		c.logger.Error("sale insert transport failure", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	env, err := decodeEnvelope(res)
	if err != nil {
		return nil, err
	}
	return &SaleAck{ResultCode: env.ResultCode, Message: env.Message, SaleID: env.SaleID}, nil
}

func (c *Client) get(ctx context.Context, path string) (*envelope, error) {
	res, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		c.logger.Warn("POS API transport failure", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return decodeEnvelope(res)
}

// decodeEnvelope turns a raw response into a validated envelope. HTTP status
// classification wins over body contents; on an HTTP success the embedded
// result_code still has to match.
func decodeEnvelope(res *resty.Response) (*envelope, error) {
	var env envelope
	decodeErr := json.Unmarshal(res.Bytes(), &env)

	switch {
	case res.StatusCode() == http.StatusBadRequest:
		return nil, &ServerError{Kind: KindBadPayload, Status: res.StatusCode(), Message: env.Message}
	case res.StatusCode() >= http.StatusInternalServerError:
		return nil, &ServerError{Kind: KindServerFault, Status: res.StatusCode(), Message: env.Message}
	case decodeErr != nil:
		return nil, &ServerError{Kind: KindUnexpected, Status: res.StatusCode(), Message: "malformed response body"}
	case env.ResultCode != ResultOK && env.ResultCode != ResultCreated:
		msg := env.Message
		if msg == "" {
			msg = "missing or unrecognized result_code"
		}
		return nil, &ServerError{Kind: KindUnexpected, Status: res.StatusCode(), Message: msg}
	}

	return &env, nil
}
