package submission

import (
	"context"
	"fmt"
	"net/url"
	"time"

	bookingformerrors "assetbook/internal/bookingform/errors"
	"assetbook/pkg/client"
	"assetbook/pkg/logger"
)

const HeaderRequestID = "X-Request-ID"

type Submitter interface {
	Submit(ctx context.Context, values url.Values, requestID string) error
}

type Client struct {
	http   *client.HttpClient
	logger *logger.Logger
}

// NewClient posts to endpoint, a full URL.
func NewClient(endpoint string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		http:   client.NewHttpClient(endpoint, timeout),
		logger: log,
	}
}

// Submit posts values. A non-2xx answer is reported as ErrSubmitRejected with
// the status and an excerpt of the body.
func (c *Client) Submit(ctx context.Context, values url.Values, requestID string) error {
	headers := map[string]string{}
	if requestID != "" {
		headers[HeaderRequestID] = requestID
	}

	start := time.Now()
	resp, err := c.http.PostForm(ctx, "", values, headers)
	if err != nil {
		c.logger.Error("Submit endpoint unreachable",
			"intent", values.Get(FieldIntent),
			"request_id", requestID,
			"error", err,
		)
		return fmt.Errorf("failed to post booking submission: %w", err)
	}

	if !resp.IsSuccess() {
		message := client.GetErrorMessage(resp)
		c.logger.Warn("Submit endpoint rejected booking",
			"intent", values.Get(FieldIntent),
			"request_id", requestID,
			"status", resp.StatusCode,
			"message", message,
		)
		return fmt.Errorf("%w: status %d: %s", bookingformerrors.ErrSubmitRejected, resp.StatusCode, message)
	}

	c.logger.Info("Booking submitted",
		"intent", values.Get(FieldIntent),
		"booking_id", values.Get(FieldID),
		"request_id", requestID,
		"duration", time.Since(start),
	)
	return nil
}
