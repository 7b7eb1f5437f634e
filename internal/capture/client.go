package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Client is an Uploader that talks to the charter API over HTTP. It binds one
// work order and the pending field edits that must be saved before a receipt
// lands.
type Client struct {
	baseURL     string
	token       string
	workOrderID uint
	httpClient  *http.Client

	// Fields carries the order edits flushed by SaveOrder. Keys are the
	// work-order JSON field names.
	Fields map[string]any
}

// NewClient creates an uploader for one work order. token is the bearer token
// of the signed-in user.
func NewClient(baseURL, token string, workOrderID uint) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		workOrderID: workOrderID,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		Fields:      make(map[string]any),
	}
}

// SaveOrder flushes the pending field edits to the order. With nothing
// pending it is a no-op, so a bare photo upload makes no extra round trip.
func (c *Client) SaveOrder(ctx context.Context) error {
	if len(c.Fields) == 0 {
		return nil
	}

	body, err := json.Marshal(c.Fields)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/work-orders/%d", c.baseURL, c.workOrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save order: %s", readError(resp))
	}

	// Saved edits are no longer pending.
	c.Fields = make(map[string]any)
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadReceipt posts the frame as a multipart upload against the order. The
// file part carries the frame's MIME type so the server's image allow-list
// sees the real type instead of application/octet-stream.
func (c *Client) UploadReceipt(ctx context.Context, category string, frame *Frame) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(frame.Name)))
	mimeType := frame.MIME
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(frame.Data); err != nil {
		return err
	}
	if err := writer.WriteField("category", category); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/work-orders/%d/receipts", c.baseURL, c.workOrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload receipt: %s", readError(resp))
	}
	return nil
}

func readError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return resp.Status
	}
	return fmt.Sprintf("%s: %s", resp.Status, bytes.TrimSpace(data))
}
