package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/reteach/reteach-cli/internal/diagnostic"
)

// TextbookUpload is the result of uploading a textbook PDF: the stored
// textbook id plus the topics extracted from its structure.
type TextbookUpload struct {
	TextbookID string
	Topics     []diagnostic.Topic
}

// UploadTextbook sends a textbook PDF as multipart form data and returns
// the extracted topics.
func (c *Client) UploadTextbook(ctx context.Context, filename string, content io.Reader) (TextbookUpload, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return TextbookUpload{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return TextbookUpload{}, fmt.Errorf("read textbook file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return TextbookUpload{}, fmt.Errorf("finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint("/api/textbooks/upload", nil), &buf)
	if err != nil {
		return TextbookUpload{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return TextbookUpload{}, fmt.Errorf("upload textbook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return TextbookUpload{}, decodeError(resp)
	}

	var parsed struct {
		TextbookID string      `json:"textbook_id"`
		Topics     []wireTopic `json:"topics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return TextbookUpload{}, fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.TextbookID == "" {
		return TextbookUpload{}, fmt.Errorf("upload response missing textbook id")
	}

	out := TextbookUpload{TextbookID: parsed.TextbookID}
	for _, w := range parsed.Topics {
		out.Topics = append(out.Topics, w.toDomain())
	}
	return out, nil
}

// TextbookTopics fetches the extracted topics of a previously uploaded
// textbook.
func (c *Client) TextbookTopics(ctx context.Context, textbookID string) ([]diagnostic.Topic, error) {
	if textbookID == "" {
		return nil, fmt.Errorf("textbook id is empty")
	}

	var resp struct {
		Topics []wireTopic `json:"topics"`
	}
	path := "/api/textbooks/" + url.PathEscape(textbookID) + "/topics"
	if err := c.doJSON(ctx, "GET", path, nil, nil, &resp); err != nil {
		return nil, err
	}

	topics := make([]diagnostic.Topic, 0, len(resp.Topics))
	for _, w := range resp.Topics {
		topics = append(topics, w.toDomain())
	}
	return topics, nil
}
