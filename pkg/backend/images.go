package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"
)

// Upload is one file attached to a post.
type Upload struct {
	Name string
	Data io.Reader
}

// UploadImage sends a single file as a multipart request with a `files` part
// and a `postId` field.
func (c *Client) UploadImage(ctx context.Context, token string, postID uuid.UUID, name string, data io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("files", name)
	if err != nil {
		return fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return fmt.Errorf("failed to read file %q: %w", name, err)
	}
	if err := mw.WriteField("postId", postID.String()); err != nil {
		return fmt.Errorf("failed to create multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images", &buf)
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	return responseErr(resp)
}

// UploadImages sends each file as an independent request, strictly one at a
// time. A failure on one file does not stop the rest; the names of the files
// that failed are returned so the caller can report a partial outcome.
func (c *Client) UploadImages(ctx context.Context, token string, postID uuid.UUID, uploads []Upload) (failed []string) {
	for _, u := range uploads {
		if err := c.UploadImage(ctx, token, postID, u.Name, u.Data); err != nil {
			log.Errorf("[UploadImages] failed to upload %q to post %v: %v", u.Name, postID, err)
			failed = append(failed, u.Name)
		}
	}
	return failed
}

// DeleteImages removes images by ID. The body is a plain JSON list, matching
// the backend's bulk delete endpoint.
func (c *Client) DeleteImages(ctx context.Context, token string, ids []uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/images", token, ids, nil)
}

// FetchImage streams an image's bytes. The caller owns the returned reader.
func (c *Client) FetchImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/images/"+id.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("backend unreachable: %w", err)
	}

	if err := responseErr(resp); err != nil {
		resp.Body.Close()
		return nil, "", err
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}
