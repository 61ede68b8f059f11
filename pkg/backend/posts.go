package backend

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"

	"blogfront/pkg/models"
)

// PostFields is the mutable part of a post.
type PostFields struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

type createPostResponse struct {
	PostID uuid.UUID `json:"postId"`
}

// Posts fetches the full post collection in backend order.
func (c *Client) Posts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts", "", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, token string, fields PostFields) (uuid.UUID, error) {
	var resp createPostResponse
	if err := c.do(ctx, http.MethodPost, "/posts", token, fields, &resp); err != nil {
		return uuid.Nil, err
	}
	return resp.PostID, nil
}

func (c *Client) UpdatePost(ctx context.Context, token string, id uuid.UUID, fields PostFields) error {
	return c.do(ctx, http.MethodPut, "/posts/"+id.String(), token, fields, nil)
}

// DeletePost removes a post. The backend answers with a conflict status while
// the post still has comments; that surfaces as a *ConflictError.
func (c *Client) DeletePost(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id.String(), token, nil, nil)
}

type commentBody struct {
	Content string `json:"content"`
}

// CreateComment posts a comment under postID. Empty content is passed through
// unchanged; the backend decides whether to accept it.
func (c *Client) CreateComment(ctx context.Context, token string, postID uuid.UUID, content string) error {
	return c.do(ctx, http.MethodPost, "/comments/"+postID.String(), token, commentBody{Content: content}, nil)
}

func (c *Client) UpdateComment(ctx context.Context, token string, id uuid.UUID, content string) error {
	return c.do(ctx, http.MethodPut, "/comments/"+id.String(), token, commentBody{Content: content}, nil)
}

func (c *Client) DeleteComment(ctx context.Context, token string, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/comments/"+id.String(), token, nil, nil)
}
