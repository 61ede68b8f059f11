package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"

	"blogfront/pkg/models"
)

type fakeSource struct {
	posts []models.Post
	err   error
}

func (f *fakeSource) Posts(ctx context.Context) ([]models.Post, error) {
	return append([]models.Post(nil), f.posts...), f.err
}

func testPosts() []models.Post {
	return []models.Post{
		{
			ID:       uuid.Must(uuid.NewV4()),
			Title:    "Hello",
			Content:  "World",
			DateTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       uuid.Must(uuid.NewV4()),
			Title:    "Cooking notes",
			Content:  "A pinch of SALT goes a long way",
			DateTime: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       uuid.Must(uuid.NewV4()),
			Title:    "Trip report",
			Content:  "We hiked for three days",
			DateTime: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestCollection_Load_NewestFirst(t *testing.T) {
	posts := testPosts()
	c := New(&fakeSource{posts: posts})

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.Filter("")
	if len(got) != len(posts) {
		t.Fatalf("want %d posts, got %d", len(posts), len(got))
	}
	for i := range got {
		if got[i].ID != posts[len(posts)-1-i].ID {
			t.Fatalf("want backend order reversed, got %q at index %d", got[i].Title, i)
		}
	}
}

func TestCollection_Load_Error(t *testing.T) {
	c := New(&fakeSource{err: errors.New("backend unreachable")})
	if err := c.Load(context.Background()); err == nil {
		t.Error("want load error, got nil")
	}
}

func TestCollection_Filter(t *testing.T) {
	c := New(&fakeSource{posts: testPosts()})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		term string
		want int
	}{
		{"", 3},
		{"hello", 1},       // title, different case
		{"SALT", 1},        // content, matching case
		{"salt", 1},        // content, different case
		{"o", 3},           // substring across all posts
		{"quaternion", 0},  // no match
		{"trip report", 1}, // full title
	}

	for _, tt := range tests {
		if got := c.Filter(tt.term); len(got) != tt.want {
			t.Errorf("Filter(%q): want %d posts, got %d", tt.term, tt.want, len(got))
		}
	}
}

func TestCollection_Filter_MatchesTitleOrContent(t *testing.T) {
	c := New(&fakeSource{posts: testPosts()})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.Filter("hiked")
	if len(got) != 1 || got[0].Title != "Trip report" {
		t.Errorf("want the content match only, got %v", got)
	}
}

func TestCollection_HideVisible(t *testing.T) {
	c := New(&fakeSource{})

	img1 := uuid.Must(uuid.NewV4())
	img2 := uuid.Must(uuid.NewV4())

	visible := c.Visible([]uuid.UUID{img1, img2})
	if len(visible) != 2 {
		t.Fatalf("want 2 visible images, got %d", len(visible))
	}

	c.Hide(img1)

	visible = c.Visible([]uuid.UUID{img1, img2})
	if len(visible) != 1 || visible[0] != img2 {
		t.Errorf("want only %v visible, got %v", img2, visible)
	}
}

func TestCollection_HiddenSurvivesReload(t *testing.T) {
	img := uuid.Must(uuid.NewV4())
	posts := []models.Post{{ID: uuid.Must(uuid.NewV4()), Title: "With image", ImageIDs: []uuid.UUID{img}}}
	c := New(&fakeSource{posts: posts})

	c.Hide(img)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := c.Visible(posts[0].ImageIDs); len(got) != 0 {
		t.Errorf("want hidden image to stay hidden after reload, got %v", got)
	}
}

func TestCollection_Comment(t *testing.T) {
	commentID := uuid.Must(uuid.NewV4())
	posts := []models.Post{
		{
			ID:    uuid.Must(uuid.NewV4()),
			Title: "With comments",
			Comments: []models.Comment{
				{ID: commentID, Content: "first"},
				{Content: "no id on this one"},
			},
		},
	}
	c := New(&fakeSource{posts: posts})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	comment, post, ok := c.Comment(commentID)
	if !ok {
		t.Fatal("want comment found")
	}
	if comment.Content != "first" || post.Title != "With comments" {
		t.Errorf("want comment/post pair, got %+v in %+v", comment, post)
	}

	// an absent ID must never alias onto another comment
	if _, _, ok := c.Comment(uuid.Nil); ok {
		t.Error("want nil comment ID to resolve to nothing")
	}
}
