package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"blogfront/pkg/backend"
)

const maxUploadMemory = 32 << 20

func (app *App) newPostFormHandler(w http.ResponseWriter, r *http.Request) {
	p := app.newPage(w, r)
	p.Form = map[string]string{}
	app.render(w, "newpost", p)
}

// createPostHandler creates the post first; attachments are uploaded one by
// one only after the post exists. A create failure keeps the form open with
// the entered values, a failed attachment never rolls the post back.
func (app *App) createPostHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Debugf("[createPostHandler][%s] bad form from %v: %v", sID, r.RemoteAddr, err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sess, _ := app.sessions.Restore(r)
	fields := backend.PostFields{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
	}

	postID, err := app.client.CreatePost(r.Context(), sess.Token, fields)
	if err != nil {
		log.Errorf("[createPostHandler][%s] failed to create post: %v", sID, err)
		p := app.newPage(w, r)
		p.Form = map[string]string{
			"title":    fields.Title,
			"content":  fields.Content,
			"category": fields.Category,
		}
		n := failureNotice(err, "Failed to create the post. Try again.")
		p.Notice = &n
		app.render(w, "newpost", p)
		return
	}

	var uploads []backend.Upload
	var failed []string
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			log.Errorf("[createPostHandler][%s] failed to open upload %q: %v", sID, fh.Filename, err)
			failed = append(failed, fh.Filename)
			continue
		}
		defer f.Close()
		uploads = append(uploads, backend.Upload{Name: fh.Filename, Data: f})
	}
	failed = append(failed, app.client.UploadImages(r.Context(), sess.Token, postID, uploads)...)

	switch {
	case len(failed) > 0:
		app.setNotice(w, "warning", "The post was created, but these images could not be uploaded: "+strings.Join(failed, ", "))
	case len(uploads) > 0:
		app.setNotice(w, "success", "Post created and all images uploaded!")
	default:
		app.setNotice(w, "success", "Post created!")
	}

	redirectHome(w, r)
}

func (app *App) editPostFormHandler(w http.ResponseWriter, r *http.Request) {
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	post, ok := app.feed.Post(id)
	if !ok {
		// cold cache, e.g. a bookmarked edit link
		if err := app.feed.Load(r.Context()); err == nil {
			post, ok = app.feed.Post(id)
		}
	}
	if !ok {
		app.setNotice(w, "error", "Post not found.")
		redirectHome(w, r)
		return
	}

	p := app.newPage(w, r)
	p.Post = &postView{Post: post, Owned: true, Images: app.feed.Visible(post.ImageIDs)}
	app.render(w, "editpost", p)
}

// editPostHandler compares the submitted fields with the originals the form
// was seeded from. Nothing changed means no network call at all; a blank
// field falls back to its original value only.
func (app *App) editPostHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	content := r.FormValue("content")
	category := r.FormValue("category")
	origTitle := r.FormValue("origTitle")
	origContent := r.FormValue("origContent")
	origCategory := r.FormValue("origCategory")

	if title == origTitle && content == origContent && category == origCategory {
		app.setNotice(w, "info", "No changes were made.")
		redirectHome(w, r)
		return
	}

	sess, _ := app.sessions.Restore(r)
	fields := backend.PostFields{
		Title:    orDefault(title, origTitle),
		Content:  orDefault(content, origContent),
		Category: orDefault(category, origCategory),
	}

	if err := app.client.UpdatePost(r.Context(), sess.Token, id, fields); err != nil {
		log.Errorf("[editPostHandler][%s] failed to update post %v: %v", sID, id, err)
		n := failureNotice(err, "Failed to edit the post.")
		app.setNotice(w, n.Level, n.Text)
	}

	redirectHome(w, r)
}

func (app *App) deletePostConfirmHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p := app.newPage(w, r)
	p.Confirm = &confirmView{
		Message: "Are you sure you want to delete this post and all of its comments?",
		Action:  "/posts/" + id + "/delete",
		Cancel:  "/",
	}
	app.render(w, "confirm", p)
}

func (app *App) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	sess, _ := app.sessions.Restore(r)

	err := app.client.DeletePost(r.Context(), sess.Token, id)
	var cErr *backend.ConflictError
	switch {
	case err == nil:
		app.setNotice(w, "success", "Post deleted.")
	case errors.As(err, &cErr):
		app.setNotice(w, "error", "Cannot delete a post that still has comments.")
	default:
		log.Errorf("[deletePostHandler][%s] failed to delete post %v: %v", sID, id, err)
		n := failureNotice(err, "Failed to delete the post.")
		app.setNotice(w, n.Level, n.Text)
	}

	redirectHome(w, r)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
