package web

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"blogfront/pkg/backend"
)

// createCommentHandler passes the comment through as typed, empty content
// included; whether an empty comment is acceptable is the backend's call.
func (app *App) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	postID := uuid.FromStringOrNil(mux.Vars(r)["id"])

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sess, _ := app.sessions.Restore(r)

	if err := app.client.CreateComment(r.Context(), sess.Token, postID, r.FormValue("content")); err != nil {
		log.Errorf("[createCommentHandler][%s] failed to comment on post %v: %v", sID, postID, err)
		if errors.Is(err, backend.ErrUnauthorized) {
			app.setNotice(w, "warning", "You need to be logged in to comment!")
		} else {
			app.setNotice(w, "error", "Failed to add the comment.")
		}
	}

	redirectHome(w, r)
}

func (app *App) editCommentFormHandler(w http.ResponseWriter, r *http.Request) {
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	comment, _, ok := app.feed.Comment(id)
	if !ok {
		if err := app.feed.Load(r.Context()); err == nil {
			comment, _, ok = app.feed.Comment(id)
		}
	}
	if !ok {
		app.setNotice(w, "error", "Comment not found.")
		redirectHome(w, r)
		return
	}

	p := app.newPage(w, r)
	p.Comment = &commentView{Comment: comment, Owned: true}
	app.render(w, "editcomment", p)
}

func (app *App) editCommentHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	content := r.FormValue("content")
	origContent := r.FormValue("origContent")

	if content == origContent {
		app.setNotice(w, "info", "No changes were made.")
		redirectHome(w, r)
		return
	}

	sess, _ := app.sessions.Restore(r)

	if err := app.client.UpdateComment(r.Context(), sess.Token, id, orDefault(content, origContent)); err != nil {
		log.Errorf("[editCommentHandler][%s] failed to update comment %v: %v", sID, id, err)
		n := failureNotice(err, "Failed to edit the comment.")
		app.setNotice(w, n.Level, n.Text)
	}

	redirectHome(w, r)
}

func (app *App) deleteCommentConfirmHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p := app.newPage(w, r)
	p.Confirm = &confirmView{
		Message: "Are you sure you want to delete this comment?",
		Action:  "/comments/" + id + "/delete",
		Cancel:  "/",
	}
	app.render(w, "confirm", p)
}

func (app *App) deleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	sess, _ := app.sessions.Restore(r)

	if err := app.client.DeleteComment(r.Context(), sess.Token, id); err != nil {
		log.Errorf("[deleteCommentHandler][%s] failed to delete comment %v: %v", sID, id, err)
		n := failureNotice(err, "Failed to delete the comment.")
		app.setNotice(w, n.Level, n.Text)
	} else {
		app.setNotice(w, "success", "Comment deleted.")
	}

	redirectHome(w, r)
}
