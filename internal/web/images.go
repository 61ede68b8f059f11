package web

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"blogfront/pkg/backend"
)

// addImagesHandler uploads each attached file as its own request, in order.
// Files that fail are reported by name; the ones that succeeded stay attached.
func (app *App) addImagesHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	postID := uuid.FromStringOrNil(mux.Vars(r)["id"])

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		log.Debugf("[addImagesHandler][%s] bad form from %v: %v", sID, r.RemoteAddr, err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		redirectHome(w, r)
		return
	}

	sess, _ := app.sessions.Restore(r)

	var uploads []backend.Upload
	var failed []string
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			log.Errorf("[addImagesHandler][%s] failed to open upload %q: %v", sID, fh.Filename, err)
			failed = append(failed, fh.Filename)
			continue
		}
		defer f.Close()
		uploads = append(uploads, backend.Upload{Name: fh.Filename, Data: f})
	}
	failed = append(failed, app.client.UploadImages(r.Context(), sess.Token, postID, uploads)...)

	if len(failed) > 0 {
		app.setNotice(w, "warning", "Some images could not be uploaded: "+strings.Join(failed, ", "))
	} else {
		app.setNotice(w, "success", "Images added!")
	}

	redirectHome(w, r)
}

func (app *App) deleteImageConfirmHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p := app.newPage(w, r)
	p.Confirm = &confirmView{
		Message: "Are you sure you want to delete this image?",
		Action:  "/images/" + id + "/delete",
		Cancel:  "/",
	}
	app.render(w, "confirm", p)
}

// deleteImageHandler is the one mutation that does not rely on a refetch:
// a deleted image joins the hidden overlay so the gallery drops it at once.
func (app *App) deleteImageHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	sess, _ := app.sessions.Restore(r)

	if err := app.client.DeleteImages(r.Context(), sess.Token, []uuid.UUID{id}); err != nil {
		log.Errorf("[deleteImageHandler][%s] failed to delete image %v: %v", sID, id, err)
		n := failureNotice(err, "Could not delete the image!")
		app.setNotice(w, n.Level, n.Text)
	} else {
		app.feed.Hide(id)
		app.setNotice(w, "success", "Image removed.")
	}

	redirectHome(w, r)
}

// imageHandler proxies image bytes from the backend so markup can reference
// local /images/{id} URLs.
func (app *App) imageHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))
	id := uuid.FromStringOrNil(mux.Vars(r)["id"])

	body, contentType, err := app.client.FetchImage(r.Context(), id)
	if err != nil {
		var nfErr *backend.NotFoundError
		if errors.As(err, &nfErr) {
			http.Error(w, "Image not found", http.StatusNotFound)
			log.Debugf("[imageHandler][%s] image %v not found", sID, id)
			return
		}
		log.Errorf("[imageHandler][%s] failed to fetch image %v: %v", sID, id, err)
		http.Error(w, "Image Unavailable", http.StatusBadGateway)
		return
	}
	defer body.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, body); err != nil {
		log.Errorf("[imageHandler][%s] error copying image body: %v", sID, err)
	}
}
