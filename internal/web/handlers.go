package web

import (
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"blogfront/pkg/backend"
	"blogfront/pkg/feed"
	"blogfront/pkg/session"
)

// failureNotice maps a backend error onto the notice shown to the user.
// Call sites with a domain-specific message (e.g. conflict on post delete)
// handle that case before falling back here.
func failureNotice(err error, generic string) Notice {
	var vErr *backend.ValidationError
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return Notice{Level: "warning", Text: "You need to be logged in to do that!"}
	case errors.As(err, &vErr):
		return Notice{Level: "error", Text: vErr.Message}
	}
	return Notice{Level: "error", Text: generic}
}

func (app *App) indexHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	p := app.newPage(w, r)
	p.SearchTerm = r.URL.Query().Get("q")

	if err := app.feed.Load(r.Context()); err != nil {
		log.Errorf("[indexHandler][%s] failed to load posts: %v", sID, err)
		p.Notice = &Notice{Level: "error", Text: "Failed to load posts."}
		app.render(w, "index", p)
		return
	}

	for _, post := range app.feed.Filter(p.SearchTerm) {
		p.Posts = append(p.Posts, postView{
			Post:   post,
			Owned:  p.LoggedIn && feed.Owns(p.Viewer, post.AuthorName, post.AuthorEmail),
			Images: app.feed.Visible(post.ImageIDs),
		})
	}

	app.render(w, "index", p)
	log.Debugf("[indexHandler][%s] rendered %d posts for %v", sID, len(p.Posts), r.RemoteAddr)
}

func (app *App) loginFormHandler(w http.ResponseWriter, r *http.Request) {
	p := app.newPage(w, r)
	p.Form = map[string]string{}
	app.render(w, "login", p)
}

func (app *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	email := r.FormValue("email")
	password := r.FormValue("password")

	identity, token, err := app.client.Login(r.Context(), email, password)
	if err != nil {
		log.Infof("[loginHandler][%s] login rejected for %v: %v", sID, r.RemoteAddr, err)
		p := app.newPage(w, r)
		p.Form = map[string]string{"email": email}
		if errors.Is(err, backend.ErrUnauthorized) {
			p.Notice = &Notice{Level: "error", Text: "Invalid email or password."}
		} else {
			n := failureNotice(err, "Login failed. Try again.")
			p.Notice = &n
		}
		app.render(w, "login", p)
		return
	}

	if err := app.sessions.Save(w, identity, token); err != nil {
		log.Errorf("[loginHandler][%s] failed to save session: %v", sID, err)
		p := app.newPage(w, r)
		p.Form = map[string]string{"email": email}
		p.Notice = &Notice{Level: "error", Text: "Not authenticated."}
		app.render(w, "login", p)
		return
	}

	app.setNotice(w, "success", "Logged in successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *App) logoutHandler(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	sess, err := app.sessions.Restore(r)
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		sess = session.Session{}
	}

	if sess.LoggedIn() {
		if err := app.client.Logout(r.Context(), sess.Token); err != nil {
			log.Errorf("[logoutHandler][%s] backend logout failed: %v", sID, err)
			app.setNotice(w, "error", "Failed to log out.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	app.sessions.Clear(w)
	app.setNotice(w, "success", "Logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
