// Package web renders the browser-facing pages: the post feed with its search
// box, the creation and edit forms, and the yes/no confirmation pages that
// gate destructive actions. Handlers translate form submissions into backend
// calls and every failure into a one-shot notice on the next page.
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"

	"blogfront/pkg/backend"
	"blogfront/pkg/feed"
	"blogfront/pkg/models"
	"blogfront/pkg/session"
)

const uuidPattern = "[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}"

type App struct {
	ServiceName string

	r        *mux.Router
	tmpl     map[string]*template.Template
	client   *backend.Client
	sessions *session.Store
	feed     *feed.Collection
	kw       *kafka.Writer
}

func New(name string, client *backend.Client, sessions *session.Store, templateDir string, kafkaWriter *kafka.Writer) (*App, error) {
	tmpl, err := loadTemplates(templateDir)
	if err != nil {
		return nil, err
	}

	app := App{
		ServiceName: name,
		r:           mux.NewRouter(),
		tmpl:        tmpl,
		client:      client,
		sessions:    sessions,
		feed:        feed.New(client),
		kw:          kafkaWriter,
	}
	app.endpoints()

	return &app, nil
}

func (app *App) Router() *mux.Router {
	return app.r
}

func (app *App) endpoints() {
	app.r.Use(app.requestIDMiddleware)
	if app.kw != nil {
		app.r.Use(app.loggingMiddleware(app.kw))
	}

	app.r.HandleFunc("/", app.indexHandler).Methods(http.MethodGet)

	app.r.HandleFunc("/login", app.loginFormHandler).Methods(http.MethodGet)
	app.r.HandleFunc("/login", app.loginHandler).Methods(http.MethodPost)
	app.r.HandleFunc("/logout", app.logoutHandler).Methods(http.MethodPost)

	app.r.HandleFunc("/posts/new", app.newPostFormHandler).Methods(http.MethodGet)
	app.r.HandleFunc("/posts", app.createPostHandler).Methods(http.MethodPost)
	app.r.HandleFunc("/posts/{id:"+uuidPattern+"}/edit", app.editPostFormHandler).Methods(http.MethodGet)
	app.r.HandleFunc("/posts/{id:"+uuidPattern+"}/edit", app.editPostHandler).Methods(http.MethodPost)
	app.r.HandleFunc("/posts/{id:"+uuidPattern+"}/delete", app.deletePostConfirmHandler).Methods(http.MethodGet)
	app.r.HandleFunc("/posts/{id:"+uuidPattern+"}/delete", app.deletePostHandler).Methods(http.MethodPost)
	app.r.HandleFunc("/posts/{id:"+uuidPattern+"}/comments", app.createCommentHandler).Methods(http.MethodPost)
	app.r.HandleFunc("/posts/{id:"+uuidPattern+"}/images", app.addImagesHandler).Methods(http.MethodPost)

	app.r.HandleFunc("/comments/{id:"+uuidPattern+"}/edit", app.editCommentFormHandler).Methods(http.MethodGet)
	app.r.HandleFunc("/comments/{id:"+uuidPattern+"}/edit", app.editCommentHandler).Methods(http.MethodPost)
	app.r.HandleFunc("/comments/{id:"+uuidPattern+"}/delete", app.deleteCommentConfirmHandler).Methods(http.MethodGet)
	app.r.HandleFunc("/comments/{id:"+uuidPattern+"}/delete", app.deleteCommentHandler).Methods(http.MethodPost)

	app.r.HandleFunc("/images/{id:"+uuidPattern+"}/delete", app.deleteImageConfirmHandler).Methods(http.MethodGet)
	app.r.HandleFunc("/images/{id:"+uuidPattern+"}/delete", app.deleteImageHandler).Methods(http.MethodPost)
	app.r.HandleFunc("/images/{id:"+uuidPattern+"}", app.imageHandler).Methods(http.MethodGet)
}

func loadTemplates(dir string) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"reltime": relTime,
	}

	layout := filepath.Join(dir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}

	templates := map[string]*template.Template{}
	for _, p := range pages {
		if filepath.Base(p) == "layout.html" {
			continue
		}
		t, err := template.New("layout.html").Funcs(funcs).ParseFiles(layout, p)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", p, err)
		}
		templates[strings.TrimSuffix(filepath.Base(p), ".html")] = t
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", dir)
	}

	return templates, nil
}

// page is the data every template renders from; page-specific fields stay nil
// elsewhere.
type page struct {
	Viewer     models.Identity
	LoggedIn   bool
	SearchTerm string
	Notice     *Notice
	Posts      []postView
	Form       map[string]string
	Post       *postView
	Comment    *commentView
	Confirm    *confirmView
}

type postView struct {
	models.Post
	Owned  bool
	Images []uuid.UUID
}

func (p postView) CommentViews(viewer models.Identity) []commentView {
	views := make([]commentView, 0, len(p.Comments))
	for _, cm := range p.Comments {
		views = append(views, commentView{
			Comment: cm,
			// a comment with no backend ID cannot be addressed: no controls
			Owned: cm.ID != uuid.Nil && feed.Owns(viewer, cm.AuthorName, cm.AuthorEmail),
		})
	}
	return views
}

type commentView struct {
	models.Comment
	Owned bool
}

type confirmView struct {
	Message string
	Action  string
	Cancel  string
}

func (app *App) render(w http.ResponseWriter, name string, data page) {
	t, ok := app.tmpl[name]
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// newPage seeds a page with the viewer and the pending notice.
func (app *App) newPage(w http.ResponseWriter, r *http.Request) page {
	sess, err := app.sessions.Restore(r)
	if err != nil {
		sess = session.Session{}
	}
	return page{
		Viewer:   sess.Identity,
		LoggedIn: sess.LoggedIn(),
		Notice:   app.popNotice(w, r),
	}
}

// redirectHome sends the browser back to the feed, carrying the search term
// along when the submitting form preserved one.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	target := "/"
	if q := r.FormValue("q"); q != "" {
		target = "/?q=" + templateQueryEscape(q)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func templateQueryEscape(q string) string {
	return strings.ReplaceAll(template.URLQueryEscaper(q), "+", "%20")
}

func relTime(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%d d ago", int(d.Hours()/24))
	}
	return t.Format("2 Jan 2006")
}
