package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/okian/coinfront/internal/adapters/http/client"
	"github.com/okian/coinfront/pkg/logger"
)

// Home route identity.
const (
	HomePath = "/"
	HomeName = "home"
)

//go:embed templates/*.html
var templateFS embed.FS

// Submitter is the data service the home view posts coin details through.
type Submitter interface {
	Create(ctx context.Context, data any) (*client.Response, error)
}

// HomeRoute declares the home route. The template is parsed and the view
// built only when the route is first navigated to.
func HomeRoute(svc Submitter, l logger.Logger) Route {
	return Route{
		Path: HomePath,
		Name: HomeName,
		Load: func(_ context.Context) (View, error) {
			return NewHomeView(svc, l)
		},
	}
}

// homeView renders the symbol form and, on POST, the upstream answer.
type homeView struct {
	tmpl   *template.Template
	svc    Submitter
	logger logger.Logger
}

type homeData struct {
	Symbol    string
	Submitted bool
	Status    string
	Body      string
	Error     string
}

// NewHomeView parses the embedded home template.
func NewHomeView(svc Submitter, l logger.Logger) (View, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/home.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadView, err)
	}
	if l == nil {
		l = logger.Nop()
	}
	return &homeView{tmpl: tmpl, svc: svc, logger: l}, nil
}

func (v *homeView) Name() string { return "HomeView" }

func (v *homeView) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		v.render(w, http.StatusOK, homeData{})
	case http.MethodPost:
		v.submit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", fmt.Errorf("method %s not allowed", r.Method))
	}
}

func (v *homeView) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	symbol := strings.TrimSpace(r.PostForm.Get("symbol"))
	data := homeData{Symbol: symbol, Submitted: true}

	resp, err := v.svc.Create(r.Context(), map[string]string{"symbol": symbol})
	if resp != nil {
		data.Status = resp.Status
		data.Body = string(resp.Body)
	}
	if err != nil {
		v.logger.Warn(r.Context(), "coin detail submission failed", logger.String("symbol", symbol), logger.Error(err))
		data.Error = err.Error()
	}
	v.render(w, http.StatusOK, data)
}

func (v *homeView) render(w http.ResponseWriter, status int, data homeData) {
	var buf bytes.Buffer
	if err := v.tmpl.Execute(&buf, data); err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", fmt.Errorf("%w: %w", ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
