package report

import (
	"context"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
)

// ComponentResponse pairs a component with the response metadata the
// handler writes.
type ComponentResponse struct {
	Error       error
	Message     string
	Code        int
	ContentType string
	Component   templ.Component
}

// ComponentHandler adapts a component-producing function into an
// http.Handler.
type ComponentHandler func(w http.ResponseWriter, r *http.Request) *ComponentResponse

func (ch ComponentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := ch(w, r)

	if resp.Error != nil {
		http.Error(w, resp.Message, resp.Code)
		return
	}

	w.Header().Add("Content-Type", resp.ContentType)
	if resp.Code != 0 {
		w.WriteHeader(resp.Code)
	}

	if err := resp.Component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render report", 500)
	}
}

// Handler serves the given page at every path.
func Handler(page templ.Component) ComponentHandler {
	return func(w http.ResponseWriter, r *http.Request) *ComponentResponse {
		return &ComponentResponse{Component: page, Code: 200, Message: "OK", ContentType: "text/html"}
	}
}

// Write renders the page to a file.
func Write(path string, page templ.Component) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := page.Render(context.Background(), file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Serve blocks serving the report on addr until the listener fails.
func Serve(addr string, page templ.Component, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/", Handler(page))

	log.Info().Str("addr", addr).Msg("serving report")
	return http.ListenAndServe(addr, mux)
}
