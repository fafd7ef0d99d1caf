package api

import (
	"net/http"

	"github.com/MrJJimenez/awwjobs/internal/scraper"
	"github.com/rs/zerolog"
)

type Deps struct {
	Source  scraper.Source
	AppName string
	Version string
	Logger  zerolog.Logger
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed.")
	}
}

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{AppName: d.AppName, Version: d.Version}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	jh := JobsHandler{Source: d.Source, Logger: d.Logger}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodHead: jh.Head,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.GetByPath, // expects /jobs/{id}
	}))

	return mux
}

// NewHandler wraps the mux with request ids, access logging, panic recovery and
// CORS. AccessLog sits outside Recover so recovered panics are still logged.
func NewHandler(d Deps) http.Handler {
	return Chain(NewMux(d),
		RequestID,
		AccessLog(d.Logger),
		Recover(d.Logger),
		Cors,
	)
}
