package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jamespfennell/iso8601/config"
	"github.com/jamespfennell/iso8601/internal/encode"
	"github.com/jamespfennell/iso8601/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//go:embed index.html
var indexHtml string

var startTime = time.Now().UTC()

type EncodeResponse struct {
	Text string `json:"text"`
}

type DecodeResponse struct {
	UnixMillis int64  `json:"unixMillis"`
	UTC        string `json:"utc"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var switches = []struct {
	name  string
	field func(p *encode.Patch) **bool
}{
	{"hyphens", func(p *encode.Patch) **bool { return &p.Hyphens }},
	{"colons", func(p *encode.Patch) **bool { return &p.Colons }},
	{"offset", func(p *encode.Patch) **bool { return &p.Offset }},
	{"milliseconds", func(p *encode.Patch) **bool { return &p.Milliseconds }},
	{"local", func(p *encode.Patch) **bool { return &p.Local }},
}

// NewHandler returns the HTTP handler of the server.
func NewHandler(c *config.Config) http.Handler {
	log := logrus.WithField("component", "server")
	encoder := c.Encoder()
	decoder := c.Decoder()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/encode", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		millis, err := strconv.ParseInt(query.Get("t"), 10, 64)
		if err != nil {
			writeJSON(w, log, http.StatusBadRequest, errorResponse{
				Error: fmt.Sprintf("parameter t must be unix milliseconds, got %q", query.Get("t")),
			})
			return
		}
		var patch encode.Patch
		for _, s := range switches {
			raw := query.Get(s.name)
			if raw == "" {
				continue
			}
			b, err := strconv.ParseBool(raw)
			if err != nil {
				writeJSON(w, log, http.StatusBadRequest, errorResponse{
					Error: fmt.Sprintf("parameter %s must be a boolean, got %q", s.name, raw),
				})
				return
			}
			*s.field(&patch) = &b
		}
		e := encoder
		e.Options = e.Options.Apply(patch)
		text, err := e.Encode(time.UnixMilli(millis))
		monitoring.RecordEncode(monitoring.HTTP, err)
		if err != nil {
			writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, log, http.StatusOK, EncodeResponse{Text: text})
	})
	mux.HandleFunc("/decode", func(w http.ResponseWriter, r *http.Request) {
		t, err := decoder.Decode(r.URL.Query().Get("s"))
		monitoring.RecordDecode(monitoring.HTTP, err)
		if err != nil {
			writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, log, http.StatusOK, DecodeResponse{
			UnixMillis: t.UnixMilli(),
			UTC:        t.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, err := io.WriteString(w,
			fmt.Sprintf(indexHtml,
				time.Now().UTC().Sub(startTime).Truncate(time.Second),
				html.EscapeString(c.String())))
		if err != nil {
			log.WithError(err).Warn("Error handling HTTP request")
		}
	})
	return mux
}

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Error writing HTTP response")
	}
}

// Run serves HTTP on the configured port until ctx is cancelled.
func Run(ctx context.Context, c *config.Config) error {
	log := logrus.WithField("component", "server")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", c.Port),
		Handler: NewHandler(c),
	}
	shutdownC := make(chan struct{})
	go func() {
		defer close(shutdownC)
		<-ctx.Done()
		log.Info("Shutting down the server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.WithField("port", c.Port).Info("Starting the server")
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-shutdownC
		return nil
	}
	return err
}
