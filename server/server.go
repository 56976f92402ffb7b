// Package server exposes the advisor over a JSON HTTP API.
//
//	POST /api/plan           a JSON profile, returns an allocation plan
//	POST /api/review         a CSV portfolio (raw body or multipart "file"), returns a review
//	GET  /api/quote/{ticker} returns a stock summary
//	GET  /healthz
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/etnz/advisor"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Generator answers prompts, *gemini.Client is one.
type Generator interface {
	Reply(ctx context.Context, prompt advisor.Prompt) advisor.Reply
}

// Summarizer computes stock summaries, *advisor.Quoter is one.
type Summarizer interface {
	Summary(ctx context.Context, ticker string) (*advisor.StockSummary, error)
}

// maxUpload is the largest accepted portfolio file.
const maxUpload = 10 << 20

// Server is the advisor's http.Handler.
type Server struct {
	gen        Generator
	quotes     Summarizer
	reviewRisk advisor.RiskLevel
	router     *mux.Router
}

// New returns a Server answering with gen and quotes. Reviews assume reviewRisk unless the request sets one.
func New(gen Generator, quotes Summarizer, reviewRisk advisor.RiskLevel) *Server {
	s := &Server{gen: gen, quotes: quotes, reviewRisk: reviewRisk}

	r := mux.NewRouter()
	r.Use(logging)
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	// full paths on the root router, a method mismatch on a subrouter is a 404.
	r.HandleFunc("/api/plan", s.plan).Methods(http.MethodPost)
	r.HandleFunc("/api/review", s.review).Methods(http.MethodPost)
	r.HandleFunc("/api/quote/{ticker}", s.quote).Methods(http.MethodGet)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

// ListenAndServe serves s on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusRecorder keeps the status code for the logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestIDHeader carries the request id, generated when the client does not send one.
const RequestIDHeader = "X-Request-ID"

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %v %v %v %v", id, r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("cannot write response: %v", err)
	}
}

// statusOf maps an error kind to the http status reported to the client.
func statusOf(kind advisor.Kind) int {
	switch kind {
	case advisor.InvalidInput:
		return http.StatusBadRequest
	case advisor.NoData:
		return http.StatusNotFound
	case advisor.Unauthenticated:
		// the server's credentials were rejected upstream, not the client's.
		return http.StatusBadGateway
	case advisor.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error struct {
		Kind    advisor.Kind `json:"kind"`
		Message string       `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Kind = advisor.KindOf(err)
	body.Error.Message = err.Error()
	writeJSON(w, statusOf(body.Error.Kind), body)
}
