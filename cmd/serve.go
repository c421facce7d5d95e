package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/tranhdex/analysis"
	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/musicxml"
	"github.com/jsphweid/tranhdex/query"
	"github.com/jsphweid/tranhdex/store"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 10 << 20

var addr string

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves analyses over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		if addr == "" {
			addr = cfg.Serve.Addr
		}
		s := NewServer(cat, analysisOptions(), cfg.MinCount)
		srv := &http.Server{
			Addr:              addr,
			Handler:           s.Handler(cfg.Serve.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		slog.Info("listening", "addr", addr, "analyses", len(cat.List()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// Server answers queries against cached analyses. Restored analyses are kept
// in memory after first use.
type Server struct {
	cat      *store.Catalog
	opts     analysis.Options
	minCount int

	mu    sync.Mutex
	cache map[string]*analysis.Analysis
}

func NewServer(cat *store.Catalog, opts analysis.Options, minCount int) *Server {
	return &Server{
		cat:      cat,
		opts:     opts,
		minCount: minCount,
		cache:    make(map[string]*analysis.Analysis),
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyses", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/analyses", s.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/analyses/{id}", s.handleSummary).Methods(http.MethodGet)
	router.HandleFunc("/analyses/{id}/query", s.handleQuery).Methods(http.MethodPost)
	router.HandleFunc("/analyses/{id}/sections", s.handleSections).Methods(http.MethodPost)
	router.HandleFunc("/analyses/{id}/variations", s.handleVariations).Methods(http.MethodPost)
	router.HandleFunc("/analyses/{id}/syllables", s.handleSyllables).Methods(http.MethodGet)
	router.HandleFunc("/analyses/{id}/ornaments", s.handleOrnaments).Methods(http.MethodGet)
	return router
}

// Handler wraps the router with CORS for the given origins.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.Router())
}

func (s *Server) analysis(id string) (*analysis.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.cache[id]; ok {
		return a, nil
	}
	a, err := restore(s.cat, id)
	if err != nil {
		return nil, err
	}
	s.cache[id] = a
	return a, nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cat.List())
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	raw, err := musicxml.Parse(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	opts := s.opts
	opts.Source = r.URL.Query().Get("source")
	if opts.Source == "" {
		opts.Source = "upload"
	}
	a, err := analysis.Run(raw, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.cat.Save(a.ID, opts.Source, a.Document(), a.Lyrics); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	s.cache[a.ID.String()] = a
	s.mu.Unlock()
	slog.Info("analyzed upload", "id", a.ID, "source", opts.Source, "notes", len(a.Notes))
	writeJSON(w, http.StatusCreated, a.Summary())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	a, err := s.analysis(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Summary())
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var body model.QueryRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	kind, err := parseKind(string(body.Kind))
	if err != nil {
		writeError(w, badRequest(err))
		return
	}
	mode, err := parseMode(string(body.Mode))
	if err != nil {
		writeError(w, badRequest(err))
		return
	}
	if body.MinCount <= 0 {
		body.MinCount = s.minCount
	}
	a, err := s.analysis(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Engine().Query(kind, query.Options{
		N:        body.N,
		MinCount: body.MinCount,
		MainOnly: body.MainOnly,
		HasGrace: body.HasGrace,
		Mode:     mode,
	}))
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	body := model.SectionsRequestBody{MinLength: 2, MinCount: 2}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	a, err := s.analysis(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Engine().FindRepeatedSections(body.MinLength, body.MinCount, body.MaxLength))
}

func (s *Server) handleVariations(w http.ResponseWriter, r *http.Request) {
	body := model.VariationsRequestBody{Similarity: 0.5}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if len(body.Pattern) == 0 {
		writeError(w, badRequest(errors.New("pattern is required")))
		return
	}
	kind, err := parseKind(string(body.Kind))
	if err != nil {
		writeError(w, badRequest(err))
		return
	}
	a, err := s.analysis(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if body.Tolerance != nil {
		writeJSON(w, http.StatusOK, a.Engine().FindSectionVariations(body.Pattern, *body.Tolerance))
		return
	}
	writeJSON(w, http.StatusOK, a.Engine().FindVariations(body.Pattern, kind, body.Similarity))
}

func (s *Server) handleSyllables(w http.ResponseWriter, r *http.Request) {
	a, err := s.analysis(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	res := a.Lyrics.Syllables
	if res == nil {
		res = []model.Syllable{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleOrnaments(w http.ResponseWriter, r *http.Request) {
	a, err := s.analysis(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Ornaments())
}

var errBadRequest = errors.New("bad request")

type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return errBadRequest }

func badRequest(err error) error { return requestError{err} }

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(errors.Wrap(err, "decoding request body"))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing response", "err", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, musicxml.ErrNoNotes), errors.Is(err, musicxml.ErrMalformed):
		status = http.StatusBadRequest
	case errors.Is(err, analysis.ErrTooManyNotes), errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}
