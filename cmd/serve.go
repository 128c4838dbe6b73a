package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leads-cli/internal/bulk"
	"github.com/sells-group/leads-cli/internal/importer"
	"github.com/sells-group/leads-cli/internal/messaging"
	"github.com/sells-group/leads-cli/internal/segment"
	"github.com/sells-group/leads-cli/internal/sheet"
	"github.com/sells-group/leads-cli/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the lead dashboard",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           newRouter(st),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		zap.L().Info("server listening", zap.Int("port", cfg.Server.Port))

		select {
		case <-ctx.Done():
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return eris.Wrap(err, "serve: listen")
		}
	},
}

// newRouter wires the dashboard API.
func newRouter(st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	runner := bulk.NewRunner(st, cfg.Bulk.Concurrency, bulk.WithRateLimit(cfg.Bulk.RateLimit))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/leads", handleListLeads(st))
		r.Delete("/leads/{id}", handleDeleteLead(st))
		r.Get("/leads/{id}/links", handleLeadLinks(st))
		r.Post("/leads/assign", handleAssign(runner))
		r.Post("/leads/purge", handlePurge(runner))
		r.Post("/import", handleImport(st))
	})
	return r
}

// filterFromQuery maps facet query params onto a segmentation filter.
func filterFromQuery(r *http.Request) segment.Filter {
	q := r.URL.Query()
	return segment.Filter{
		Status:        q.Get("status"),
		Assignee:      q.Get("assignee"),
		Search:        q.Get("search"),
		Source:        q.Get("source"),
		Priority:      q.Get("priority"),
		Country:       q.Get("country"),
		State:         q.Get("state"),
		City:          q.Get("city"),
		ValueMin:      q.Get("value_min"),
		ValueMax:      q.Get("value_max"),
		ScoreMin:      q.Get("score_min"),
		ScoreMax:      q.Get("score_max"),
		FollowupFrom:  q.Get("followup_from"),
		FollowupTo:    q.Get("followup_to"),
		DoNotFollowup: q.Get("do_not_followup") == "true",
		HasTags:       q.Get("has_tags") == "true",
		TagQuery:      q.Get("tag"),
	}
}

func handleListLeads(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads, err := st.ListLeads(r.Context(), r.URL.Query().Get("project"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		filtered := segment.Apply(leads, filterFromQuery(r))
		writeJSON(w, http.StatusOK, map[string]any{
			"leads": filtered,
			"stats": segment.Summarize(filtered),
		})
	}
}

func handleDeleteLead(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := st.DeleteLead(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleLeadLinks returns the outbound contact links for one lead. A
// channel with no usable phone/email is simply absent from the response.
func handleLeadLinks(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lead, err := st.GetLead(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		projectName := r.URL.Query().Get("project_name")
		links := map[string]string{}
		if tel, ok := messaging.TelLink(lead); ok {
			links["tel"] = tel
		}
		if wa, ok := messaging.WhatsAppLink(lead, cfg.Messaging.WhatsAppBaseURL, cfg.Messaging.MessageTemplate, projectName); ok {
			links["whatsapp"] = wa
		}
		if mail, ok := messaging.GmailLink(lead, cfg.Messaging.EmailSubject, cfg.Messaging.MessageTemplate, projectName); ok {
			links["email"] = mail
		}
		writeJSON(w, http.StatusOK, links)
	}
}

func handleAssign(runner *bulk.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDs      []string `json:"ids"`
			Assignee string   `json:"assignee"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
			writeError(w, http.StatusBadRequest, eris.New("ids are required"))
			return
		}
		writeJSON(w, http.StatusOK, runner.AssignAll(r.Context(), req.IDs, req.Assignee))
	}
}

func handlePurge(runner *bulk.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.IDs) == 0 {
			writeError(w, http.StatusBadRequest, eris.New("ids are required"))
			return
		}
		writeJSON(w, http.StatusOK, runner.DeleteAll(r.Context(), req.IDs))
	}
}

// handleImport accepts a multipart spreadsheet upload and runs the bulk
// import pipeline against it.
func handleImport(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID := r.URL.Query().Get("project")
		if projectID == "" {
			writeError(w, http.StatusBadRequest, eris.New("project query param is required"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, eris.Wrap(err, "file form field is required"))
			return
		}
		defer file.Close()

		rows, err := decodeUpload(file, header.Filename)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		p := importer.NewPipeline(st, cfg.Import.Concurrency)
		result, created, err := p.Run(r.Context(), projectID, rows)
		if errors.Is(err, importer.ErrNoValidRows) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    "no valid rows in sheet",
				"rejected": result.Rejected,
			})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"created":  len(created),
			"rejected": result.Rejected,
		})
	}
}

// decodeUpload spools the upload to disk (the xlsx library wants a file)
// and decodes it by extension.
func decodeUpload(file io.Reader, name string) ([]importer.ImportRow, error) {
	tmp, err := os.CreateTemp("", "leads-upload-*"+filepath.Ext(name))
	if err != nil {
		return nil, eris.Wrap(err, "import: spool upload")
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return nil, eris.Wrap(err, "import: spool upload")
	}

	switch {
	case strings.HasSuffix(strings.ToLower(name), ".csv"):
		return sheet.ReadCSV(tmp.Name(), sheet.CSVOptions{Charset: cfg.Import.CSVCharset})
	case strings.HasSuffix(strings.ToLower(name), ".xlsx"):
		return sheet.ReadXLSX(tmp.Name(), sheet.Options{SheetName: cfg.Import.SheetName, SheetIndex: cfg.Import.SheetIndex})
	default:
		return nil, eris.Errorf("import: unsupported file type %q", name)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
