package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/particlewire/internal/errors"
	"github.com/vango-dev/particlewire/pkg/broadcast"
	"github.com/vango-dev/particlewire/pkg/mapping"
	"github.com/vango-dev/particlewire/pkg/particle"
	"github.com/vango-dev/particlewire/pkg/telemetry"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

// Options configures a Server.
type Options struct {
	// Encoder encodes requests; its catalog fixes the version.
	Encoder *telemetry.Encoder

	// Table is the mapping table the catalog was loaded from.
	Table mapping.Table

	// Hub and Manager deliver packets. Both are required.
	Hub     *broadcast.Hub
	Manager *broadcast.Manager

	// Metrics is optional. Gatherer serves /metrics when set.
	Metrics     *telemetry.Metrics
	Gatherer    prometheus.Gatherer
	MetricsPath string

	// TracerName names the HTTP server spans.
	TracerName string

	Logger *slog.Logger
}

// Server is the particlewire HTTP API.
type Server struct {
	enc     *telemetry.Encoder
	catalog *particle.Catalog
	table   mapping.Table
	hub     *broadcast.Hub
	manager *broadcast.Manager
	logger  *slog.Logger
	router  chi.Router
}

// New builds the server and its routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		enc:     opts.Encoder,
		catalog: opts.Encoder.Unwrap().Catalog(),
		table:   opts.Table,
		hub:     opts.Hub,
		manager: opts.Manager,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.HTTP(opts.Metrics, opts.TracerName))

	r.Get("/healthz", s.health)
	if opts.Gatherer != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/effects", s.listEffects)
		r.Get("/mappings", s.listMappings)
		r.Post("/encode", s.encode)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasks)
			r.Post("/", s.startTask)
			r.Delete("/{id}", s.stopTask)
		})

		r.Get("/endpoints", s.listEndpoints)
	})
	r.Handle("/ws", s.hub)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Shutdown stops every task and closes every viewer connection.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.manager.Shutdown(ctx)
	s.hub.Close()
	return err
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.catalog.Version().String(),
		"tier":    s.catalog.Tier().String(),
	})
}

// EffectInfo describes one effect at the server's version.
type EffectInfo struct {
	Name         string   `json:"name"`
	Wire         string   `json:"wire"`
	Handle       string   `json:"handle,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Effects lists the effects available at cat's version.
func Effects(cat *particle.Catalog) []EffectInfo {
	available := cat.Available()
	infos := make([]EffectInfo, 0, len(available))
	for _, e := range available {
		wire, _ := cat.WireName(e)
		info := EffectInfo{
			Name:         e.String(),
			Wire:         wire,
			Capabilities: e.Describe().Caps.Names(),
		}
		if h, ok := cat.ResolveHandle(e); ok {
			info.Handle = h.String()
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *Server) listEffects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Effects(s.catalog))
}

// MappingInfo is a resolved mapping name.
type MappingInfo struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func (s *Server) listMappings(w http.ResponseWriter, _ *http.Request) {
	reg := s.catalog.Registry()
	names := reg.Names()
	out := make([]MappingInfo, 0, len(names))
	for _, name := range names {
		sym, _ := reg.Resolve(name)
		out = append(out, MappingInfo{Name: name, Symbol: sym})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"version":  reg.Version().String(),
		"records":  len(s.table),
		"resolved": out,
	})
}

func (s *Server) encode(w http.ResponseWriter, r *http.Request) {
	var body EncodeRequest
	if !s.decode(w, r, &body) {
		return
	}
	req, err := body.Request()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	pkt, err := s.enc.Encode(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, notEncodable(err))
		return
	}
	writeJSON(w, http.StatusOK, NewPacketResponse(s.catalog, req, pkt))
}

// TaskRequest starts a repeating delivery. Packets are either encoded from
// Requests or given pre-encoded in Frames (base64).
type TaskRequest struct {
	Requests []EncodeRequest `json:"requests,omitempty"`
	Frames   []string        `json:"frames,omitempty"`

	// Endpoints limits delivery to these ids; World to one world. Both
	// empty means every connected endpoint.
	Endpoints []string `json:"endpoints,omitempty"`
	World     string   `json:"world,omitempty"`

	Ticks  int `json:"ticks"`
	Repeat int `json:"repeat,omitempty"`
}

func (t TaskRequest) audience() broadcast.Audience {
	switch {
	case len(t.Endpoints) > 0:
		return broadcast.Only(t.Endpoints...)
	case t.World != "":
		return broadcast.InWorld(t.World)
	}
	return broadcast.Everyone()
}

func (s *Server) startTask(w http.ResponseWriter, r *http.Request) {
	var body TaskRequest
	if !s.decode(w, r, &body) {
		return
	}

	frames := make([][]byte, 0, len(body.Requests)+len(body.Frames))
	for i, er := range body.Requests {
		req, err := er.Request()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		frame, err := s.enc.EncodeBytes(r.Context(), req)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity,
				notEncodable(err).WithDetail("Request "+strconv.Itoa(i)+" produced no packet."))
			return
		}
		frames = append(frames, frame)
	}
	for _, f := range body.Frames {
		frame, err := base64.StdEncoding.DecodeString(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New(errors.CodePayloadInvalid).Wrap(err))
			return
		}
		frames = append(frames, frame)
	}

	id, err := s.manager.Start(broadcast.Task{
		Frames:   frames,
		Audience: body.audience(),
		Ticks:    body.Ticks,
		Repeat:   body.Repeat,
	})
	if err != nil {
		status := http.StatusBadRequest
		if stderrors.Is(err, broadcast.ErrClosed) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, errors.New(errors.CodeTaskRejected).Wrap(err))
		return
	}

	s.logger.Info("task started", "task", id, "frames", len(frames), "ticks", body.Ticks)
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) listTasks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.Running())
}

func (s *Server) stopTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeTaskRejected).
			WithDetail("Task ids are positive integers."))
		return
	}
	if !s.manager.Stop(broadcast.TaskID(id)) {
		writeError(w, http.StatusNotFound, errors.Newf(errors.CategoryServer, "task %d is not running", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEndpoints(w http.ResponseWriter, _ *http.Request) {
	type endpoint struct {
		ID    string `json:"id"`
		World string `json:"world,omitempty"`
	}
	eps := s.hub.Endpoints()
	out := make([]endpoint, 0, len(eps))
	for _, e := range eps {
		out = append(out, endpoint{ID: e.ID(), World: e.World()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodePayloadInvalid).
			WithDetail("The request body is not valid JSON: "+err.Error()))
		return false
	}
	return true
}

// notEncodable wraps an encode failure under E122 with its reason.
func notEncodable(err error) *errors.Error {
	return errors.New(errors.CodeNotEncodable).
		WithSuggestion("Reason: " + particle.ReasonOf(err)).
		Wrap(err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]error{"error": errors.FromError(err, errors.CodePayloadInvalid)})
}
