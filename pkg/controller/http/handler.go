package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/utils/errutil"
	"github.com/secmon-lab/vantagepoint/pkg/utils/safe"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// dashboardResponse is an acquisition narrowed by filters plus headline stats
type dashboardResponse struct {
	*model.Acquisition
	Stats model.Stats `json:"stats"`
}

// eventsRequest carries an explicit event set, or a mode to acquire one
type eventsRequest struct {
	Mode     string         `json:"mode"`
	Events   []*model.Event `json:"events"`
	Question string         `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type refreshRequest struct {
	Mode string `json:"mode"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) liveEventsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.acquisition.LiveEvents(r.Context()))
}

func (s *Server) syntheticEventsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, &model.Acquisition{
		Source:  types.SourceSynthetic,
		Events:  s.acquisition.SyntheticEvents(r.Context()),
		Notices: []model.Notice{},
	})
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	mode, err := s.parseMode(q.Get("mode"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	filter, err := model.ParseEventFilter(q.Get("region"), q.Get("risk"), q.Get("category"), q.Get("commodity"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	acq := s.acquisition.Events(ctx, mode)
	acq.Events = filter.Apply(acq.Events)

	switch strings.ToLower(q.Get("format")) {
	case "", "json":
		writeJSON(w, r, http.StatusOK, dashboardResponse{
			Acquisition: acq,
			Stats:       model.Summarize(acq.Events),
		})
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="vantagepoint_events.csv"`)
		if err := model.WriteEventsCSV(w, acq.Events); err != nil {
			_ = errutil.Handle(ctx, err, "failed to write CSV response")
		}
	default:
		errutil.HandleHTTP(ctx, w, goerr.New("unsupported format", goerr.V("format", q.Get("format"))), http.StatusBadRequest)
	}
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	mode, err := s.parseMode(req.Mode)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	s.acquisition.Refresh(ctx, mode == types.DataModeSynthetic)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var ev model.Event
	if err := decodeJSON(r, &ev); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(ev.Headline) == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("headline is required"), http.StatusBadRequest)
		return
	}
	ev.Normalize()

	writeJSON(w, r, http.StatusOK, s.enrichment.AnalyzeEvent(ctx, &ev))
}

func (s *Server) briefHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, _, ok := s.requestEvents(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, s.enrichment.ExecutiveBrief(ctx, events))
}

func (s *Server) askHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	events, req, ok := s.requestEvents(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, askResponse{Answer: s.enrichment.Ask(ctx, events, req.Question)})
}

// requestEvents decodes an eventsRequest and resolves its event set. It
// writes the error response itself and reports false on failure.
func (s *Server) requestEvents(w http.ResponseWriter, r *http.Request) ([]*model.Event, *eventsRequest, bool) {
	ctx := r.Context()

	var req eventsRequest
	if err := decodeJSON(r, &req); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return nil, nil, false
	}
	if req.Events != nil {
		events := make([]*model.Event, 0, len(req.Events))
		for _, ev := range req.Events {
			if ev == nil {
				continue
			}
			ev.Normalize()
			events = append(events, ev)
		}
		return events, &req, true
	}

	mode, err := s.parseMode(req.Mode)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return nil, nil, false
	}
	return s.acquisition.Events(ctx, mode).Events, &req, true
}

func (s *Server) parseMode(v string) (types.DataMode, error) {
	if v == "" {
		return s.defaultMode, nil
	}
	mode, err := types.ParseDataMode(v)
	if err != nil {
		return "", goerr.Wrap(err, "invalid mode", goerr.V("mode", v))
	}
	return mode, nil
}

// decodeJSON reads a JSON body. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	defer safe.Close(r.Context(), r.Body)

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return goerr.Wrap(err, "invalid JSON request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
