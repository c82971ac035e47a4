// Package httpapi exposes the orchestrator over HTTP: request
// decoding, response encoding, and route mapping from internal
// failure kinds to status codes (spec §6).
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/apperr"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/logger"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/routing/mode"
)

// Planner is the subset of Orchestrator the handler depends on.
type Planner interface {
	Plan(ctx context.Context, start, end routing.Waypoint, m mode.Mode) (routing.Route, error)
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// RouteHandler handles POST /route.
func RouteHandler(p Planner, base *zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := logger.FromContext(ctx, base)

		var req routeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "", "invalid request body: "+err.Error())
			return
		}

		m, err := mode.Parse(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, "", err.Error())
			return
		}
		ctx = logger.WithMode(ctx, string(m))

		start := routing.Waypoint{Lat: req.Start.Lat, Lon: req.Start.Lon, Name: req.Start.Name, Type: routing.WaypointDeparture}
		end := routing.Waypoint{Lat: req.End.Lat, Lon: req.End.Lon, Name: req.End.Name, Type: routing.WaypointArrival}

		route, err := p.Plan(ctx, start, end, m)
		if err != nil {
			if ae, ok := apperr.As(err); ok {
				l.Warn().Err(err).Str("kind", string(ae.Kind)).Msg("route planning failed")
				writeError(w, apperr.HTTPStatus(ae.Kind), ae.Kind, ae.Error())
				return
			}
			l.Error().Err(err).Msg("route planning failed with unclassified error")
			writeError(w, http.StatusInternalServerError, "", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toResponse(route, m))
	}
}

func writeError(w http.ResponseWriter, status int, kind apperr.Kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Kind: string(kind)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
