package server

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"github.com/cwbudde/curvefit"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// toResponse converts a fit result into its JSON representation.
// Standard errors that came out as NaN are encoded as null since
// encoding/json rejects NaN values.
func toResponse(res *curvefit.Result) *FitResponse {
	params := res.Params()
	out := make([]ParamJSON, len(params))
	for i, p := range params {
		pj := ParamJSON{
			Name:   p.Name,
			Value:  p.Value,
			Frozen: p.Frozen,
		}
		if !math.IsNaN(p.Stderr) {
			stderr := p.Stderr
			pj.Stderr = &stderr
		}
		out[i] = pj
	}

	return &FitResponse{
		Params:     out,
		Cost:       res.Cost(),
		Loss:       res.Loss().Name(),
		Iterations: res.Iterations(),
		Rendered:   res.String(),
	}
}
