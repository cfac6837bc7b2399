package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aapris/weatherlamp/internal/core/observability"
	"github.com/aapris/weatherlamp/internal/logger"
	"github.com/aapris/weatherlamp/internal/orchestrator"
)

type errorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}

// NewHandler builds the forecast endpoint handler: parse, orchestrate,
// encode.
func NewHandler(orch *orchestrator.Orchestrator, base zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		// request_id is attached to ctx by the logging middleware
		ctx := logger.WithComponent(r.Context(), "httpapi")
		log := logger.FromContext(ctx, &base)

		specs, opts, err := ParseRequest(r)
		if err != nil {
			writeValidationError(w, err)
			observability.ObserveHTTP(r.Method, r.URL.Path, http.StatusBadRequest, time.Since(start).Seconds())
			return
		}

		results, err := orch.Run(ctx, specs)
		if err != nil {
			log.Error().Err(err).Msg("orchestrator failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			observability.ObserveHTTP(r.Method, r.URL.Path, http.StatusInternalServerError, time.Since(start).Seconds())
			return
		}

		for _, res := range results {
			observability.IncSegmentDataStatus(string(res.DataStatus))
			for _, slot := range res.Slots {
				observability.IncClassificationBucket(slot.WLSymbol)
			}
		}

		if err := WriteResponse(w, opts, results); err != nil {
			log.Error().Err(err).Msg("encode response failed")
			http.Error(w, "internal server error", http.StatusInternalServerError)
			observability.ObserveHTTP(r.Method, r.URL.Path, http.StatusInternalServerError, time.Since(start).Seconds())
			return
		}
		observability.ObserveHTTP(r.Method, r.URL.Path, http.StatusOK, time.Since(start).Seconds())
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	var body errorBody
	if ve, ok := err.(*ValidationError); ok {
		body = errorBody{ErrorCode: ve.Code, Message: ve.Message, Details: ve.Details}
	} else {
		body = errorBody{ErrorCode: ErrInvalidFormat, Message: err.Error()}
	}
	_ = json.NewEncoder(w).Encode(body)
}
