package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/machine-events/internal/api/v1"
	httperr "github.com/aevon-lab/machine-events/internal/core/errors"
	"github.com/aevon-lab/machine-events/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgInvalidJSON      = "Invalid JSON body: expected an array of events"
	msgBodyTooLarge     = "Request body exceeds maximum allowed size"
	msgBatchTooLarge    = "Batch exceeds maximum number of events"
	msgStoreUnavailable = "Event store unavailable, batch not applied"
	msgLockWaitAborted  = "Batch abandoned while waiting for event locks"
	msgEventNotFound    = "Event not found"
	msgLookupFailed     = "Failed to look up event"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestBatchHandler handles POST /events/batch.
func (s *Service) IngestBatchHandler(c *gin.Context) {
	events, payloadSize, ierr := s.parseBatch(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	slog.Debug("[Ingestion] Received batch", "batch_size", len(events), "payload_size", payloadSize)

	resp, err := s.engine.ProcessBatch(c.Request.Context(), events)
	if err != nil {
		writeError(c, batchError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// parseBatch reads the bounded body, decodes the event array and stamps
// receivedTime on every event that arrived without one.
func (s *Service) parseBatch(c *gin.Context) ([]v1.EventRequest, int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    msgBodyTooLarge,
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	var events []v1.EventRequest
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&events); err != nil {
		slog.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	if len(events) > s.maxBatchSize {
		slog.Warn("[Ingestion] Batch exceeds maximum size", "batch_size", len(events), "max", s.maxBatchSize)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    msgBatchTooLarge,
			details: map[string]interface{}{
				"max_batch_size": s.maxBatchSize,
			},
		}
	}

	received := v1.NormalizeTime(s.nowFn())
	for i := range events {
		if events[i].ReceivedTime == nil {
			stamp := received
			events[i].ReceivedTime = &stamp
		}
	}

	return events, len(bodyBytes), nil
}

// GetEventHandler handles GET /events/:event_id.
func (s *Service) GetEventHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	evt, err := s.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(c, &ingestionError{
				statusCode: http.StatusNotFound,
				errorType:  httperr.HttpEventNotFoundError,
				message:    msgEventNotFound,
				details:    map[string]interface{}{"event_id": eventID},
			})
			return
		}

		slog.Error("[Ingestion] Event lookup failed", "error", err, "event_id", eventID)
		writeError(c, &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpStoreUnavailableError,
			message:    msgLookupFailed,
		})
		return
	}

	c.JSON(http.StatusOK, evt)
}

func batchError(err error) *ingestionError {
	switch {
	case errors.Is(err, ErrStore):
		return &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpStoreUnavailableError,
			message:    msgStoreUnavailable,
		}
	case errors.Is(err, ErrLockWait):
		return &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpInternalError,
			message:    msgLockWaitAborted,
		}
	default:
		slog.Error("[Ingestion] Unexpected batch failure", "error", err)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    err.Error(),
		}
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
