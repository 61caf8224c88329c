package errors

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// LogError records a request-scoped error with its request ID for debugging.
func LogError(r *http.Request, message string, err error) {
	requestID := middleware.GetReqID(r.Context())

	if requestID != "" {
		log.Printf("[ERROR] RequestID=%s: %s: %v", requestID, message, err)
	} else {
		log.Printf("[ERROR] %s: %v", message, err)
	}
}

// LogWarn records a rejected request (validation, resolution, bad input).
func LogWarn(r *http.Request, message string, err error) {
	requestID := middleware.GetReqID(r.Context())

	if requestID != "" {
		log.Printf("[WARN] RequestID=%s: %s: %v", requestID, message, err)
	} else {
		log.Printf("[WARN] %s: %v", message, err)
	}
}

// LogInfo records request-scoped informational messages.
func LogInfo(r *http.Request, message string) {
	requestID := middleware.GetReqID(r.Context())

	if requestID != "" {
		log.Printf("[INFO] RequestID=%s: %s", requestID, message)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogErrorBare records an error outside any request context.
func LogErrorBare(message string, err error) {
	log.Printf("[ERROR] %s: %v", message, err)
}
