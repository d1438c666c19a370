package middleware

import (
	"net/http"
)

const (
	// JSONMaxBodySize caps JSON request bodies at 1MB.
	JSONMaxBodySize int64 = 1 << 20

	// UploadMaxBodySize caps multipart upload bodies at 10MB.
	UploadMaxBodySize int64 = 10 << 20
)

// RequestSize limits the size of incoming request bodies.
//
// It wraps the request body with http.MaxBytesReader to enforce the limit.
// If the body exceeds maxBytes, reads fail and the handler returns an error.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}

// JSONRequestSize limits request bodies to 1MB for JSON endpoints.
func JSONRequestSize() func(http.Handler) http.Handler {
	return RequestSize(JSONMaxBodySize)
}

// UploadRequestSize limits request bodies to 10MB for upload endpoints.
func UploadRequestSize() func(http.Handler) http.Handler {
	return RequestSize(UploadMaxBodySize)
}
