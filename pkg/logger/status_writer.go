package logger

import "net/http"

// StatusWriter records the status code written through an http.ResponseWriter
// so middleware can log it after the handler runs.
type StatusWriter struct {
	http.ResponseWriter
	status int
}

func Wrap(w http.ResponseWriter) *StatusWriter {
	return &StatusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (sw *StatusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *StatusWriter) Status() int {
	return sw.status
}
