// Package respond writes the {"status","body","error"} envelope every command
// prints on stdout.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrAborted is returned by a command that already printed its error
// envelope. main only needs the exit code.
var ErrAborted = errors.New("aborted")

type Envelope struct {
	Status int     `json:"status"`
	Body   any     `json:"body"`
	Error  *string `json:"error"`
}

type Body map[string]any

func write(w io.Writer, envelope Envelope) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(envelope)
}

func OK(w io.Writer, body any) error {
	if body == nil {
		body = Body{}
	}
	return write(w, Envelope{Status: http.StatusOK, Body: body})
}

// Abort prints an error envelope and returns ErrAborted wrapped with message.
func Abort(w io.Writer, status int, message string) error {
	if err := write(w, Envelope{Status: status, Body: Body{}, Error: &message}); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrAborted, message)
}

func BadRequest(w io.Writer, message string) error {
	return Abort(w, http.StatusBadRequest, message)
}

func Unauthorized(w io.Writer, message string) error {
	return Abort(w, http.StatusUnauthorized, message)
}

func Forbidden(w io.Writer, message string) error {
	return Abort(w, http.StatusForbidden, message)
}

func NotFound(w io.Writer, message string) error {
	return Abort(w, http.StatusNotFound, message)
}

func Conflict(w io.Writer, message string) error {
	return Abort(w, http.StatusConflict, message)
}

func InternalError(w io.Writer) error {
	return Abort(w, http.StatusInternalServerError, "Internal Server Error")
}
