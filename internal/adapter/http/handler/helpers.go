package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"

	"github.com/easygen/auth-service/internal/domain/types"
	"github.com/easygen/auth-service/internal/service/auth"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return errors.New("failed to encode json")
	}

	js = append(js, '\n')

	maps.Copy(w.Header(), headers)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	// Limit the size of the request body to 1MB.
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	// Decode the request body to the destination.
	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")

		// Decode() reports unknown fields with a string-prefixed error;
		// there is no distinct error type for this yet (golang/go#29035).
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			return fmt.Errorf("invalid unmarshal error: %w", err)
		default:
			return err
		}
	}

	// A second Decode() call must return io.EOF, otherwise the body held
	// more than a single JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// GetCode maps workflow errors onto HTTP status codes. Token failures of any
// kind surface uniformly as 401; the distinction between expired and tampered
// lives only in logs.
func GetCode(err error) int {
	switch {
	case IsOneOf(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case IsOneOf(err, auth.ErrTokenExpired, auth.ErrTokenInvalid, auth.ErrTokenMalformed):
		return http.StatusUnauthorized
	case IsOneOf(err, auth.ErrAlreadyRegistered, types.ErrDuplicateUser):
		return http.StatusConflict
	case IsOneOf(err, types.ErrUserNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func IsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// GetMessage returns the client-facing message for an error. Unauthorized and
// internal failures get generic messages so nothing sensitive leaks.
func GetMessage(err error) string {
	switch GetCode(err) {
	case http.StatusUnauthorized:
		if IsOneOf(err, auth.ErrInvalidCredentials) {
			return auth.ErrInvalidCredentials.Error()
		}
		return "unauthorized"
	case http.StatusInternalServerError:
		return "the server encountered a problem and could not process your request"
	default:
		return err.Error()
	}
}
