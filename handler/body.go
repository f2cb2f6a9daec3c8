package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

// ErrMalformedBody is returned for bodies that are not a JSON object.
var ErrMalformedBody = errors.New("malformed request body")

type payload map[string]any

// readBody decodes a JSON object. An empty body decodes to an empty payload.
func readBody(r io.Reader) (payload, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, ErrMalformedBody
	}
	if len(data) > maxBodyBytes {
		return nil, ErrMalformedBody
	}
	if len(data) == 0 {
		return payload{}, nil
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil || p == nil {
		return nil, ErrMalformedBody
	}
	return p, nil
}

// str returns the value under key when it is a string, "" otherwise.
func (p payload) str(key string) string {
	s, _ := p[key].(string)
	return s
}

func clientError(status int, message string) (int, any, error) {
	return status, map[string]string{"error": message}, nil
}

func malformedBody() (int, any, error) {
	return clientError(http.StatusBadRequest, "Corpo inválido")
}
