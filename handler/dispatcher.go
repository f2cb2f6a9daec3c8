// Package handler resolves client requests to route handlers and renders
// their JSON responses. The same Dispatcher serves the gin HTTP server and
// the AWS Lambda API Gateway entry point.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Request is the transport-neutral form of an incoming call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   io.Reader
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// HandlerFunc returns the status and payload to render. A non-nil error is
// turned into a 500 by the dispatcher.
type HandlerFunc func(ctx context.Context, req *Request) (int, any, error)

// Route matches on Path or on the legacy ?rota=Name parameter, and on Method.
type Route struct {
	Name   string
	Path   string
	Method string
	Handle HandlerFunc
}

type Dispatcher struct {
	routes  []Route
	timeout time.Duration
}

func NewDispatcher(timeout time.Duration, routes ...Route) *Dispatcher {
	return &Dispatcher{routes: routes, timeout: timeout}
}

func corsHeaders() http.Header {
	h := http.Header{}
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
	return h
}

func (d *Dispatcher) match(req *Request) *Route {
	rota := req.Query.Get("rota")
	for i := range d.routes {
		r := &d.routes[i]
		if r.Method != req.Method {
			continue
		}
		if r.Path == req.Path || (rota != "" && rota == r.Name) {
			return r
		}
	}
	return nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, req *Request) *Response {
	if req.Query == nil {
		req.Query = url.Values{}
	}
	if req.Body == nil {
		req.Body = http.NoBody
	}

	if req.Method == http.MethodOptions {
		return &Response{Status: http.StatusNoContent, Header: corsHeaders()}
	}

	route := d.match(req)
	if route == nil {
		return render(http.StatusNotFound, map[string]string{"erro": "Rota não encontrada."})
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	status, payload, err := call(ctx, route, req)
	if err != nil {
		log.Printf("❌ %s %s failed: %v", req.Method, req.Path, err)
		return render(http.StatusInternalServerError, map[string]string{
			"erro":    "Erro interno no servidor.",
			"detalhe": err.Error(),
		})
	}
	return render(status, payload)
}

func call(ctx context.Context, route *Route, req *Request) (status int, payload any, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, payload, err = 0, nil, fmt.Errorf("panic in %s: %v", route.Name, r)
		}
	}()
	return route.Handle(ctx, req)
}

func render(status int, payload any) *Response {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
		buf.Reset()
		status = http.StatusInternalServerError
		buf.WriteString(`{"erro": "Erro interno no servidor."}`)
	}

	h := corsHeaders()
	h.Set("Content-Type", "application/json; charset=utf-8")
	return &Response{Status: status, Header: h, Body: bytes.TrimRight(buf.Bytes(), "\n")}
}
