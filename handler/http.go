package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server is the long-running HTTP transport. Every request, OPTIONS included,
// is handed to the Dispatcher so path and ?rota= routing stay in one place.
type Server struct {
	dispatcher *Dispatcher
	router     *gin.Engine
}

func NewServer(dispatcher *Dispatcher) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{
		dispatcher: dispatcher,
		router:     router,
	}
	router.NoRoute(s.handleAll)

	return s
}

func (s *Server) handleAll(c *gin.Context) {
	resp := s.dispatcher.Dispatch(c.Request.Context(), &Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Body:   c.Request.Body,
	})

	for key, values := range resp.Header {
		for _, v := range values {
			c.Writer.Header().Add(key, v)
		}
	}
	if resp.Status == http.StatusNoContent {
		c.Status(resp.Status)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(resp.Status, resp.Header.Get("Content-Type"), resp.Body)
}

// Handler exposes the router for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}
