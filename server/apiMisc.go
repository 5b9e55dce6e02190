package server

import (
	"net/http"
	"time"

	"github.com/cyclopcam/www"
	"github.com/julienschmidt/httprouter"
)

// The health and test endpoints answer bare JSON, not the envelope, because
// uptime monitors expect a flat object.

func (s *Server) httpHealth(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	www.SendJSON(w, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) httpTest(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	www.SendJSON(w, map[string]any{
		"message":   "Backend funcionando!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
