// Package server exposes the evaluation engine over websocket. Each text
// message is one independent batch run: the client sends a raw CSV grid and
// receives a JSON envelope with the evaluated CSV or a request-level error.
package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/witanlabs/sheetcalc/engine"
	"github.com/witanlabs/sheetcalc/gridio"
)

// maxMessageBytes bounds one grid message. A full 500,000-cell grid of
// 100-token expressions stays well under this.
const maxMessageBytes = 64 << 20

// EvalEnvelope is the reply sent for each evaluation request.
type EvalEnvelope struct {
	Ok     bool       `json:"ok"`
	Output string     `json:"output,omitempty"`
	Error  *EvalError `json:"error,omitempty"`
}

// EvalError describes a request-level failure: the grid itself could not be
// evaluated. Per-cell errors are data and render inside Output.
type EvalError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server evaluates spreadsheet grids received over websocket connections.
type Server struct {
	mux *http.ServeMux
}

// New creates a configured evaluation server.
func New() *Server {
	s := &Server{mux: http.NewServeMux()}
	s.mux.HandleFunc("/v0/eval", s.handleEval)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("websocket accept: %v", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "server error")
	c.SetReadLimit(maxMessageBytes)

	ctx := r.Context()
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				c.Close(websocket.StatusNormalClosure, "")
			}
			return
		}
		reply, err := json.Marshal(evalMessage(data))
		if err != nil {
			log.Printf("marshaling reply: %v", err)
			return
		}
		if err := c.Write(ctx, websocket.MessageText, reply); err != nil {
			return
		}
	}
}

// evalMessage runs one batch evaluation over the message body. Runs share
// no state: every message gets a fresh sheet.
func evalMessage(data []byte) EvalEnvelope {
	grid, err := gridio.Read(bytes.NewReader(data))
	if err != nil {
		return EvalEnvelope{Error: &EvalError{Code: "INVALID_GRID", Message: err.Error()}}
	}
	sheet := engine.NewSheet(grid)
	var out bytes.Buffer
	if err := gridio.WriteTo(&out, sheet.RenderAll()); err != nil {
		return EvalEnvelope{Error: &EvalError{Code: "RENDER_FAILED", Message: err.Error()}}
	}
	return EvalEnvelope{Ok: true, Output: out.String()}
}
