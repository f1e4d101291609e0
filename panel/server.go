package panel

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/lixenwraith/orrery/pick"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server hosts the feed and the metrics endpoint
type Server struct {
	addr    string
	hub     *Hub
	metrics *Metrics
	hover   *hoverGate

	srv    *http.Server
	ln     net.Listener
	cancel context.CancelFunc
}

var _ pick.InfoSink = (*Server)(nil)

// NewServer creates a server for addr; metrics may be nil
func NewServer(addr string, m *Metrics) *Server {
	hub := NewHub(m)
	return &Server{
		addr:    addr,
		hub:     hub,
		metrics: m,
		hover:   newHoverGate(hub.Publish),
	}
}

// handler builds the route table: /ws and /metrics
func (s *Server) handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("panel: upgrade failed: %v", err)
			return
		}
		s.hub.serve(ctx, conn)
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// Start listens and serves in the background until Close or ctx ends
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "panel listen %s", s.addr)
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.handler(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.hub.Run(ctx)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("panel: serve: %v", err)
		}
	}()
	log.Printf("panel: listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Close stops the hub and the listener
func (s *Server) Close(ctx context.Context) error {
	s.hover.stop()
	if s.cancel != nil {
		s.cancel()
	}
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) ShowInfo(r pick.SelectRecord) { s.hub.Publish(SelectRecord(r)) }
func (s *Server) HideInfo()                    { s.hub.Publish(HideRecord(TargetInfo)) }
func (s *Server) HideLabel()                   { s.hover.hide() }

// ShowLabel publishes hover records at a bounded rate, coalescing bursts to the latest
func (s *Server) ShowLabel(r pick.HoverRecord) { s.hover.show(HoverRecord(r)) }
