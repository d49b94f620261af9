package viz

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/julienschmidt/httprouter"
)

// Server exposes registered Producers over HTTP: an index of plots at
// / and the rendered PNGs at /plot/:name.  Plots are rendered on
// demand, so an unwatched server costs nothing.
type Server struct {
	srv       *http.Server
	mu        sync.RWMutex
	producers map[string]Producer
}

func NewServer(port int) *Server {
	return &Server{
		srv:       &http.Server{Addr: fmt.Sprintf(":%d", port)},
		producers: make(map[string]Producer),
	}
}

func (s *Server) Register(p Producer) {
	s.mu.Lock()
	s.producers[p.Name()] = p
	s.mu.Unlock()
}

func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}

func (s *Server) Run(ctx context.Context) error {
	handler := httprouter.New()

	handler.GET("/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		s.mu.RLock()
		names := make([]string, 0, len(s.producers))
		for name := range s.producers {
			names = append(names, name)
		}
		s.mu.RUnlock()
		sort.Strings(names)

		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>pulsedec</title></head><body style='background-color: black'>`))
		for _, name := range names {
			w.Write([]byte(fmt.Sprintf(`<img src="/plot/%s">`, name)))
		}
		w.Write([]byte(`</body></html>`))
	})

	handler.GET("/plot/:name", func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		s.mu.RLock()
		p, ok := s.producers[params.ByName("name")]
		s.mu.RUnlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		img := p.GetImage()
		if img == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(img.data)
	})

	s.srv.Handler = handler

	go func() {
		<-ctx.Done()
		s.srv.Shutdown(context.Background())
	}()

	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
