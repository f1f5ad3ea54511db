package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"yt-summarizer/shared/config"
	"yt-summarizer/shared/monitoring"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds request bodies, which may carry a full transcript.
const maxBodyBytes = 4 << 20

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func NewServer(cfg *config.Config, summarizer Summarizer, monitor *monitoring.Monitor) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())
	engine.Use(MaxBodySize(maxBodyBytes))
	if len(cfg.Server.CORSOrigins) > 0 {
		engine.Use(CORS(cfg.Server.CORSOrigins))
	}

	registerRoutes(engine, NewAPI(cfg, summarizer), monitor)

	return &Server{engine: engine, cfg: cfg}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Web server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down web server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
