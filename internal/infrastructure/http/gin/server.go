package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ginlib "github.com/gin-gonic/gin"

	"github.com/Hala-ashour/Restaurant98/internal/config"
)

type Server struct {
	engine *ginlib.Engine
	http   *http.Server
}

// NewEngine returns a gin engine with panic recovery followed by mw.
func NewEngine(env string, mw ...ginlib.HandlerFunc) *ginlib.Engine {
	if env == "production" {
		ginlib.SetMode(ginlib.ReleaseMode)
	}
	r := ginlib.New()
	r.Use(ginlib.Recovery())
	r.Use(mw...)
	return r
}

func NewServer(cfg config.ServerConfig, engine *ginlib.Engine) *Server {
	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              cfg.Address(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Addr() string {
	return s.http.Addr
}

// Run blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Run() error {
	if s.engine == nil {
		return fmt.Errorf("gin engine is nil")
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
