// Package web provides the HTTP server of the SGI panel: routing, session
// handling and the controller wiring.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"sgi-panel/config"
	"sgi-panel/logger"
	"sgi-panel/util/common"
	"sgi-panel/util/random"
	"sgi-panel/web/controller"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Server is the panel's web server with its controllers.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	catalog *controller.CatalogController
	auth    *controller.AuthController
	panel   *controller.PanelController

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	// the session cookie key is per-process; restarting logs everyone out
	store := cookie.NewStore([]byte(random.Seq(32)))
	engine.Use(sessions.Sessions("sgi-panel", store))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	g := engine.Group(config.GetBasePath())

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": config.GetVersion()})
	})

	s.auth = controller.NewAuthController(g)
	s.panel = controller.NewPanelController(g)
	// the generic catalog routes go last; their :entity parameter sits
	// next to the static /auth and /panel prefixes
	s.catalog = controller.NewCatalogController(g)

	return engine, nil
}

func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	s.listener = listener

	logger.Infof("web server running on %s", listener.Addr())

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		defer common.Recover("web server serve")
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server serve failed:", err)
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		if lerr := s.listener.Close(); lerr != nil && err == nil {
			err = lerr
		}
	}
	return err
}

func (s *Server) GetCtx() context.Context {
	return s.ctx
}
