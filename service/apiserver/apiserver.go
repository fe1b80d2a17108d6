package apiserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo"
	"github.com/meverselabs/dmcexchange/core/types"
)

// APIServer provides json rpc and web service for the chain
type APIServer struct {
	types.ServiceBase
	sync.Mutex
	e        *echo.Echo
	subMap   map[string]*JRPCSub
	reqCh    chan *reqData
	workers  int
	initOnce sync.Once
}

// NewAPIServer returns a APIServer
func NewAPIServer(workers int) *APIServer {
	if workers <= 0 {
		workers = 50
	}
	s := &APIServer{
		e:       echo.New(),
		subMap:  map[string]*JRPCSub{},
		reqCh:   make(chan *reqData),
		workers: workers,
	}
	s.e.HideBanner = true
	return s
}

// Name returns the name of the service
func (s *APIServer) Name() string {
	return "dmcexchange.apiserver"
}

// Handler returns the http handler of the endpoints
func (s *APIServer) Handler() http.Handler {
	s.initOnce.Do(s.setup)
	return s.e
}

// Run starts web service of the apiserver
func (s *APIServer) Run(BindAddress string) error {
	s.initOnce.Do(s.setup)
	if err := s.e.Start(BindAddress); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops the web service
func (s *APIServer) Close() error {
	return s.e.Shutdown(context.Background())
}
