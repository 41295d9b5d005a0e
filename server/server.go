package server

import (
	"errors"
	"net/http"

	c "github.com/d0ngw/counterd/common"
	"github.com/d0ngw/counterd/counter"
	chttp "github.com/d0ngw/counterd/http"
	"github.com/d0ngw/counterd/metrics"
	"github.com/d0ngw/counterd/rep"
)

// Server 计数服务,包含REP服务以及可选的http服务
type Server struct {
	Store    *counter.Store
	Router   *counter.Router
	Metrics  *metrics.Collector
	Rep      *rep.Service
	HTTP     *chttp.Service
	services *c.Services
}

// New 根据配置创建Server,所有组件共享同一个Store
func New(config *Config) (*Server, error) {
	if config == nil || config.Rep == nil {
		return nil, errors.New("invalid config")
	}
	store := counter.NewStore()
	collector := metrics.NewCollector(store)
	router := counter.NewRouter(store, collector)

	p := &Server{
		Store:   store,
		Router:  router,
		Metrics: collector,
		Rep:     rep.NewService(config.Rep, router),
	}
	services := []c.Service{p.Rep}

	if config.HTTP.Enabled() {
		httpConf := config.HTTP
		if err := httpConf.RegMiddleware(chttp.AccessLog); err != nil {
			return nil, err
		}
		if err := httpConf.RegController(chttp.NewCounterController(router), chttp.AllowMethods(http.MethodPost)); err != nil {
			return nil, err
		}
		if err := httpConf.RegHandler("/metrics", collector.Handler(), chttp.AllowMethods(http.MethodGet)); err != nil {
			return nil, err
		}
		p.HTTP = chttp.NewService(httpConf)
		services = append(services, p.HTTP)
	}
	p.services = c.NewServices(services...)
	return p, nil
}

// Start 初始化并启动所有服务
func (p *Server) Start() error {
	if !p.services.Init() {
		return errors.New("init services fail")
	}
	if !p.services.Start() {
		return errors.New("start services fail")
	}
	return nil
}

// Stop 停止所有服务
func (p *Server) Stop() {
	p.services.Stop()
}

// Run 启动服务并阻塞直到收到SIGINT或SIGTERM
func (p *Server) Run(hook *c.Shutdownhook) error {
	if err := p.Start(); err != nil {
		return err
	}
	hook.AddHook(p.Stop)
	hook.AddHook(c.SyncLog)
	hook.WaitShutdown()
	return nil
}
