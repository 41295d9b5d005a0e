package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	c "github.com/d0ngw/counterd/common"
	"golang.org/x/net/netutil"
)

type tcpKeepAliveListener struct {
	*net.TCPListener
}

// Accept 接受连接并开启keepalive
func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err = tc.SetKeepAlive(true); err != nil {
		return nil, err
	}
	if err = tc.SetKeepAlivePeriod(3 * time.Minute); err != nil {
		return nil, err
	}
	return tc, nil
}

// Service Http服务
type Service struct {
	c.BaseService
	Conf     *Config
	handler  http.Handler
	listener net.Listener
	server   *http.Server
	served   chan struct{}
	log      *c.Logger
	lock     sync.Mutex
}

// NewService 创建Http服务
func NewService(conf *Config) *Service {
	return &Service{
		BaseService: c.BaseService{SName: "http", Order: 1},
		Conf:        conf,
	}
}

// Init 初始化Http服务
func (p *Service) Init() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.Conf == nil {
		return errors.New("Conf must be set")
	}
	if err := p.Conf.Parse(); err != nil {
		return err
	}
	if p.Conf.Addr == "" {
		p.Conf.Addr = ":http"
	}
	p.log = c.NamedLogger("http", "addr", p.Conf.Addr)

	serveMux := http.NewServeMux()
	for pattern, handler := range p.Conf.handles {
		if handler.handlerFunc == nil {
			return fmt.Errorf("Can't bind nil handlerFunc to path %s", pattern)
		}
		serveMux.Handle(pattern, p.handleWithMiddleware(handler))
	}
	p.handler = serveMux
	return nil
}

// handleWithMiddleware 依次调用各个middleware
func (p *Service) handleWithMiddleware(handler *handlerWithMiddleware) http.HandlerFunc {
	originHandler := func(w http.ResponseWriter, r *http.Request) {
		if err, ok := ErrorFromRequestContext(r); ok {
			p.log.Warnf("stop handle %s,cause by error:%s", r.RequestURI, err)
		} else {
			handler.handlerFunc(w, r)
		}
	}

	var middlewares []Middleware
	middlewares = append(middlewares, handler.middlewares...)
	middlewares = append(middlewares, p.Conf.middlewares...)

	h := originHandler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i].Handle(h)
	}
	return h
}

// Start 启动Http服务,开始端口监听和服务处理
func (p *Service) Start() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	ln, err := net.Listen("tcp", p.Conf.Addr)
	if err != nil {
		p.log.Errorf("Listen fail,error:%v", err)
		return false
	}
	p.log.Infof("Http listen at %s", ln.Addr())

	var listener net.Listener = tcpKeepAliveListener{ln.(*net.TCPListener)}
	if p.Conf.MaxConns > 0 {
		listener = netutil.LimitListener(listener, p.Conf.MaxConns)
	}

	// http.Server在Shutdown之后不能再次使用,每次启动创建新的
	server := &http.Server{
		Handler:      p.handler,
		ReadTimeout:  time.Duration(p.Conf.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(p.Conf.WriteTimeout) * time.Second,
	}
	served := make(chan struct{})
	go func() {
		defer close(served)
		err := server.Serve(listener)
		level := c.Error
		if errors.Is(err, http.ErrServerClosed) {
			level = c.Info
		}
		p.log.Logf(level, "server.Serve return with %v", err)
	}()

	p.listener = listener
	p.server = server
	p.served = served
	return true
}

// Addr 返回实际监听的地址,未启动时返回nil
func (p *Service) Addr() net.Addr {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}

// Stop 停止接受新的连接和请求,等待正在处理的请求完成,最长等待ShutdownTimeout
func (p *Service) Stop() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server == nil {
		return true
	}

	p.log.Infof("Waiting http shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), p.Conf.shutdownTimeout())
	defer cancel()
	ok := true
	if err := p.server.Shutdown(ctx); err != nil {
		p.log.Warnf("Shutdown error:%v,close all connections", err)
		_ = p.server.Close()
		ok = false
	}
	<-p.served
	p.log.Infof("Finish http shutdown")

	p.listener = nil
	p.server = nil
	p.served = nil
	return ok
}
