// Package http 提供计数服务的http接口以及指标输出
package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	c "github.com/d0ngw/counterd/common"
)

// Config Http配置
type Config struct {
	Addr            string `yaml:"addr"`             //Http监听地址,为空时不启动http服务
	ReadTimeout     int    `yaml:"read_timeout"`     //读超时,单位秒
	WriteTimeout    int    `yaml:"write_timeout"`    //写超时,单位秒
	MaxConns        int    `yaml:"max_conns"`        //最大的并发连接数
	ShutdownTimeout int    `yaml:"shutdown_timeout"` //停止时等待请求完成的时间,单位秒
	middlewares     []Middleware
	handles         map[string]*handlerWithMiddleware
	lock            sync.Mutex
}

// DefaultShutdownTimeout 默认的停止等待时间
const DefaultShutdownTimeout = 10 * time.Second

// NewConfig 创建配置
func NewConfig(addr string) *Config {
	return &Config{Addr: addr}
}

// Parse implements common.Configurer
func (p *Config) Parse() error {
	p.Addr = strings.TrimSpace(p.Addr)
	if p.ReadTimeout < 0 || p.WriteTimeout < 0 || p.MaxConns < 0 || p.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid http config,read_timeout:%d,write_timeout:%d,max_conns:%d,shutdown_timeout:%d",
			p.ReadTimeout, p.WriteTimeout, p.MaxConns, p.ShutdownTimeout)
	}
	return nil
}

func (p *Config) shutdownTimeout() time.Duration {
	if p.ShutdownTimeout > 0 {
		return time.Duration(p.ShutdownTimeout) * time.Second
	}
	return DefaultShutdownTimeout
}

// Enabled 是否配置了监听地址
func (p *Config) Enabled() bool {
	return p != nil && p.Addr != ""
}

// RegController 注册controller中的所有处理函数,middlewares只作用于这个controller
func (p *Config) RegController(controller Controller, middlewares ...Middleware) error {
	if controller == nil {
		return fmt.Errorf("Can't reg nil controller")
	}

	handlers, err := ReflectHandlers(controller)
	if err != nil {
		return err
	}
	if len(handlers) == 0 {
		c.Warnf("Can't find handler in %T", controller)
		return nil
	}

	path := controller.GetPath()
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	for handlerPath, h := range handlers {
		patternPath := path + strings.TrimPrefix(handlerPath, "/")
		if err := p.regHandle(patternPath, &handlerWithMiddleware{h, middlewares}); err != nil {
			return err
		}
		c.Infof("Register controller %T#%s,path:%s", controller, controller.GetName(), patternPath)
	}
	return nil
}

// RegHandler 注册patternPath的处理器
func (p *Config) RegHandler(patternPath string, handler http.Handler, middlewares ...Middleware) error {
	if handler == nil {
		return fmt.Errorf("Can't reg nil handler to %s", patternPath)
	}
	return p.regHandle(patternPath, &handlerWithMiddleware{handler.ServeHTTP, middlewares})
}

func (p *Config) regHandle(patternPath string, handle *handlerWithMiddleware) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.handles == nil {
		p.handles = map[string]*handlerWithMiddleware{}
	}
	if _, ok := p.handles[patternPath]; ok {
		return fmt.Errorf("Duplicate ,path:%s", patternPath)
	}
	p.handles[patternPath] = handle
	return nil
}

// RegMiddleware 注册作用于所有处理函数的middleware,需要在Service.Init之前完成
func (p *Config) RegMiddleware(middleware Middleware) error {
	if middleware == nil {
		return fmt.Errorf("invalid middleware")
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.middlewares = append(p.middlewares, middleware)
	return nil
}
