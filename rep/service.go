package rep

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	c "github.com/d0ngw/counterd/common"
	"github.com/go-zeromq/zmq4"
)

// 接收失败后的等待时间
const recvRetryInterval = 50 * time.Millisecond

// PayloadHandler 处理一个请求,返回响应
type PayloadHandler interface {
	HandlePayload(payload []byte) []byte
}

// Service 在REP socket上循环接收请求并发送响应,同一时刻只处理一个请求
type Service struct {
	c.BaseService
	Conf    *Config
	Handler PayloadHandler
	socket  zmq4.Socket
	cancel  context.CancelFunc
	done    chan struct{}
	log     *c.Logger
	lock    sync.Mutex
}

// NewService 创建REP服务
func NewService(conf *Config, handler PayloadHandler) *Service {
	return &Service{
		BaseService: c.BaseService{SName: "rep"},
		Conf:        conf,
		Handler:     handler,
	}
}

// Init implements Service.Init
func (p *Service) Init() error {
	if c.HasNil(p.Conf, p.Handler) {
		return fmt.Errorf("Conf,Handler must be set")
	}
	if err := p.Conf.Parse(); err != nil {
		return err
	}
	p.log = c.NamedLogger("rep", "endpoint", p.Conf.Endpoint)
	return nil
}

// Start 绑定监听地址,开始处理请求
func (p *Service) Start() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	socket := zmq4.NewRep(ctx)
	if err := socket.Listen(p.Conf.Endpoint); err != nil {
		p.log.Errorf("Listen fail,error:%v", err)
		cancel()
		socket.Close()
		return false
	}
	p.log.Infof("Counter service listening on %s", socket.Addr())

	p.socket = socket
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.serve(ctx, socket, p.done)
	return true
}

func (p *Service) serve(ctx context.Context, socket zmq4.Socket, done chan struct{}) {
	defer close(done)
	for {
		msg, err := socket.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.log.Warnf("recv fail,err:%v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(recvRetryInterval):
			}
			continue
		}

		payload := bytes.Join(msg.Frames, nil)
		p.log.Debugf("Server received:%s", payload)
		reply := p.Handler.HandlePayload(payload)
		if err = socket.Send(zmq4.NewMsg(reply)); err != nil {
			if ctx.Err() != nil {
				return
			}
			p.log.Errorf("send reply fail,err:%v", err)
		}
	}
}

// Addr 返回实际监听的地址,未启动时返回nil
func (p *Service) Addr() net.Addr {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.socket == nil {
		return nil
	}
	return p.socket.Addr()
}

// Stop 关闭socket,等待处理循环退出
func (p *Service) Stop() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.socket == nil {
		return true
	}
	p.cancel()
	if err := p.socket.Close(); err != nil {
		p.log.Warnf("Close socket error:%v", err)
	}
	<-p.done
	p.log.Infof("Counter service stopped")

	p.socket = nil
	p.cancel = nil
	p.done = nil
	return true
}
