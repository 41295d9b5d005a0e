// Package client 计数服务的REQ客户端
package client

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/d0ngw/counterd/counter"
	"github.com/go-zeromq/zmq4"
)

// DefaultEndpoint 默认连接的服务地址
const DefaultEndpoint = "tcp://localhost:5558"

// Client 通过REQ socket访问计数服务,一个Client同一时刻只有一个未完成的请求
type Client struct {
	socket zmq4.Socket
	cancel context.CancelFunc
	lock   sync.Mutex
}

// Dial 连接endpoint,endpoint为空时使用DefaultEndpoint
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	ctx, cancel := context.WithCancel(ctx)
	socket := zmq4.NewReq(ctx)
	if err := socket.Dial(endpoint); err != nil {
		cancel()
		socket.Close()
		return nil, fmt.Errorf("dial %s fail,err:%w", endpoint, err)
	}
	return &Client{socket: socket, cancel: cancel}, nil
}

// Close 关闭连接
func (p *Client) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.cancel()
	return p.socket.Close()
}

// SendRaw 发送原始的payload,返回服务端的原始响应
func (p *Client) SendRaw(payload []byte) ([]byte, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if err := p.socket.Send(zmq4.NewMsg(payload)); err != nil {
		return nil, err
	}
	msg, err := p.socket.Recv()
	if err != nil {
		return nil, err
	}
	return bytes.Join(msg.Frames, nil), nil
}

// Do 发送请求并解析响应
func (p *Client) Do(req *counter.Request) (*counter.Response, error) {
	payload, err := counter.EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	reply, err := p.SendRaw(payload)
	if err != nil {
		return nil, err
	}
	return counter.DecodeReply(reply)
}

// Incr 递增name
func (p *Client) Incr(name string) (*counter.Response, error) {
	return p.Do(&counter.Request{Action: counter.ActionIncr.String(), CounterName: name})
}

// Reset 重置name
func (p *Client) Reset(name string) (*counter.Response, error) {
	return p.Do(&counter.Request{Action: counter.ActionReset.String(), CounterName: name})
}

// Get 读取name
func (p *Client) Get(name string) (*counter.Response, error) {
	return p.Do(&counter.Request{Action: counter.ActionGet.String(), CounterName: name})
}
