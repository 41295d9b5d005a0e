package counter

import (
	"errors"
	"strings"
	"time"

	c "github.com/d0ngw/counterd/common"
)

// Observer 观察每个请求的处理结果
type Observer interface {
	// ObserveRequest action为请求的操作,未知的操作为unknown,无法解析的请求为invalid
	ObserveRequest(action string, status Status, elapsed time.Duration)
}

// 无法解析的请求在Observer中使用的action
const actionInvalid = "invalid"

// Router 将请求分发到Store
type Router struct {
	store    *Store
	observer Observer
}

// NewRouter 创建Router,observer可以为nil
func NewRouter(store *Store, observer Observer) *Router {
	return &Router{store: store, observer: observer}
}

// Store 返回Router使用的Store
func (p *Router) Store() *Store {
	return p.store
}

// Handle 处理一个请求,总是返回一个响应
func (p *Router) Handle(req *Request) *Response {
	start := time.Now()
	action := ParseAction(req.Action)
	resp := p.dispatch(action, req)
	p.observe(action.String(), resp.Status, start)
	return resp
}

func (p *Router) dispatch(action Action, req *Request) *Response {
	var (
		count int64
		err   error
	)
	switch action {
	case ActionIncr:
		count, err = p.store.Incr(req.CounterName)
	case ActionReset:
		count, err = p.store.Reset(req.CounterName)
	case ActionGet:
		count, err = p.store.Get(req.CounterName)
	default:
		err = &UnknownActionError{Action: strings.TrimSpace(req.Action)}
	}
	return toResponse(req.CounterName, count, err)
}

func toResponse(name string, count int64, err error) *Response {
	if err == nil {
		return Success(name, count)
	}
	var unknown *UnknownActionError
	if errors.As(err, &unknown) {
		return failureNoName(unknown.Error())
	}
	return Failure(name, err.Error())
}

// HandlePayload 解析payload,处理请求并返回编码后的响应
func (p *Router) HandlePayload(payload []byte) []byte {
	start := time.Now()
	req, err := DecodeRequest(payload)
	if err != nil {
		p.observe(actionInvalid, StatusError, start)
		return InvalidJSONReply()
	}
	resp := p.Handle(req)
	reply, err := EncodeResponse(resp)
	if err != nil {
		c.Errorf("encode response %+v fail,err:%s", resp, err)
		reply, _ = EncodeResponse(Failure(req.CounterName, err.Error()))
	}
	return reply
}

func (p *Router) observe(action string, status Status, start time.Time) {
	if p.observer != nil {
		p.observer.ObserveRequest(action, status, time.Since(start))
	}
}
