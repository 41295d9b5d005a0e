package common

import (
	"os"
	"os/signal"
	"reflect"
	"sync"
	"syscall"
)

// HasNil 检查args中是否有nil值,包括值为nil的指针、接口、map、slice、func和chan
func HasNil(args ...interface{}) bool {
	for _, arg := range args {
		if isNil(arg) {
			return true
		}
	}
	return false
}

// isNil 判断v是否为nil
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return val.IsNil()
	}
	return false
}

// Shutdownhook 进程退出时执行注册的hook
type Shutdownhook struct {
	ch         chan os.Signal //接收信号的channel
	hooks      []func()       //停机时需要调用的方法列表
	sync.Mutex                //同步锁
}

// NewShutdownhook 创建一个Shutdownhook,sig是要监听的信号,默认会监听syscall.SIGINT,syscall.SIGTERM
func NewShutdownhook(sig ...os.Signal) *Shutdownhook {
	if len(sig) == 0 {
		sig = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	ch := make(chan os.Signal, len(sig)+1)
	signal.Notify(ch, sig...)
	return &Shutdownhook{ch: ch}
}

// AddHook 增加一个Hook函数
func (p *Shutdownhook) AddHook(hookFunc func()) {
	p.Lock()
	defer p.Unlock()
	p.hooks = append(p.hooks, hookFunc)
}

// Shutdown 不等待进程信号,直接触发hook的执行
func (p *Shutdownhook) Shutdown() {
	select {
	case p.ch <- syscall.SIGTERM:
	default:
	}
}

// WaitShutdown 等待进程退出的信号,当收到进程退出的信号后,依次执行注册的hook函数
func (p *Shutdownhook) WaitShutdown() {
	s := <-p.ch
	signal.Stop(p.ch)

	p.Lock()
	defer p.Unlock()
	Infof("Receive signal:%v,Run hooks", s)
	for _, f := range p.hooks {
		f()
	}
	Infof("Finished run hooks")
}
