package common

import (
	"sort"
	"sync"
)

// ServiceState 服务的状态
type ServiceState uint32

// 服务状态,由Services维护
const (
	NEW ServiceState = iota
	INITED
	RUNNING
	STOPPED
	FAILED
)

func (p ServiceState) String() string {
	switch p {
	case NEW:
		return "NEW"
	case INITED:
		return "INITED"
	case RUNNING:
		return "RUNNING"
	case STOPPED:
		return "STOPPED"
	case FAILED:
		return "FAILED"
	}
	return "UNKNOWN"
}

// Service 由Services管理生命周期的服务
type Service interface {
	// Name 服务名称
	Name() string
	// Init 初始化,失败时返回原因
	Init() error
	// Start 启动服务
	Start() bool
	// Stop 停止服务,需要等待正在处理的请求结束
	Stop() bool
	// StartOrder 启动的次序,小的先启动,停止的次序与启动相反
	StartOrder() int
	// State 服务的状态
	State() ServiceState
	setState(state ServiceState)
}

// BaseService 嵌入到具体的服务中,提供名称,次序和状态
type BaseService struct {
	SName     string
	Order     int
	state     ServiceState
	stateLock sync.RWMutex
}

// Name 服务名称
func (p *BaseService) Name() string {
	return p.SName
}

// Init 默认不需要初始化
func (p *BaseService) Init() error {
	return nil
}

// StartOrder 启动的次序
func (p *BaseService) StartOrder() int {
	return p.Order
}

// State 服务的状态
func (p *BaseService) State() ServiceState {
	p.stateLock.RLock()
	defer p.stateLock.RUnlock()
	return p.state
}

func (p *BaseService) setState(state ServiceState) {
	p.stateLock.Lock()
	defer p.stateLock.Unlock()
	p.state = state
}

// Services 按照StartOrder初始化和启动一组服务,按照相反的次序停止
type Services struct {
	sorted []Service
}

// NewServices 构建新的Service集合
func NewServices(services ...Service) *Services {
	sorted := make([]Service, len(services))
	copy(sorted, services)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartOrder() < sorted[j].StartOrder()
	})
	return &Services{sorted: sorted}
}

// Init 初始化状态为NEW的服务,任何一个失败时返回false
func (p *Services) Init() bool {
	for _, service := range p.sorted {
		if service.State() != NEW {
			continue
		}
		if err := service.Init(); err != nil {
			Errorf("init %s fail,err:%v", service.Name(), err)
			service.setState(FAILED)
			return false
		}
		service.setState(INITED)
	}
	return true
}

// Start 启动已经初始化或者已经停止的服务,任何一个服务启动失败时,已经启动的服务会被停止
func (p *Services) Start() bool {
	for _, service := range p.sorted {
		if state := service.State(); state != INITED && state != STOPPED {
			Errorf("can't start %s in state %s", service.Name(), state)
			p.Stop()
			return false
		}
		if !service.Start() {
			Errorf("start %s fail", service.Name())
			service.setState(FAILED)
			p.Stop()
			return false
		}
		service.setState(RUNNING)
	}
	return true
}

// Stop 按照启动的相反次序停止处于RUNNING状态的服务
func (p *Services) Stop() bool {
	ok := true
	for i := len(p.sorted) - 1; i >= 0; i-- {
		service := p.sorted[i]
		if service.State() != RUNNING {
			continue
		}
		if service.Stop() {
			service.setState(STOPPED)
			continue
		}
		Errorf("stop %s fail", service.Name())
		service.setState(FAILED)
		ok = false
	}
	return ok
}
