// Package counter 提供进程内的命名计数器以及请求的路由
package counter

import (
	c "github.com/d0ngw/counterd/common"
)

// Store 保存计数器名称到计数值的映射,所有操作都可以被并发调用
type Store struct {
	counters *c.ConcurrentMap[int64]
}

// NewStore 创建空的Store
func NewStore() *Store {
	return &Store{counters: c.NewConcurrentMap[int64]()}
}

// Incr 将name的计数加1并返回新值,name不存在时从0开始
func (p *Store) Incr(name string) (int64, error) {
	if name == "" {
		return 0, ErrCounterNameRequired
	}
	count, _ := p.counters.Update(name, func(old int64, exist bool) (int64, bool) {
		return old + 1, true
	})
	return count, nil
}

// Reset 将name的计数置为0,name不存在时返回ErrCounterNotExist,不会创建计数器
func (p *Store) Reset(name string) (int64, error) {
	_, stored := p.counters.Update(name, func(old int64, exist bool) (int64, bool) {
		return 0, exist
	})
	if !stored {
		return 0, ErrCounterNotExist
	}
	return 0, nil
}

// Get 读取name的计数
func (p *Store) Get(name string) (int64, error) {
	count, ok := p.counters.Get(name)
	if !ok {
		return 0, ErrCounterNotExist
	}
	return count, nil
}

// Len 计数器的个数
func (p *Store) Len() int {
	return p.counters.Count()
}
