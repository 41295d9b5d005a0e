package common

import (
	"hash/fnv"
	"sync"
)

const concurrentMapShardCount = 32

type concurrentMapShard[V any] struct {
	items map[string]V
	sync.RWMutex
}

// ConcurrentMap 线程安全的map,key按照fnv32 hash分布到多个shard中,每个shard使用独立的读写锁
type ConcurrentMap[V any] struct {
	shards [concurrentMapShardCount]*concurrentMapShard[V]
}

// NewConcurrentMap 创建ConcurrentMap
func NewConcurrentMap[V any]() *ConcurrentMap[V] {
	m := &ConcurrentMap[V]{}
	for i := range m.shards {
		m.shards[i] = &concurrentMapShard[V]{items: make(map[string]V)}
	}
	return m
}

func (m *ConcurrentMap[V]) getShard(key string) *concurrentMapShard[V] {
	hasher := fnv.New32()
	hasher.Write([]byte(key))
	return m.shards[hasher.Sum32()%concurrentMapShardCount]
}

// Get 读取key的值
func (m *ConcurrentMap[V]) Get(key string) (V, bool) {
	shard := m.getShard(key)
	shard.RLock()
	defer shard.RUnlock()
	val, ok := shard.items[key]
	return val, ok
}

// Update 在key所在shard的写锁内执行fn,fn的参数是key当前的值以及是否存在,
// fn返回的store为true时将返回的值写入key.读取和写入在同一个锁内完成,不会丢失更新
func (m *ConcurrentMap[V]) Update(key string, fn func(old V, exist bool) (val V, store bool)) (V, bool) {
	shard := m.getShard(key)
	shard.Lock()
	defer shard.Unlock()
	old, exist := shard.items[key]
	val, store := fn(old, exist)
	if store {
		shard.items[key] = val
	}
	return val, store
}

// Count 元素的个数
func (m *ConcurrentMap[V]) Count() int {
	count := 0
	for _, shard := range m.shards {
		shard.RLock()
		count += len(shard.items)
		shard.RUnlock()
	}
	return count
}
