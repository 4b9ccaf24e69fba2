package auth

import (
	"fmt"
	"hash/crc32"
	"sort"
	"sync"
)

// HashRing 一致性哈希环，鉴权缓存按 token 分片到固定节点
type HashRing struct {
	mu       sync.RWMutex
	replicas int
	vnodes   []uint32          // 升序虚拟节点
	owners   map[uint32]string // 虚拟节点 -> 真实节点
	nodes    map[string]bool
}

// NewHashRing 创建哈希环。nodes 为空时退化为单节点环
func NewHashRing(nodes []string, replicas int) *HashRing {
	if replicas <= 0 {
		replicas = 50
	}
	r := &HashRing{
		replicas: replicas,
		owners:   make(map[uint32]string),
		nodes:    make(map[string]bool),
	}
	if len(nodes) == 0 {
		nodes = []string{"auth-node-default"}
	}
	r.Add(nodes...)
	return r
}

// Add 添加真实节点，重复添加忽略
func (r *HashRing) Add(nodes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, node := range nodes {
		if r.nodes[node] {
			continue
		}
		r.nodes[node] = true
		for i := 0; i < r.replicas; i++ {
			h := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%s#%d", node, i)))
			r.vnodes = append(r.vnodes, h)
			r.owners[h] = node
		}
	}
	sort.Slice(r.vnodes, func(i, j int) bool { return r.vnodes[i] < r.vnodes[j] })
}

// Owner 返回 key 顺时针方向最近的节点
func (r *HashRing) Owner(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.vnodes) == 0 {
		return ""
	}
	h := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(r.vnodes), func(i int) bool { return r.vnodes[i] >= h })
	if idx == len(r.vnodes) {
		idx = 0
	}
	return r.owners[r.vnodes[idx]]
}
