package physics

import "sort"

// proxy 宽检测中的一个碰撞体
type proxy struct {
	handle ColliderHandle
	shape  worldShape
	bounds aabb
}

// broadPhase 沿 x 轴排序扫描（sweep and prune）
type broadPhase struct {
	proxies []proxy
	pairs   []colliderPair
	active  []int
}

// update 用本帧的世界形状重建候选对
func (bp *broadPhase) update(proxies []proxy) []colliderPair {
	bp.proxies = proxies
	sort.Slice(bp.proxies, func(i, j int) bool {
		return bp.proxies[i].bounds.min.X() < bp.proxies[j].bounds.min.X()
	})

	bp.pairs = bp.pairs[:0]
	bp.active = bp.active[:0]
	for i := range bp.proxies {
		cur := &bp.proxies[i]
		// 移除已经在 x 轴上分离的
		kept := bp.active[:0]
		for _, j := range bp.active {
			if bp.proxies[j].bounds.max.X() >= cur.bounds.min.X() {
				kept = append(kept, j)
			}
		}
		bp.active = kept

		for _, j := range bp.active {
			if bp.proxies[j].bounds.intersects(cur.bounds) {
				bp.pairs = append(bp.pairs, makePair(bp.proxies[j].handle, cur.handle))
			}
		}
		bp.active = append(bp.active, i)
	}
	return bp.pairs
}

// proxy 按句柄查找，update 之后有效
func (bp *broadPhase) lookup() map[ColliderHandle]*proxy {
	m := make(map[ColliderHandle]*proxy, len(bp.proxies))
	for i := range bp.proxies {
		m[bp.proxies[i].handle] = &bp.proxies[i]
	}
	return m
}
