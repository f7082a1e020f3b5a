package physics

// arena 带代数校验的槽位分配器
//
// 删除后的槽位会被复用，但代数递增，旧句柄因此失效。
// 代数从 1 开始，所以零值句柄永远无效。
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	len   int
}

type arenaSlot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

func (a *arena[T]) insert(v T) (uint32, uint32) {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, arenaSlot[T]{})
	}

	slot := &a.slots[index]
	slot.generation++
	slot.value = v
	slot.occupied = true
	a.len++
	return index, slot.generation
}

func (a *arena[T]) get(index, generation uint32) (*T, bool) {
	if int(index) >= len(a.slots) {
		return nil, false
	}
	slot := &a.slots[index]
	if !slot.occupied || slot.generation != generation {
		return nil, false
	}
	return &slot.value, true
}

func (a *arena[T]) remove(index, generation uint32) (T, bool) {
	var zero T
	if _, ok := a.get(index, generation); !ok {
		return zero, false
	}
	slot := &a.slots[index]
	v := slot.value
	slot.value = zero
	slot.occupied = false
	a.free = append(a.free, index)
	a.len--
	return v, true
}

// each 按槽位顺序遍历，回调中不得插入或删除
func (a *arena[T]) each(fn func(index, generation uint32, v *T)) {
	for i := range a.slots {
		slot := &a.slots[i]
		if slot.occupied {
			fn(uint32(i), slot.generation, &slot.value)
		}
	}
}
