package ecs

import (
	"math"
	"reflect"
)

// EntityID 是实体的唯一标识符
//
// 低 32 位为槽位索引，高 32 位为代数。槽位被复用时代数加一，
// 因此已删除实体的旧 ID 不会命中新实体。0 保留为无效 ID。
type EntityID uint64

const invalidIndex = math.MaxUint32

func makeEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

// Index 返回槽位索引
func (id EntityID) Index() uint32 {
	return uint32(id)
}

// Generation 返回代数
func (id EntityID) Generation() uint32 {
	return uint32(id >> 32)
}

// Bits 返回可放进碰撞体 user data 的 64 位编码
func (id EntityID) Bits() uint64 {
	return uint64(id)
}

// FromBits 从 64 位编码还原实体 ID
// 索引为 0 或全 1（玩家哨兵值使用的编码）时返回 false
func FromBits(bits uint64) (EntityID, bool) {
	id := EntityID(bits)
	if id.Index() == 0 || id.Index() == invalidIndex {
		return 0, false
	}
	return id, true
}

// EntityManager 管理所有实体和组件
type EntityManager struct {
	// 槽位 0 不使用
	generations []uint32
	alive       []bool
	free        []uint32
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		generations:       []uint32{0},
		alive:             []bool{false},
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
// 优先复用已删除实体的槽位
func (em *EntityManager) CreateEntity() EntityID {
	var index uint32
	if n := len(em.free); n > 0 {
		index = em.free[n-1]
		em.free = em.free[:n-1]
		em.generations[index]++
	} else {
		index = uint32(len(em.generations))
		em.generations = append(em.generations, 0)
		em.alive = append(em.alive, false)
	}
	em.alive[index] = true

	id := makeEntityID(index, em.generations[index])
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// IsAlive 实体是否存在（已标记删除但未清理的实体仍视为存在）
func (em *EntityManager) IsAlive(id EntityID) bool {
	index := id.Index()
	if index == 0 || int(index) >= len(em.generations) {
		return false
	}
	return em.alive[index] && em.generations[index] == id.Generation()
}

// EntityCount 返回存活实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 重复标记或已失效的 ID 会被忽略
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		if !em.IsAlive(id) {
			continue
		}
		delete(em.components, id)
		em.alive[id.Index()] = false
		em.free = append(em.free, id.Index())
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// Clear 立即删除所有实体（场景 Deinit 时调用）
func (em *EntityManager) Clear() {
	for id := range em.components {
		em.alive[id.Index()] = false
		em.free = append(em.free, id.Index())
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表，按槽位顺序排列
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for index := 1; index < len(em.generations); index++ {
		if !em.alive[index] {
			continue
		}
		id := makeEntityID(uint32(index), em.generations[index])
		compMap := em.components[id]

		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	return result
}
