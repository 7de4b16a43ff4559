package ecs

// store is the type-erased view the world needs to clean up after a
// destroyed entity and to intersect queries.
type store interface {
	has(id entityID) bool
	remove(id entityID) bool
	ids() []entityID
	len() int
}

// sparseSet stores one component type densely, indexed by entity slot.
type sparseSet[T any] struct {
	dense  []entityID
	values []*T
	// sparse holds dense index + 1; zero means absent.
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) has(id entityID) bool {
	return int(id) < len(s.sparse) && s.sparse[id] != 0
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	if !s.has(id) {
		return nil, false
	}
	return s.values[s.sparse[id]-1], true
}

func (s *sparseSet[T]) set(id entityID, v *T) {
	if int(id) >= len(s.sparse) {
		grown := make([]int, int(id)+1, 2*(int(id)+1))
		copy(grown, s.sparse)
		s.sparse = grown
	}
	if idx := s.sparse[id]; idx != 0 {
		s.values[idx-1] = v
		return
	}
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
	s.sparse[id] = len(s.dense)
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id] - 1
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved] = idx + 1

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[id] = 0
	return true
}

func (s *sparseSet[T]) ids() []entityID {
	return s.dense
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}
