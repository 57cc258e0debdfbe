package data

// DataContext exposes the dependency values fetched for one assessment to the
// criteria rules.
type DataContext interface {
	Get(key DependencyKey) (any, bool)
}

// MapDataContext is a read-only DataContext backed by the scheduler's result
// map. A nil map behaves as an empty context.
type MapDataContext struct {
	data map[DependencyKey]any
}

func NewMapDataContext(data map[DependencyKey]any) *MapDataContext {
	return &MapDataContext{data: data}
}

func (c *MapDataContext) Get(key DependencyKey) (any, bool) {
	if c == nil {
		return nil, false
	}
	val, ok := c.data[key]
	return val, ok
}
