package ecs

type idvConfig struct {
	linearScan bool
	capacity   int
}

// IDVOption configures an IDVStorage while it is being created.
type IDVOption interface {
	apply(c *idvConfig)
}

type linearScanOption struct{}

func (linearScanOption) apply(c *idvConfig) {
	c.linearScan = true
}

// WithLinearScan makes the storage find free cells by scanning the group
// table from the start instead of consulting the ordered free-slot index. Both
// strategies hand out the same cells; the scan trades O(n) inserts for not
// maintaining the index.
func WithLinearScan() IDVOption {
	return linearScanOption{}
}

type capacityOption struct {
	capacity int
}

func (op capacityOption) apply(c *idvConfig) {
	c.capacity = op.capacity
}

// WithCapacity preallocates the group table for entity indices below n.
func WithCapacity(n int) IDVOption {
	return capacityOption{n}
}
