package ecs

// System is a unit of per-frame work over a Storage.
// Systems may include Query fields, which the Scheduler initializes on
// registration and refreshes before every execution, as well as custom state
// fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
