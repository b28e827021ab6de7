package ecs

// System represents a behavior that operates on entities with specific components.
// Systems can include Query and Singleton fields, which the Scheduler binds to its
// storage on registration, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// storageBinder is implemented by system fields that need a storage reference.
type storageBinder interface {
	Init(storage *Storage)
}
