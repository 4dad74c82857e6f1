package model

// State is the runtime state token reported by the native side. It is never
// cached by this layer: the native state can change behind our back (process
// exit, external lxc commands), so every query goes back to the boundary.
type State string

const (
	// StateStopped indicates the container has no running init process.
	StateStopped State = "STOPPED"
	// StateStarting indicates the container is booting.
	StateStarting State = "STARTING"
	// StateRunning indicates the container init process is alive.
	StateRunning State = "RUNNING"
	// StateStopping indicates the container is shutting down.
	StateStopping State = "STOPPING"
	// StateAborting indicates the container failed while starting.
	StateAborting State = "ABORTING"
	// StateFreezing indicates the container is being frozen.
	StateFreezing State = "FREEZING"
	// StateFrozen indicates every container process is frozen.
	StateFrozen State = "FROZEN"
	// StateThawed indicates the container has been unfrozen.
	StateThawed State = "THAWED"
)
