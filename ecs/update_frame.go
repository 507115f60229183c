package ecs

// UpdateFrame is handed to every system during one Scheduler pass.
// Commands queued on it are flushed after the last system has run.
type UpdateFrame struct {
	Number    int
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(number int, dt float64, commands *Commands, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Number:    number,
		DeltaTime: dt,
		Commands:  commands,
		Storage:   storage,
	}
}
