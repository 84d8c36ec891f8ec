package progress

// Stage identifies a high-level step of one session iteration.
type Stage string

const (
	StageScanning  Stage = "scanning"
	StageEncoding  Stage = "encoding"
	StageCompleted Stage = "completed"
	StageError     Stage = "error"
)

// Update conveys a stage change.
type Update struct {
	Stage   Stage
	Message string // short human-friendly status line
	Command string // printable command line, set for StageEncoding
}

// Result is emitted once per ffmpeg run when it completes or fails.
type Result struct {
	OutputPath string
	Bytes      int64
	Err        error // nil on success
}

// Reporter is implemented by UI or any observer interested in progress events.
type Reporter interface {
	Update(u Update)
	Result(r Result)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Update(Update) {}
func (Nop) Result(Result) {}
