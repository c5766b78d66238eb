// Package buildpipeline drives a batch of label files through the core
// parse/validate/format stages concurrently, reporting progress events so
// a CLI surface can render them (cmd/zpl's print command wires this
// through internal/ui's Bubble Tea model).
package buildpipeline

import "time"

// Stage identifies which core operation an Event concerns.
type Stage string

const (
	// StageParse covers lexing and parsing.
	StageParse Stage = "parse"
	// StageValidate covers validator and device-state checks.
	StageValidate Stage = "validate"
	// StageFormat covers normalized re-emission.
	StageFormat Stage = "format"
)

// Status captures progress within a Stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage completed without error diagnostics.
	StatusDone Status = "done"
	// StatusError indicates the stage failed or produced error diagnostics.
	StatusError Status = "error"
)

// Event reports progress for one file, or for the pipeline as a whole
// when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events as a run proceeds.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events onto a channel, for a consumer (such as a
// Bubble Tea model) driven by its own event loop.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent forwards evt to the channel, or drops it if the sink has no
// channel configured.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
