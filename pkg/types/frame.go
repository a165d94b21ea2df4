package types

import "errors"

// Frame errors.
var (
	ErrFrameIDEmpty     = errors.New("frame ID must not be empty")
	ErrDuplicateFrameID = errors.New("duplicate frame ID")
	ErrFrameNotFound    = errors.New("frame not found")
	ErrNilFrame         = errors.New("frame must not be nil")
)

// Frame is an identified, independently addressable region of physical
// space. It owns exactly one Strategy and holds the pose the strategy most
// recently derived. The ID is immutable once set and unique within a graph.
type Frame struct {
	id       string
	strategy Strategy

	pose    Pose
	hasPose bool
}

// NewFrame creates a frame with the given ID owning the given strategy.
// Returns ErrFrameIDEmpty or ErrNilStrategy on bad input. A new frame is
// fully addressable before its strategy resolves.
func NewFrame(id string, strategy Strategy) (*Frame, error) {
	if id == "" {
		return nil, ErrFrameIDEmpty
	}
	if strategy == nil {
		return nil, ErrNilStrategy
	}
	return &Frame{id: id, strategy: strategy}, nil
}

// ID returns the frame's stable identifier.
func (f *Frame) ID() string {
	return f.id
}

// Strategy returns the frame's owned alignment strategy.
func (f *Frame) Strategy() Strategy {
	return f.strategy
}

// Refresh pulls the current pose from the strategy into the frame. Only the
// owning strategy writes a frame's pose; the driving loop calls Refresh once
// per evaluation pass. While the strategy is unresolved the frame's pose is
// left untouched.
func (f *Frame) Refresh() {
	p, err := f.strategy.Pose()
	if err != nil {
		return
	}
	f.pose = p
	f.hasPose = true
}

// Pose returns the frame's last derived pose. The second return is false
// until the strategy has published a pose at least once.
func (f *Frame) Pose() (Pose, bool) {
	return f.pose, f.hasPose
}
