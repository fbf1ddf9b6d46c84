// Package framer orchestrates the wire, crypto and fec packages into the
// handful of operations a connection actually needs: turning outgoing
// frames into sealed packets, and turning incoming bytes back into
// frames a connection can act on.
package framer

import (
	"github.com/quicwire/framer/internal/wire"
)

// FrameVisitor is a capability set, not a type hierarchy: a caller fills
// in only the callbacks it cares about, and ProcessPacket silently skips
// a frame kind whose callback is left nil rather than erroring on it.
// This mirrors a connection only wiring up handling for the frame kinds
// relevant to its current state (e.g. a connection that hasn't finished
// the handshake has no use for StreamFrame yet).
type FrameVisitor struct {
	OnStreamFrame             func(*wire.StreamFrame) error
	OnAckFrame                func(*wire.AckFrame) error
	OnCongestionFeedbackFrame func(*wire.CongestionFeedbackFrame) error
	OnRstStreamFrame          func(*wire.RstStreamFrame) error
	OnConnectionCloseFrame    func(*wire.ConnectionCloseFrame) error
	OnGoAwayFrame             func(*wire.GoAwayFrame) error
	OnPaddingFrame            func(*wire.PaddingFrame) error
	OnStopWaitingFrame        func(*wire.StopWaitingFrame) error
	OnBlockedFrame            func(*wire.BlockedFrame) error
}

// visit dispatches frame to whichever callback matches its concrete
// type, and is a no-op if that callback was left nil.
func (v *FrameVisitor) visit(frame wire.Frame) error {
	switch f := frame.(type) {
	case *wire.StreamFrame:
		if v.OnStreamFrame != nil {
			return v.OnStreamFrame(f)
		}
	case *wire.AckFrame:
		if v.OnAckFrame != nil {
			return v.OnAckFrame(f)
		}
	case *wire.CongestionFeedbackFrame:
		if v.OnCongestionFeedbackFrame != nil {
			return v.OnCongestionFeedbackFrame(f)
		}
	case *wire.RstStreamFrame:
		if v.OnRstStreamFrame != nil {
			return v.OnRstStreamFrame(f)
		}
	case *wire.ConnectionCloseFrame:
		if v.OnConnectionCloseFrame != nil {
			return v.OnConnectionCloseFrame(f)
		}
	case *wire.GoAwayFrame:
		if v.OnGoAwayFrame != nil {
			return v.OnGoAwayFrame(f)
		}
	case *wire.PaddingFrame:
		if v.OnPaddingFrame != nil {
			return v.OnPaddingFrame(f)
		}
	case *wire.StopWaitingFrame:
		if v.OnStopWaitingFrame != nil {
			return v.OnStopWaitingFrame(f)
		}
	case *wire.BlockedFrame:
		if v.OnBlockedFrame != nil {
			return v.OnBlockedFrame(f)
		}
	}
	return nil
}
