package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// BlockedFrame tells the peer a stream (or the connection, StreamID == 0)
// has data ready to send but is flow-control blocked.
type BlockedFrame struct {
	StreamID protocol.StreamID
}

const blockedFrameSize protocol.ByteCount = 1 + 4

func (f *BlockedFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	return blockedFrameSize, nil
}

func (f *BlockedFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if err := b.WriteUint8(encodeGeneralFrameType(generalFrameBlocked)); err != nil {
		return err
	}
	return b.WriteUint32(uint32(f.StreamID))
}

// parseBlockedFrame decodes a BLOCKED frame body (the type byte has already
// been consumed by the caller).
func parseBlockedFrame(c *utils.ByteCursor) (*BlockedFrame, error) {
	streamID, err := c.ReadUint32()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidFrameData, "unable to read stream_id")
	}
	return &BlockedFrame{StreamID: protocol.StreamID(streamID)}, nil
}
