package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// RstStreamFrame abruptly terminates one stream in one direction, carrying
// the final byte offset the sender reached and why it gave up.
type RstStreamFrame struct {
	StreamID   protocol.StreamID
	ByteOffset protocol.ByteCount
	ErrorCode  qerr.ApplicationErrorCode
}

const rstStreamFrameSize protocol.ByteCount = 1 + 4 + 8 + 4 // type, stream_id, byte_offset, error_code

func (f *RstStreamFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	return rstStreamFrameSize, nil
}

func (f *RstStreamFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if err := b.WriteUint8(encodeGeneralFrameType(generalFrameRstStream)); err != nil {
		return err
	}
	if err := b.WriteUint32(uint32(f.StreamID)); err != nil {
		return err
	}
	if err := b.WriteUint64(uint64(f.ByteOffset)); err != nil {
		return err
	}
	return b.WriteUint32(uint32(f.ErrorCode))
}

// parseRstStreamFrame decodes an RST_STREAM frame body (the type byte has
// already been consumed by the caller).
func parseRstStreamFrame(c *utils.ByteCursor) (*RstStreamFrame, error) {
	f := &RstStreamFrame{}
	streamID, err := c.ReadUint32()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidRstStreamData, "unable to read stream_id")
	}
	f.StreamID = protocol.StreamID(streamID)

	offset, err := c.ReadUint64()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidRstStreamData, "unable to read byte offset")
	}
	f.ByteOffset = protocol.ByteCount(offset)

	errorCode, err := c.ReadUint32()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidRstStreamData, "unable to read error code")
	}
	f.ErrorCode = qerr.ApplicationErrorCode(errorCode)
	return f, nil
}
