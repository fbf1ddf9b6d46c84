package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// GoAwayFrame tells the peer the sender will not originate any new streams
// above LastGoodStreamID and is preparing to close.
type GoAwayFrame struct {
	ErrorCode        qerr.ErrorCode
	LastGoodStreamID protocol.StreamID
	ReasonPhrase     string
}

func (f *GoAwayFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	return protocol.ByteCount(1+4+4+2+len(f.ReasonPhrase)), nil
}

func (f *GoAwayFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if err := b.WriteUint8(encodeGeneralFrameType(generalFrameGoAway)); err != nil {
		return err
	}
	if err := b.WriteUint32(uint32(f.ErrorCode)); err != nil {
		return err
	}
	if err := b.WriteUint32(uint32(f.LastGoodStreamID)); err != nil {
		return err
	}
	return b.WriteString16(f.ReasonPhrase)
}

// parseGoAwayFrame decodes a GOAWAY frame body (the type byte has already
// been consumed by the caller).
func parseGoAwayFrame(c *utils.ByteCursor) (*GoAwayFrame, error) {
	f := &GoAwayFrame{}
	errorCode, err := c.ReadUint32()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidGoAwayData, "unable to read error code")
	}
	f.ErrorCode = qerr.ErrorCode(errorCode)

	lastGoodStreamID, err := c.ReadUint32()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidGoAwayData, "unable to read last good stream id")
	}
	f.LastGoodStreamID = protocol.StreamID(lastGoodStreamID)

	reason, err := c.ReadString16()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidGoAwayData, "unable to read reason phrase")
	}
	f.ReasonPhrase = reason
	return f, nil
}
