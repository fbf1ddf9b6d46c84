package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// ConnectionCloseFrame tears down the whole connection. It may carry an
// embedded AckFrame, written after the reason phrase, so the peer gets
// final entropy/largest-observed state along with the close; when Ack is
// nil, nothing follows the reason phrase.
type ConnectionCloseFrame struct {
	ErrorCode    qerr.ErrorCode
	ReasonPhrase string
	Ack          *AckFrame
}

func (f *ConnectionCloseFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	length := protocol.ByteCount(1 + 4 + 2 + len(f.ReasonPhrase))
	if f.Ack != nil {
		ackLen, err := f.Ack.MinLength(version)
		if err != nil {
			return 0, err
		}
		length += ackLen
	}
	return length, nil
}

func (f *ConnectionCloseFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	if err := b.WriteUint8(encodeGeneralFrameType(generalFrameConnectionClose)); err != nil {
		return err
	}
	if err := b.WriteUint32(uint32(f.ErrorCode)); err != nil {
		return err
	}
	if err := b.WriteString16(f.ReasonPhrase); err != nil {
		return err
	}
	if f.Ack == nil {
		return nil
	}
	return f.Ack.Write(b, version)
}

// parseConnectionCloseFrame decodes a CONNECTION_CLOSE frame body (the type
// byte has already been consumed by the caller). The embedded ack is
// optional on the wire: a close sent with nothing left to acknowledge may
// omit it, so c being empty afterward is not an error.
func parseConnectionCloseFrame(c *utils.ByteCursor) (*ConnectionCloseFrame, error) {
	f := &ConnectionCloseFrame{}
	errorCode, err := c.ReadUint32()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidConnectionCloseData, "unable to read error code")
	}
	f.ErrorCode = qerr.ErrorCode(errorCode)

	reason, err := c.ReadString16()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidConnectionCloseData, "unable to read reason phrase")
	}
	f.ReasonPhrase = reason

	if c.Remaining() == 0 {
		return f, nil
	}

	ackTypeByte, err := c.ReadUint8()
	if err != nil {
		return nil, qerr.Error(qerr.InvalidConnectionCloseData, "unable to read embedded ack type byte")
	}
	category, _ := classifyFrameType(ackTypeByte)
	if category != frameCategoryAck {
		return nil, qerr.Error(qerr.InvalidConnectionCloseData, "embedded frame is not an ack")
	}
	ack, err := parseAckFrame(c)
	if err != nil {
		return nil, err
	}
	f.Ack = ack
	return f, nil
}
