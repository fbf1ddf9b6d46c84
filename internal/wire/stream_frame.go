package wire

import (
	"github.com/quicwire/framer/internal/protocol"
	"github.com/quicwire/framer/internal/qerr"
	"github.com/quicwire/framer/internal/utils"
)

// StreamFrame carries a contiguous run of one stream's byte stream.
type StreamFrame struct {
	StreamID       protocol.StreamID
	Offset         protocol.ByteCount
	FinBit         bool
	Data           []byte
	DataLenPresent bool // false when this is the last frame in the packet
}

// DataLen is the number of payload bytes this frame carries.
func (f *StreamFrame) DataLen() protocol.ByteCount {
	return protocol.ByteCount(len(f.Data))
}

// MinLength is the size of this frame when DataLenPresent is true, i.e.
// including the explicit 2-byte length field.
func (f *StreamFrame) MinLength(version protocol.VersionNumber) (protocol.ByteCount, error) {
	return 1 +
		protocol.ByteCount(streamIDSize(uint32(f.StreamID))) +
		protocol.ByteCount(streamOffsetSize(uint64(f.Offset))) +
		2 +
		f.DataLen(), nil
}

// Write appends the STREAM frame, honoring f.DataLenPresent: when false
// (this frame runs to end-of-packet) the 2-byte length prefix is omitted.
func (f *StreamFrame) Write(b *utils.ByteBuilder, version protocol.VersionNumber) error {
	idSize := streamIDSize(uint32(f.StreamID))
	offSize := streamOffsetSize(uint64(f.Offset))

	typeByte := encodeStreamTypeByte(
		f.FinBit,
		f.DataLenPresent,
		offsetWidthCodeFor(offSize),
		streamIDWidthCodeFor(idSize),
	)
	if err := b.WriteUint8(typeByte); err != nil {
		return err
	}
	if err := b.WriteUintN(uint64(f.StreamID), idSize); err != nil {
		return err
	}
	if err := b.WriteUintN(uint64(f.Offset), offSize); err != nil {
		return err
	}
	if f.DataLenPresent {
		if len(f.Data) > 0xffff {
			return qerr.Error(qerr.InvalidStreamData, "stream frame data too long")
		}
		if err := b.WriteUint16(uint16(len(f.Data))); err != nil {
			return err
		}
	}
	return b.WriteBytes(f.Data)
}

// parseStreamFrame decodes a STREAM frame whose type byte has already been
// classified and is passed in typeByte. The type byte's explicit-length bit
// controls whether a 2-byte length prefix is read or, when it is clear, the
// remainder of c is consumed as this frame's data.
func parseStreamFrame(c *utils.ByteCursor, typeByte byte) (*StreamFrame, error) {
	fin, hasLength, offsetCode, idCode := decodeStreamTypeByte(typeByte)

	idSize := streamIDWidth(idCode)
	offSize := offsetWidth(offsetCode)

	id, err := c.ReadUintN(idSize)
	if err != nil {
		return nil, qerr.Error(qerr.InvalidStreamData, "unable to read stream_id")
	}
	offset, err := c.ReadUintN(offSize)
	if err != nil {
		return nil, qerr.Error(qerr.InvalidStreamData, "unable to read offset")
	}

	var data []byte
	if hasLength {
		data, err = readLengthPrefixedBytes(c)
		if err != nil {
			return nil, qerr.Error(qerr.InvalidStreamData, "unable to read frame data")
		}
	} else {
		data = c.ReadRemaining()
	}

	return &StreamFrame{
		StreamID:       protocol.StreamID(id),
		Offset:         protocol.ByteCount(offset),
		FinBit:         fin,
		Data:           data,
		DataLenPresent: hasLength,
	}, nil
}

func readLengthPrefixedBytes(c *utils.ByteCursor) ([]byte, error) {
	n, err := c.ReadUint16()
	if err != nil {
		return nil, err
	}
	return c.ReadBytes(int(n))
}
