package wire

// The frame type byte is a single source of truth for how the low bits of
// the first byte of every frame discriminate its kind. Stream, Ack and
// CongestionFeedback each claim a shrinking low-bit prefix; everything
// else falls through to a general frame type shifted into the high bits,
// with the low 3 bits fixed at 0x07 as its tag.
const (
	frameType0BitMask    = 0x01
	frameTypeAckMask     = 0x03
	frameTypeAckValue    = 0x01
	frameTypeCongMask    = 0x07
	frameTypeCongValue   = 0x03
	frameTypeGeneralMask = 0x07
	frameTypeGeneralTag  = 0x07
	generalFrameShift    = 3
)

// generalFrameType is the enum recovered from (typeByte >> 3) once typeByte
// has matched the 0x07 low-bit tag. Values are part of the wire format:
// changing them changes the bytes this framer emits.
type generalFrameType uint8

const (
	generalFramePadding generalFrameType = iota
	generalFrameRstStream
	generalFrameConnectionClose
	generalFrameGoAway
	generalFrameStopWaiting
	generalFrameBlocked
)

func encodeGeneralFrameType(t generalFrameType) byte {
	return byte(t)<<generalFrameShift | frameTypeGeneralTag
}

// classifyFrameType inspects the first byte of a frame and returns which of
// the four wire categories it belongs to, or frameCategoryInvalid. For the
// general case, the recovered enum is returned; for every other category
// the second result is 0, and a Stream frame's flag bits are left for
// decodeStreamTypeByte to read from the full type byte.
type frameCategory int

const (
	frameCategoryStream frameCategory = iota
	frameCategoryAck
	frameCategoryCongestionFeedback
	frameCategoryGeneral
	frameCategoryInvalid
)

func classifyFrameType(typeByte byte) (frameCategory, generalFrameType) {
	if typeByte&frameType0BitMask == 0 {
		return frameCategoryStream, 0
	}
	if typeByte&frameTypeAckMask == frameTypeAckValue {
		return frameCategoryAck, 0
	}
	if typeByte&frameTypeCongMask == frameTypeCongValue {
		return frameCategoryCongestionFeedback, 0
	}
	if typeByte&frameTypeGeneralMask == frameTypeGeneralTag {
		gt := generalFrameType(typeByte >> generalFrameShift)
		switch gt {
		case generalFramePadding, generalFrameRstStream, generalFrameConnectionClose,
			generalFrameGoAway, generalFrameStopWaiting, generalFrameBlocked:
			return frameCategoryGeneral, gt
		default:
			return frameCategoryInvalid, 0
		}
	}
	return frameCategoryInvalid, 0
}

// Stream type byte layout (bit 0, consumed by classifyFrameType, is always
// 0 for a Stream frame). The remaining 7 bits, from MSB to LSB, are:
// fin(1) | has_explicit_length(1) | offset_width_code(3) | stream_id_width_code(2).
const (
	streamIDWidthShift = 0
	streamIDWidthMask  = 0x03
	offsetWidthShift   = 2
	offsetWidthMask    = 0x07
	hasLengthShift     = 5
	hasLengthMask      = 0x01
	finShift           = 6
	finMask            = 0x01
)

// encodeStreamTypeByte packs the stream frame's flags into its wire type
// byte (bit 0 set to 0 per the Stream discriminator).
func encodeStreamTypeByte(fin, hasExplicitLength bool, offsetWidthCode, streamIDWidthCode uint8) byte {
	var b byte
	if fin {
		b |= finMask << finShift
	}
	if hasExplicitLength {
		b |= hasLengthMask << hasLengthShift
	}
	b |= (offsetWidthCode & offsetWidthMask) << offsetWidthShift
	b |= (streamIDWidthCode & streamIDWidthMask) << streamIDWidthShift
	return b << 1
}

// decodeStreamTypeByte unpacks a Stream frame's type byte (already known to
// have bit 0 == 0).
func decodeStreamTypeByte(typeByte byte) (fin, hasExplicitLength bool, offsetWidthCode, streamIDWidthCode uint8) {
	flags := typeByte >> 1
	streamIDWidthCode = (flags >> streamIDWidthShift) & streamIDWidthMask
	offsetWidthCode = (flags >> offsetWidthShift) & offsetWidthMask
	hasExplicitLength = (flags>>hasLengthShift)&hasLengthMask != 0
	fin = (flags>>finShift)&finMask != 0
	return
}

// streamIDWidth maps a 2-bit width code to the number of bytes the stream
// ID occupies on the wire (1 through 4).
func streamIDWidth(code uint8) int { return int(code) + 1 }

// streamIDWidthCodeFor is the inverse of streamIDWidth, picking the smallest
// code that fits n bytes.
func streamIDWidthCodeFor(n int) uint8 { return uint8(n - 1) }

// offsetWidth maps a 3-bit width code to the number of bytes the offset
// occupies: code 0 means the offset is implicitly 0 and takes no wire
// space; codes 1..7 mean code+1 bytes (2 through 8).
func offsetWidth(code uint8) int {
	if code == 0 {
		return 0
	}
	return int(code) + 1
}

// offsetWidthCodeFor picks the width code for an offset occupying n bytes
// (0, or 2 through 8).
func offsetWidthCodeFor(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(n - 1)
}

// streamIDSize returns how many bytes (1-4) are needed to encode id.
func streamIDSize(id uint32) int {
	for i := 1; i <= 4; i++ {
		id >>= 8
		if id == 0 {
			return i
		}
	}
	return 4
}

// streamOffsetSize returns how many bytes are needed to encode offset: 0
// for an offset of 0, otherwise 2 through 8.
func streamOffsetSize(offset uint64) int {
	if offset == 0 {
		return 0
	}
	offset >>= 8
	for i := 2; i <= 8; i++ {
		offset >>= 8
		if offset == 0 {
			return i
		}
	}
	return 8
}
