package farq

import "encoding/binary"

// encodeHeader writes the 24-byte little-endian header for s into buf,
// which must be at least headerSize bytes. The header fields are taken from
// s as they stand, so callers refresh a segment's ts/wnd/una before
// emitting it. Returns the number of bytes written.
func encodeHeader(buf []byte, conv uint32, s *segment) int {
	binary.LittleEndian.PutUint32(buf[0:4], conv)
	buf[4] = s.cmd
	buf[5] = s.frg
	binary.LittleEndian.PutUint16(buf[6:8], s.wnd)
	binary.LittleEndian.PutUint32(buf[8:12], s.ts)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(s.sn))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(s.una))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(len(s.payload)))
	return headerSize
}

// decodedHeader is a parsed wire record header prior to payload validation.
type decodedHeader struct {
	conv uint32
	cmd  byte
	frg  byte
	wnd  uint16
	ts   uint32
	sn   Value
	una  Value
	ln   uint32
}

// decodeHeader parses the fixed 24-byte header at the front of buf. Callers
// must ensure len(buf) >= headerSize.
func decodeHeader(buf []byte) decodedHeader {
	return decodedHeader{
		conv: binary.LittleEndian.Uint32(buf[0:4]),
		cmd:  buf[4],
		frg:  buf[5],
		wnd:  binary.LittleEndian.Uint16(buf[6:8]),
		ts:   binary.LittleEndian.Uint32(buf[8:12]),
		sn:   Value(binary.LittleEndian.Uint32(buf[12:16])),
		una:  Value(binary.LittleEndian.Uint32(buf[16:20])),
		ln:   binary.LittleEndian.Uint32(buf[20:24]),
	}
}

// GetConv extracts the conversation id from the first 4 bytes of a datagram,
// for embedders that need to demultiplex before handing the datagram to the
// right Engine (§6.2 getconv).
func GetConv(datagram []byte) (uint32, bool) {
	if len(datagram) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(datagram[0:4]), true
}
