package synth

import (
	"bytes"
	"encoding/binary"
)

// Control and display datagrams share one framing: a NUL-terminated address
// padded to a 4-byte boundary, a NUL-terminated type tag (",i...", ",s")
// padded the same way, then one big-endian 32-bit value per declared
// argument.

func pad4(n int) int {
	return (n + 3) &^ 3
}

// ----- Decoding ----- //

type controlMessage struct {
	addr string
	args []int32
}

// cursor reads fields out of a datagram and fails closed: any read past the
// end of the buffer reports false and the message is discarded whole.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) readString() (string, bool) {
	if c.off >= len(c.buf) {
		return "", false
	}
	i := bytes.IndexByte(c.buf[c.off:], 0)
	if i < 0 {
		return "", false
	}
	s := string(c.buf[c.off : c.off+i])
	next := c.off + pad4(i+1)
	if next > len(c.buf) {
		return "", false
	}
	c.off = next
	return s, true
}

func (c *cursor) readInt32() (int32, bool) {
	if c.off+4 > len(c.buf) {
		return 0, false
	}
	v := int32(binary.BigEndian.Uint32(c.buf[c.off:]))
	c.off += 4
	return v, true
}

// decodeControlMessage parses one datagram. ok is false for anything
// truncated or malformed; the caller drops those silently.
func decodeControlMessage(buf []byte) (controlMessage, bool) {
	var m controlMessage
	c := &cursor{buf: buf}
	addr, ok := c.readString()
	if !ok || addr == "" {
		return m, false
	}
	tag, ok := c.readString()
	if !ok || len(tag) == 0 || tag[0] != ',' {
		return m, false
	}
	args := make([]int32, 0, len(tag)-1)
	for _, t := range tag[1:] {
		if t != 'i' {
			return m, false
		}
		v, ok := c.readInt32()
		if !ok {
			return m, false
		}
		args = append(args, v)
	}
	m.addr = addr
	m.args = args
	return m, true
}

// ----- Encoding ----- //

func appendPaddedString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	for n := pad4(len(s)+1) - len(s); n > 0; n-- {
		buf = append(buf, 0)
	}
	return buf
}

func encodeString(addr string, value string) []byte {
	buf := make([]byte, 0, pad4(len(addr)+1)+4+pad4(len(value)+1))
	buf = appendPaddedString(buf, addr)
	buf = appendPaddedString(buf, ",s")
	buf = appendPaddedString(buf, value)
	return buf
}

func encodeInt32s(addr string, values ...int32) []byte {
	tag := make([]byte, 1, 1+len(values))
	tag[0] = ','
	for range values {
		tag = append(tag, 'i')
	}
	buf := make([]byte, 0, pad4(len(addr)+1)+pad4(len(tag)+1)+4*len(values))
	buf = appendPaddedString(buf, addr)
	buf = appendPaddedString(buf, string(tag))
	for _, v := range values {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		buf = append(buf, b[:]...)
	}
	return buf
}
