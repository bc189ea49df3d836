package classfile

import (
	"encoding/binary"
	"unicode/utf16"
)

type entry struct {
	tag byte
	// off is the offset of the entry's payload, just past the tag.
	off int
	// ref is the name index of class entries.
	ref uint16
	// size is the byte length of utf8 payloads.
	size int
}

type pool struct {
	data    []byte
	entries []entry
	// classes holds the indices of CONSTANT_Class entries in pool order.
	classes []uint16
	// end is the offset of the first byte after the pool.
	end int
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) need(n int) error {
	if n < 0 || r.off+n > len(r.data) {
		return malformed("unexpected end of class file", r.off)
	}
	return nil
}

func (r *reader) u1() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *reader) u2() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) u4() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

// payloadSize returns the fixed payload length of tags other than Utf8 and Class.
func payloadSize(tag byte) (int, bool) {
	switch tag {
	case TagMethodType, TagModule, TagPackage, TagString:
		return 2, true
	case TagMethodHandle:
		return 3, true
	case TagInteger, TagFloat, TagFieldref, TagMethodref, TagInterfaceMethodref,
		TagNameAndType, TagDynamic, TagInvokeDynamic:
		return 4, true
	case TagLong, TagDouble:
		return 8, true
	default:
		return 0, false
	}
}

func parse(data []byte) (*pool, error) {
	r := &reader{data: data}

	m, err := r.u4()
	if err != nil {
		return nil, err
	}
	if m != Magic {
		return nil, malformed("bad magic number", 0)
	}
	if err := r.skip(4); err != nil { // minor and major version
		return nil, err
	}

	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, malformed("empty constant pool", r.off-2)
	}

	p := &pool{data: data, entries: make([]entry, count)}
	for i := 1; i < int(count); i++ {
		tagOff := r.off
		tag, err := r.u1()
		if err != nil {
			return nil, err
		}

		e := entry{tag: tag, off: r.off}
		switch tag {
		case TagUtf8:
			size, err := r.u2()
			if err != nil {
				return nil, err
			}
			e.off = r.off
			e.size = int(size)
			if err := r.skip(e.size); err != nil {
				return nil, err
			}
		case TagClass:
			if e.ref, err = r.u2(); err != nil {
				return nil, err
			}
			p.classes = append(p.classes, uint16(i))
		default:
			n, ok := payloadSize(tag)
			if !ok {
				return nil, malformed("unknown constant pool tag", tagOff)
			}
			if err := r.skip(n); err != nil {
				return nil, err
			}
		}
		p.entries[i] = e

		// Long and double constants take two slots.
		if tag == TagLong || tag == TagDouble {
			i++
		}
	}

	p.end = r.off
	return p, nil
}

// className decodes the class entry at idx.
func (p *pool) className(idx uint16) (string, bool, error) {
	ref := p.entries[idx].ref
	if ref == 0 || int(ref) >= len(p.entries) || p.entries[ref].tag != TagUtf8 {
		return "", false, malformed("class entry does not reference a utf8 entry", p.entries[idx].off)
	}

	e := p.entries[ref]
	internal, err := decodeModifiedUTF8(p.data[e.off:e.off+e.size], e.off)
	if err != nil {
		return "", false, err
	}
	return BinaryName(internal)
}

// decodeModifiedUTF8 decodes the JVM's modified UTF-8: NUL is encoded in two
// bytes and supplementary characters as surrogate pairs of three bytes each.
func decodeModifiedUTF8(b []byte, base int) (string, error) {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c != 0 && c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", malformed("invalid modified utf-8", base+i)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", malformed("invalid modified utf-8", base+i)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return "", malformed("invalid modified utf-8", base+i)
		}
	}
	return string(utf16.Decode(units)), nil
}
