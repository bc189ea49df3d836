// Package classfiletest builds minimal class files for tests.
package classfiletest

import (
	"encoding/binary"
	"strings"
)

// Builder assembles a class file whose constant pool holds the declared class,
// its references and any extra constants added by the test.
type Builder struct {
	pool      []byte
	count     uint16
	utf8      map[string]uint16
	classes   map[string]uint16
	thisClass uint16
	super     uint16
}

// New starts a class file declaring the named class.
func New(thisClass string) *Builder {
	b := &Builder{
		count:   1,
		utf8:    make(map[string]uint16),
		classes: make(map[string]uint16),
	}
	b.thisClass = b.Class(thisClass)
	return b
}

// Build returns the bytes of a class declaring thisClass and referencing refs.
func Build(thisClass string, refs ...string) []byte {
	return New(thisClass).Ref(refs...).Bytes()
}

// Ref adds class entries for every name. Dotted binary names are converted to
// internal form; array descriptors are kept as given.
func (b *Builder) Ref(names ...string) *Builder {
	for _, n := range names {
		b.Class(n)
	}
	return b
}

// Super sets the superclass entry.
func (b *Builder) Super(name string) *Builder {
	b.super = b.Class(name)
	return b
}

// Class adds a class entry and returns its index.
func (b *Builder) Class(name string) uint16 {
	internal := name
	if !strings.HasPrefix(name, "[") {
		internal = strings.ReplaceAll(name, ".", "/")
	}
	if idx, ok := b.classes[internal]; ok {
		return idx
	}
	nameIdx := b.Utf8(internal)
	idx := b.add(7, u2(nameIdx))
	b.classes[internal] = idx
	return idx
}

// Utf8 adds a utf8 entry and returns its index. Only characters below U+0800
// other than NUL are encoded identically in standard and modified UTF-8.
func (b *Builder) Utf8(s string) uint16 {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	return b.RawUtf8([]byte(s))
}

// RawUtf8 adds a utf8 entry holding raw bytes.
func (b *Builder) RawUtf8(raw []byte) uint16 {
	payload := append(u2(uint16(len(raw))), raw...)
	idx := b.add(1, payload)
	b.utf8[string(raw)] = idx
	return idx
}

// String adds a string constant.
func (b *Builder) String(s string) *Builder {
	b.add(8, u2(b.Utf8(s)))
	return b
}

// Integer adds an integer constant.
func (b *Builder) Integer(v int32) *Builder {
	b.add(3, binary.BigEndian.AppendUint32(nil, uint32(v)))
	return b
}

// Long adds a long constant, which occupies two pool slots.
func (b *Builder) Long(v int64) *Builder {
	b.add(5, binary.BigEndian.AppendUint64(nil, uint64(v)))
	b.count++
	return b
}

// Double adds a double constant bit pattern, which occupies two pool slots.
func (b *Builder) Double(bits uint64) *Builder {
	b.add(6, binary.BigEndian.AppendUint64(nil, bits))
	b.count++
	return b
}

// MethodHandle adds a method handle constant.
func (b *Builder) MethodHandle(kind byte, ref uint16) *Builder {
	b.add(15, append([]byte{kind}, u2(ref)...))
	return b
}

// Raw appends a constant with an arbitrary tag and payload.
func (b *Builder) Raw(tag byte, payload []byte) uint16 {
	return b.add(tag, payload)
}

// Bytes returns the encoded class file.
func (b *Builder) Bytes() []byte {
	out := binary.BigEndian.AppendUint32(nil, 0xCAFEBABE)
	out = append(out, u2(0)...)  // minor
	out = append(out, u2(65)...) // major
	out = append(out, u2(b.count)...)
	out = append(out, b.pool...)
	out = append(out, u2(0x0021)...) // ACC_PUBLIC | ACC_SUPER
	out = append(out, u2(b.thisClass)...)
	out = append(out, u2(b.super)...)
	out = append(out, u2(0)...) // interfaces
	out = append(out, u2(0)...) // fields
	out = append(out, u2(0)...) // methods
	out = append(out, u2(0)...) // attributes
	return out
}

func (b *Builder) add(tag byte, payload []byte) uint16 {
	idx := b.count
	b.pool = append(b.pool, tag)
	b.pool = append(b.pool, payload...)
	b.count++
	return idx
}

func u2(v uint16) []byte {
	return binary.BigEndian.AppendUint16(nil, v)
}
