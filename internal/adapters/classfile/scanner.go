// Package classfile reads the constant pool of compiled JVM class files.
package classfile

import (
	"iter"
	"strings"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BinaryScanner = (*Scanner)(nil)

// Magic is the leading word of every class file.
const Magic uint32 = 0xCAFEBABE

// Constant pool tags.
const (
	TagUtf8               byte = 1
	TagInteger            byte = 3
	TagFloat              byte = 4
	TagLong               byte = 5
	TagDouble             byte = 6
	TagClass              byte = 7
	TagString             byte = 8
	TagFieldref           byte = 9
	TagMethodref          byte = 10
	TagInterfaceMethodref byte = 11
	TagNameAndType        byte = 12
	TagMethodHandle       byte = 15
	TagMethodType         byte = 16
	TagDynamic            byte = 17
	TagInvokeDynamic      byte = 18
	TagModule             byte = 19
	TagPackage            byte = 20
)

// Scanner extracts class references from class files.
// It holds no state and is safe for concurrent use.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan yields the binary name of every CONSTANT_Class entry in pool order.
// Array types yield their element class and primitive arrays are skipped.
// The whole pool is validated before the first name is yielded, so a malformed
// file yields exactly one domain.ErrMalformedBinary and nothing else.
func (s *Scanner) Scan(data []byte) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		p, err := parse(data)
		if err != nil {
			yield("", err)
			return
		}

		names := make([]string, 0, len(p.classes))
		for _, idx := range p.classes {
			name, ok, err := p.className(idx)
			if err != nil {
				yield("", err)
				return
			}
			if ok {
				names = append(names, name)
			}
		}

		for _, name := range names {
			if !yield(name, nil) {
				return
			}
		}
	}
}

// ThisClass returns the binary name of the class declared by data.
func (s *Scanner) ThisClass(data []byte) (string, error) {
	p, err := parse(data)
	if err != nil {
		return "", err
	}

	r := &reader{data: data, off: p.end}
	if _, err := r.u2(); err != nil { // access_flags
		return "", err
	}
	idx, err := r.u2()
	if err != nil {
		return "", err
	}

	if int(idx) >= len(p.entries) || p.entries[idx].tag != TagClass {
		return "", malformed("this_class is not a class entry", r.off-2)
	}
	name, ok, err := p.className(idx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", malformed("this_class names a primitive type", r.off-2)
	}
	return name, nil
}

// BinaryName converts an internal class name or array descriptor into a
// dotted binary name. The boolean is false for primitive element types.
func BinaryName(internal string) (string, bool, error) {
	name := strings.TrimLeft(internal, "[")
	if name == "" {
		return "", false, zerr.With(zerr.Wrap(domain.ErrMalformedBinary, "empty class name"), "name", internal)
	}

	if len(name) != len(internal) {
		switch {
		case len(name) == 1 && strings.ContainsRune("BCDFIJSZ", rune(name[0])):
			return "", false, nil
		case len(name) > 2 && name[0] == 'L' && name[len(name)-1] == ';':
			name = name[1 : len(name)-1]
		default:
			return "", false, zerr.With(zerr.Wrap(domain.ErrMalformedBinary, "invalid array descriptor"), "name", internal)
		}
	}

	return strings.ReplaceAll(name, "/", "."), true, nil
}

func malformed(msg string, offset int) error {
	return zerr.With(zerr.Wrap(domain.ErrMalformedBinary, msg), "offset", offset)
}
