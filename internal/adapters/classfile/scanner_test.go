package classfile_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cpinfer/internal/adapters/classfile"
	"go.trai.ch/cpinfer/internal/adapters/classfile/classfiletest"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/zerr"
)

func collect(t *testing.T, data []byte) ([]string, []error) {
	t.Helper()
	var names []string
	var errs []error
	for name, err := range classfile.NewScanner().Scan(data) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		names = append(names, name)
	}
	return names, errs
}

func TestScanner_Scan_PoolOrder(t *testing.T) {
	data := classfiletest.New("com.acme.Main").
		Super("java.lang.Object").
		Ref("com.acme.Util", "java.lang.String").
		Bytes()

	names, errs := collect(t, data)
	require.Empty(t, errs)
	assert.Equal(t, []string{"com.acme.Main", "java.lang.Object", "com.acme.Util", "java.lang.String"}, names)
}

func TestScanner_Scan_ArraysAndPrimitives(t *testing.T) {
	data := classfiletest.Build("com.acme.Main",
		"[Lcom/acme/Dep;",
		"[[Lcom/acme/Deep;",
		"[I",
		"[[J",
		"[Z",
	)

	names, errs := collect(t, data)
	require.Empty(t, errs)
	assert.Equal(t, []string{"com.acme.Main", "com.acme.Dep", "com.acme.Deep"}, names)
}

func TestScanner_Scan_WideConstantsTakeTwoSlots(t *testing.T) {
	data := classfiletest.New("a.B").
		Long(42).
		Ref("c.D").
		Double(0x400921FB54442D18).
		Integer(7).
		String("hello").
		MethodHandle(6, 1).
		Ref("e.F").
		Bytes()

	names, errs := collect(t, data)
	require.Empty(t, errs)
	assert.Equal(t, []string{"a.B", "c.D", "e.F"}, names)
}

func TestScanner_Scan_ModifiedUTF8(t *testing.T) {
	b := classfiletest.New("a.B")
	// U+1F600 as a surrogate pair, each half encoded in three bytes.
	idx := b.RawUtf8([]byte{'p', '/', 'X', 0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80})
	b.Raw(classfile.TagClass, []byte{byte(idx >> 8), byte(idx)})

	names, errs := collect(t, b.Bytes())
	require.Empty(t, errs)
	assert.Equal(t, []string{"a.B", "p.X\U0001F600"}, names)
}

func TestScanner_Scan_Restartable(t *testing.T) {
	data := classfiletest.Build("a.B", "c.D")
	scanner := classfile.NewScanner()
	seq := scanner.Scan(data)

	var first, second []string
	for name := range seq {
		first = append(first, name)
	}
	for name := range seq {
		second = append(second, name)
	}
	assert.Equal(t, first, second)
}

func TestScanner_Scan_StopsEarly(t *testing.T) {
	data := classfiletest.Build("a.B", "c.D", "e.F")

	var got []string
	for name := range classfile.NewScanner().Scan(data) {
		got = append(got, name)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.B", "c.D"}, got)
}

func TestScanner_Scan_DoesNotMutateInput(t *testing.T) {
	data := classfiletest.Build("a.B", "[Lc/D;")
	orig := slices.Clone(data)

	_, _ = collect(t, data)
	assert.Equal(t, orig, data)
}

func TestScanner_Scan_Malformed(t *testing.T) {
	valid := classfiletest.Build("com.acme.Main", "com.acme.Util")

	unknownTag := classfiletest.New("a.B")
	unknownTag.Raw(2, []byte{0, 0})

	classToInteger := classfiletest.New("a.B")
	intIdx := classToInteger.Raw(classfile.TagInteger, []byte{0, 0, 0, 1})
	classToInteger.Raw(classfile.TagClass, []byte{byte(intIdx >> 8), byte(intIdx)})

	classOutOfRange := classfiletest.New("a.B")
	classOutOfRange.Raw(classfile.TagClass, []byte{0x7F, 0xFF})

	badUTF8 := classfiletest.New("a.B")
	badIdx := badUTF8.RawUtf8([]byte{'a', 0x00})
	badUTF8.Raw(classfile.TagClass, []byte{byte(badIdx >> 8), byte(badIdx)})

	badDescriptor := classfiletest.Build("a.B", "[Q")

	tests := []struct {
		name   string
		data   []byte
		offset int
	}{
		{name: "empty", data: nil, offset: 0},
		{name: "bad magic", data: []byte{0xCA, 0xFE, 0xBA, 0xBF, 0, 0, 0, 65, 0, 1}, offset: 0},
		{name: "truncated header", data: valid[:9], offset: 8},
		{name: "truncated pool", data: valid[:20], offset: 13},
		{name: "unknown tag", data: unknownTag.Bytes(), offset: 19},
		{name: "class to integer", data: classToInteger.Bytes(), offset: -1},
		{name: "class out of range", data: classOutOfRange.Bytes(), offset: -1},
		{name: "invalid utf8", data: badUTF8.Bytes(), offset: -1},
		{name: "bad array descriptor", data: badDescriptor, offset: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, errs := collect(t, tt.data)
			assert.Empty(t, names)
			require.Len(t, errs, 1)
			assert.True(t, errors.Is(errs[0], domain.ErrMalformedBinary), "got %v", errs[0])

			if tt.offset >= 0 {
				var zErr *zerr.Error
				require.ErrorAs(t, errs[0], &zErr)
				assert.Equal(t, tt.offset, zErr.Metadata()["offset"])
			}
		})
	}
}

func TestScanner_ThisClass(t *testing.T) {
	scanner := classfile.NewScanner()

	name, err := scanner.ThisClass(classfiletest.Build("com.acme.Main", "com.acme.Util"))
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Main", name)

	_, err = scanner.ThisClass([]byte{0xCA, 0xFE})
	require.ErrorIs(t, err, domain.ErrMalformedBinary)
}

func TestBinaryName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
		err  bool
	}{
		{in: "com/acme/Main", want: "com.acme.Main", ok: true},
		{in: "com/acme/Outer$Inner", want: "com.acme.Outer$Inner", ok: true},
		{in: "[Lcom/acme/Main;", want: "com.acme.Main", ok: true},
		{in: "[[[Ljava/lang/String;", want: "java.lang.String", ok: true},
		{in: "[D"},
		{in: "", err: true},
		{in: "[", err: true},
		{in: "[L;", err: true},
		{in: "[Lcom/acme/Main", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok, err := classfile.BinaryName(tt.in)
			if tt.err {
				require.ErrorIs(t, err, domain.ErrMalformedBinary)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
