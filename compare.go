package memscan

import (
	"cmp"
	"encoding/binary"
	"math"
	"strconv"
)

// Comparator is one of the six predicates spec'd for value filtering.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNe
	CmpGt
	CmpGe
	CmpLt
	CmpLe
)

// Filters groups filter literals by comparator. A driver invocation applies
// them as an ordered conjunction: eq first, then ne, gt, ge, lt, le. Within
// one list, every literal is applied in order (each narrows further).
type Filters struct {
	Eq, Ne, Gt, Ge, Lt, Le []string
}

func cmpOrdered[T cmp.Ordered](op Comparator, a, b T) bool {
	switch op {
	case CmpEq:
		return a == b
	case CmpNe:
		return a != b
	case CmpGt:
		return a > b
	case CmpGe:
		return a >= b
	case CmpLt:
		return a < b
	case CmpLe:
		return a <= b
	default:
		return false
	}
}

// applyOne retains addresses in set whose decoded value at width bytes
// compares true to the literal under op. An unparseable literal clears the
// entire set — deliberate, destructive parity with the source behavior this
// system was distilled from.
func applyOne[T cmp.Ordered](set *ScanSet, view *View, width int, decode func([]byte) T, parse func(string) (T, bool), op Comparator, literal string) {
	rhs, ok := parse(literal)
	if !ok {
		set.Retain(func(Address) bool { return false })
		return
	}

	set.Retain(func(addr Address) bool {
		buf := view.Lookup(addr)
		if len(buf) < width {
			return false
		}
		return cmpOrdered(op, decode(buf[:width]), rhs)
	})
}

func applyForType[T cmp.Ordered](set *ScanSet, view *View, width int, decode func([]byte) T, parse func(string) (T, bool), filters Filters) {
	for _, lit := range filters.Eq {
		applyOne(set, view, width, decode, parse, CmpEq, lit)
	}
	for _, lit := range filters.Ne {
		applyOne(set, view, width, decode, parse, CmpNe, lit)
	}
	for _, lit := range filters.Gt {
		applyOne(set, view, width, decode, parse, CmpGt, lit)
	}
	for _, lit := range filters.Ge {
		applyOne(set, view, width, decode, parse, CmpGe, lit)
	}
	for _, lit := range filters.Lt {
		applyOne(set, view, width, decode, parse, CmpLt, lit)
	}
	for _, lit := range filters.Le {
		applyOne(set, view, width, decode, parse, CmpLe, lit)
	}
}

// ApplyFilters runs the comparison driver against every active ScanSet in
// group, using view as the source of current bytes.
func ApplyFilters(group *ScanGroup, view *View, filters Filters) {
	if s := group.Set(TagU8); s != nil {
		applyForType(s, view, 1, decodeU8, parseU8, filters)
	}
	if s := group.Set(TagU16); s != nil {
		applyForType(s, view, 2, decodeU16, parseU16, filters)
	}
	if s := group.Set(TagU32); s != nil {
		applyForType(s, view, 4, decodeU32, parseU32, filters)
	}
	if s := group.Set(TagU64); s != nil {
		applyForType(s, view, 8, decodeU64, parseU64, filters)
	}
	if s := group.Set(TagI8); s != nil {
		applyForType(s, view, 1, decodeI8, parseI8, filters)
	}
	if s := group.Set(TagI16); s != nil {
		applyForType(s, view, 2, decodeI16, parseI16, filters)
	}
	if s := group.Set(TagI32); s != nil {
		applyForType(s, view, 4, decodeI32, parseI32, filters)
	}
	if s := group.Set(TagI64); s != nil {
		applyForType(s, view, 8, decodeI64, parseI64, filters)
	}
	if s := group.Set(TagF32); s != nil {
		applyForType(s, view, 4, decodeF32, parseF32, filters)
	}
	if s := group.Set(TagF64); s != nil {
		applyForType(s, view, 8, decodeF64, parseF64, filters)
	}
}

// Typed decode/parse/encode helpers. Decoding and encoding always use host
// byte order (encoding/binary.NativeEndian); float comparisons rely on Go's
// native IEEE 754 operators, under which NaN compares false against every
// operand including itself, matching the spec'd total-order-not-used
// semantics with no special-casing required.

func decodeU8(b []byte) uint8   { return b[0] }
func decodeU16(b []byte) uint16 { return binary.NativeEndian.Uint16(b) }
func decodeU32(b []byte) uint32 { return binary.NativeEndian.Uint32(b) }
func decodeU64(b []byte) uint64 { return binary.NativeEndian.Uint64(b) }

func decodeI8(b []byte) int8   { return int8(b[0]) }
func decodeI16(b []byte) int16 { return int16(binary.NativeEndian.Uint16(b)) }
func decodeI32(b []byte) int32 { return int32(binary.NativeEndian.Uint32(b)) }
func decodeI64(b []byte) int64 { return int64(binary.NativeEndian.Uint64(b)) }

func decodeF32(b []byte) float32 { return math.Float32frombits(binary.NativeEndian.Uint32(b)) }
func decodeF64(b []byte) float64 { return math.Float64frombits(binary.NativeEndian.Uint64(b)) }

func encodeU8(v uint8) []byte { return []byte{v} }
func encodeU16(v uint16) []byte {
	b := make([]byte, 2)
	binary.NativeEndian.PutUint16(b, v)
	return b
}
func encodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, v)
	return b
}
func encodeU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, v)
	return b
}

func encodeI8(v int8) []byte     { return []byte{byte(v)} }
func encodeI16(v int16) []byte   { return encodeU16(uint16(v)) }
func encodeI32(v int32) []byte   { return encodeU32(uint32(v)) }
func encodeI64(v int64) []byte   { return encodeU64(uint64(v)) }
func encodeF32(v float32) []byte { return encodeU32(math.Float32bits(v)) }
func encodeF64(v float64) []byte { return encodeU64(math.Float64bits(v)) }

func parseU8(s string) (uint8, bool) {
	v, err := strconv.ParseUint(s, 10, 8)
	return uint8(v), err == nil
}
func parseU16(s string) (uint16, bool) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err == nil
}
func parseU32(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err == nil
}
func parseU64(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	return v, err == nil
}

func parseI8(s string) (int8, bool) {
	v, err := strconv.ParseInt(s, 10, 8)
	return int8(v), err == nil
}
func parseI16(s string) (int16, bool) {
	v, err := strconv.ParseInt(s, 10, 16)
	return int16(v), err == nil
}
func parseI32(s string) (int32, bool) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err == nil
}
func parseI64(s string) (int64, bool) {
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

func parseF32(s string) (float32, bool) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err == nil
}
func parseF64(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// EncodeValue serializes a literal of the given type in host byte order, for
// use by the write command. It reports ok=false on an unparsable literal.
func EncodeValue(t TypeTag, literal string) (data []byte, ok bool) {
	switch t {
	case TagU8:
		v, ok := parseU8(literal)
		return encodeU8(v), ok
	case TagU16:
		v, ok := parseU16(literal)
		return encodeU16(v), ok
	case TagU32:
		v, ok := parseU32(literal)
		return encodeU32(v), ok
	case TagU64:
		v, ok := parseU64(literal)
		return encodeU64(v), ok
	case TagI8:
		v, ok := parseI8(literal)
		return encodeI8(v), ok
	case TagI16:
		v, ok := parseI16(literal)
		return encodeI16(v), ok
	case TagI32:
		v, ok := parseI32(literal)
		return encodeI32(v), ok
	case TagI64:
		v, ok := parseI64(literal)
		return encodeI64(v), ok
	case TagF32:
		v, ok := parseF32(literal)
		return encodeF32(v), ok
	case TagF64:
		v, ok := parseF64(literal)
		return encodeF64(v), ok
	default:
		return nil, false
	}
}

// FormatValue decodes buf (which must be at least t.Width() bytes) as t and
// renders it for display, for use by `scan info`.
func FormatValue(t TypeTag, buf []byte) string {
	if len(buf) < t.Width() {
		return ""
	}

	switch t {
	case TagU8:
		return strconv.FormatUint(uint64(decodeU8(buf)), 10)
	case TagU16:
		return strconv.FormatUint(uint64(decodeU16(buf)), 10)
	case TagU32:
		return strconv.FormatUint(uint64(decodeU32(buf)), 10)
	case TagU64:
		return strconv.FormatUint(decodeU64(buf), 10)
	case TagI8:
		return strconv.FormatInt(int64(decodeI8(buf)), 10)
	case TagI16:
		return strconv.FormatInt(int64(decodeI16(buf)), 10)
	case TagI32:
		return strconv.FormatInt(int64(decodeI32(buf)), 10)
	case TagI64:
		return strconv.FormatInt(decodeI64(buf), 10)
	case TagF32:
		return strconv.FormatFloat(float64(decodeF32(buf)), 'g', -1, 32)
	case TagF64:
		return strconv.FormatFloat(decodeF64(buf), 'g', -1, 64)
	default:
		return ""
	}
}
