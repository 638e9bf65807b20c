package literals

import (
	"fmt"
	"strconv"
)

// Tag identifies the kind of a literal buffer entry. The numeric values are
// part of the binary format the runtime loader reads.
type Tag uint8

const (
	TagValue           Tag = 0x00
	TagBool            Tag = 0x01
	TagInteger         Tag = 0x02
	TagDouble          Tag = 0x04
	TagString          Tag = 0x05
	TagMethod          Tag = 0x06
	TagAccessor        Tag = 0x08
	TagMethodAffiliate Tag = 0x09
	TagLiteralArray    Tag = 0x18
	TagGetter          Tag = 0x1a
	TagSetter          Tag = 0x1b
	TagEtsImplements   Tag = 0x1c
	TagNullValue       Tag = 0xff
)

var tagNames = map[Tag]string{
	TagValue:           "tagvalue",
	TagBool:            "bool",
	TagInteger:         "integer",
	TagDouble:          "double",
	TagString:          "string",
	TagMethod:          "method",
	TagAccessor:        "accessor",
	TagMethodAffiliate: "method_affiliate",
	TagLiteralArray:    "literal_array",
	TagGetter:          "getter",
	TagSetter:          "setter",
	TagEtsImplements:   "ets_implements",
	TagNullValue:       "null_value",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(0x%02x)", uint8(t))
}

// Literal is one entry of a literal buffer. Which payload field is
// meaningful depends on Tag: Str for strings and tagged references, Int for
// integers and method affiliates, Num for doubles, Bool for booleans.
type Literal struct {
	Tag  Tag     `cbor:"1,keyasint"`
	Str  string  `cbor:"2,keyasint,omitempty"`
	Int  uint32  `cbor:"3,keyasint,omitempty"`
	Num  float64 `cbor:"4,keyasint,omitempty"`
	Bool bool    `cbor:"5,keyasint,omitempty"`
}

func String(s string) Literal      { return Literal{Tag: TagString, Str: s} }
func Integer(n uint32) Literal     { return Literal{Tag: TagInteger, Int: n} }
func Double(f float64) Literal     { return Literal{Tag: TagDouble, Num: f} }
func Bool(b bool) Literal          { return Literal{Tag: TagBool, Bool: b} }
func Null() Literal                { return Literal{Tag: TagNullValue} }
func Affiliate(count int) Literal  { return Literal{Tag: TagMethodAffiliate, Int: uint32(count)} }
func Method(target string) Literal { return Literal{Tag: TagMethod, Str: target} }
func Getter(target string) Literal { return Literal{Tag: TagGetter, Str: target} }
func Setter(target string) Literal { return Literal{Tag: TagSetter, Str: target} }

// LiteralArray references another buffer of the pool by its record-qualified name.
func LiteralArray(name string) Literal { return Literal{Tag: TagLiteralArray, Str: name} }

// EtsImplements carries the implemented interface list for the static
// language side.
func EtsImplements(names string) Literal { return Literal{Tag: TagEtsImplements, Str: names} }

// IsTagged reports whether the literal references a function or another
// buffer by name rather than carrying a plain value.
func (l Literal) IsTagged() bool {
	switch l.Tag {
	case TagMethod, TagGetter, TagSetter, TagAccessor, TagLiteralArray, TagEtsImplements:
		return true
	}
	return false
}

func (l Literal) String() string {
	switch l.Tag {
	case TagString:
		return "string " + strconv.Quote(l.Str)
	case TagInteger, TagMethodAffiliate:
		return fmt.Sprintf("%s %d", l.Tag, l.Int)
	case TagDouble:
		return "double " + strconv.FormatFloat(l.Num, 'g', -1, 64)
	case TagBool:
		return "bool " + strconv.FormatBool(l.Bool)
	case TagNullValue:
		return "null_value"
	}
	if l.IsTagged() {
		return l.Tag.String() + " " + l.Str
	}
	return l.Tag.String()
}
