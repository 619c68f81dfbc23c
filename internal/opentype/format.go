package opentype

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// String renders ty as a type expression accepted by Parse.
func String(ty cty.Type) string {
	var sb strings.Builder
	writeType(&sb, ty)
	return sb.String()
}

func writeType(sb *strings.Builder, ty cty.Type) {
	switch {
	case ty == cty.DynamicPseudoType:
		sb.WriteString("any")
	case ty == cty.String:
		sb.WriteString("string")
	case ty == cty.Number:
		sb.WriteString("number")
	case ty == cty.Bool:
		sb.WriteString("bool")
	case ty.IsListType():
		sb.WriteString("list(")
		writeType(sb, ty.ElementType())
		sb.WriteByte(')')
	case ty.IsSetType():
		sb.WriteString("set(")
		writeType(sb, ty.ElementType())
		sb.WriteByte(')')
	case ty.IsMapType():
		sb.WriteString("map(")
		writeType(sb, ty.ElementType())
		sb.WriteByte(')')
	case ty.IsTupleType():
		sb.WriteString("tuple([")
		for i, ety := range ty.TupleElementTypes() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeType(sb, ety)
		}
		sb.WriteString("])")
	case ty.IsObjectType():
		atys := ty.AttributeTypes()
		names := make([]string, 0, len(atys))
		for name := range atys {
			names = append(names, name)
		}
		sort.Strings(names)
		sb.WriteString("object({")
		for i, name := range names {
			if i > 0 {
				sb.WriteString(", ")
			}
			if isIdentifier(name) {
				sb.WriteString(name)
			} else {
				sb.WriteString(strconv.Quote(name))
			}
			sb.WriteString("=")
			writeType(sb, atys[name])
		}
		sb.WriteString("})")
	default:
		// Capsule types have no textual form.
		sb.WriteString(ty.FriendlyName())
	}
}

// IsStructured reports whether ty is a composite open type, i.e. anything
// but a primitive or the dynamic pseudo-type.
func IsStructured(ty cty.Type) bool {
	return ty.IsObjectType() || ty.IsTupleType() || ty.IsCollectionType()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}
