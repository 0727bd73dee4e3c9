package frontmatter

import "strings"

// Serialize renders a block back to fenced text in canonical form: keys in
// insertion order, scalar arrays inline, object arrays as indented "- "
// blocks. Nil values and empty arrays are skipped so that reading a
// serialized document never resurrects absent fields.
func Serialize(b *Block) string {
	var sb strings.Builder
	sb.WriteString(Fence)
	sb.WriteByte('\n')
	if b != nil {
		for _, k := range b.keys {
			writeEntry(&sb, k, b.vals[k], 0)
		}
	}
	sb.WriteString(Fence)
	sb.WriteByte('\n')
	return sb.String()
}

func writeEntry(sb *strings.Builder, key string, v any, indent int) {
	pad := strings.Repeat(" ", indent)
	switch t := v.(type) {
	case nil:
		return
	case []any:
		if len(t) == 0 {
			return
		}
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatScalar(e)
		}
		sb.WriteString(pad)
		sb.WriteString(key)
		sb.WriteString(": [")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("]\n")
	case []*Block:
		if len(t) == 0 {
			return
		}
		sb.WriteString(pad)
		sb.WriteString(key)
		sb.WriteString(":\n")
		for _, elem := range t {
			writeElement(sb, elem, indent+2)
		}
	case *Block:
		if t == nil || t.Len() == 0 {
			return
		}
		sb.WriteString(pad)
		sb.WriteString(key)
		sb.WriteString(":\n")
		for _, k := range t.keys {
			writeEntry(sb, k, t.vals[k], indent+2)
		}
	default:
		sb.WriteString(pad)
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(formatScalar(v))
		sb.WriteByte('\n')
	}
}

// writeElement renders one object-array element. The first field carries
// the "- " marker; subsequent fields sit two spaces deeper, which is the
// layout the parser's element frames expect back.
func writeElement(sb *strings.Builder, elem *Block, indent int) {
	var inner strings.Builder
	for _, k := range elem.keys {
		writeEntry(&inner, k, elem.vals[k], indent+2)
	}
	text := inner.String()
	if text == "" {
		return
	}
	pad := strings.Repeat(" ", indent)
	first := text
	rest := ""
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
		rest = text[i+1:]
	}
	sb.WriteString(pad)
	sb.WriteString("- ")
	sb.WriteString(strings.TrimPrefix(first, pad+"  "))
	sb.WriteByte('\n')
	sb.WriteString(rest)
}
