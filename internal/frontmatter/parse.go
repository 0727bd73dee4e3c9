package frontmatter

import "strings"

// Fence delimits the metadata block at the very start of a document.
const Fence = "---"

// Parse splits a document into its metadata block and the remaining body.
// When the document does not open with a fence, or the fence never closes,
// the block is nil and the entire input is returned as the remainder.
func Parse(text string) (*Block, string) {
	if !strings.HasPrefix(text, Fence) {
		return nil, text
	}
	pos := len(Fence)
	if pos < len(text) && text[pos] == '\r' {
		pos++
	}
	if pos >= len(text) || text[pos] != '\n' {
		return nil, text
	}
	pos++

	start := pos
	for pos <= len(text) {
		lineEnd := strings.IndexByte(text[pos:], '\n')
		next := len(text) + 1
		line := text[pos:]
		if lineEnd >= 0 {
			line = text[pos : pos+lineEnd]
			next = pos + lineEnd + 1
		}
		if strings.TrimRight(line, "\r") == Fence {
			remainder := ""
			if next <= len(text) {
				remainder = text[next:]
			}
			return parseLines(strings.Split(text[start:pos], "\n")), remainder
		}
		pos = next
	}
	return nil, text
}

// frame is one level of the parse stack. Object frames receive key: value
// lines at their indent; array frames receive "- " elements at theirs. An
// array frame addresses its slice through (parent, key) so appends update
// the owning block in place.
type frame struct {
	obj    *Block
	parent *Block
	key    string
	indent int
}

func (f *frame) isArray() bool { return f.obj == nil }

func (f *frame) appendElem(elem *Block) {
	arr, _ := f.parent.vals[f.key].([]*Block)
	f.parent.vals[f.key] = append(arr, elem)
}

func parseLines(lines []string) *Block {
	root := New()
	stack := []*frame{{obj: root, indent: 0}}

	for idx := 0; idx < len(lines); idx++ {
		content := strings.TrimSpace(lines[idx])
		if content == "" {
			continue
		}
		indent := countIndent(lines[idx])
		isItem := strings.HasPrefix(content, "- ")

		// Pop frames this line can no longer belong to. A line at equal
		// indent stays only when its shape matches the frame kind.
		for len(stack) > 1 {
			top := stack[len(stack)-1]
			if top.indent > indent || (top.indent == indent && top.isArray() != isItem) {
				stack = stack[:len(stack)-1]
				continue
			}
			break
		}
		top := stack[len(stack)-1]

		if isItem {
			if !top.isArray() || top.indent != indent {
				continue // stray list item
			}
			elem := New()
			top.appendElem(elem)
			stack = append(stack, &frame{obj: elem, indent: indent + 2})
			idx = handleField(elem, content[2:], indent+2, lines, idx, &stack)
			continue
		}
		if top.isArray() {
			continue
		}
		idx = handleField(top.obj, content, indent, lines, idx, &stack)
	}
	return root
}

// handleField applies one "key: value" line to obj. A bare "key:" opens a
// nested block; one line of look-ahead at greater indentation decides
// whether that block is an array (next line starts with "- ") or an
// object. Returns the possibly-advanced line index.
func handleField(obj *Block, content string, indent int, lines []string, idx int, stack *[]*frame) int {
	colon := strings.IndexByte(content, ':')
	if colon < 0 {
		return idx
	}
	key := strings.TrimSpace(content[:colon])
	rest := strings.TrimSpace(content[colon+1:])
	if key == "" {
		return idx
	}

	if rest == "" {
		nextContent, nextIndent, ok := peekNonBlank(lines, idx+1)
		if !ok || nextIndent <= indent {
			return idx // dangling key, nothing to attach
		}
		if strings.HasPrefix(nextContent, "- ") {
			obj.Set(key, []*Block{})
			*stack = append(*stack, &frame{parent: obj, key: key, indent: nextIndent})
		} else {
			child := New()
			obj.Set(key, child)
			*stack = append(*stack, &frame{obj: child, indent: nextIndent})
		}
		return idx
	}

	if strings.HasPrefix(rest, "[") && strings.HasSuffix(rest, "]") && !strings.HasPrefix(rest, "[[") {
		inner := rest[1 : len(rest)-1]
		if strings.TrimSpace(inner) == "" {
			obj.Set(key, []any{})
			return idx
		}
		parts := splitInlineArray(inner)
		arr := make([]any, 0, len(parts))
		for _, p := range parts {
			arr = append(arr, decodeScalar(p))
		}
		obj.Set(key, arr)
		return idx
	}

	obj.Set(key, decodeScalar(rest))
	return idx
}

func peekNonBlank(lines []string, from int) (content string, indent int, ok bool) {
	for i := from; i < len(lines); i++ {
		c := strings.TrimSpace(lines[i])
		if c == "" {
			continue
		}
		return c, countIndent(lines[i]), true
	}
	return "", 0, false
}

func countIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
