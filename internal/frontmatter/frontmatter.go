// Package frontmatter parses and serializes the fenced metadata block at
// the top of a record document. The dialect is deliberately small: scalar
// fields, inline arrays of scalars, and indented arrays of nested objects.
// It is not a general YAML parser — no anchors, no multi-line scalars.
package frontmatter

// Block is an ordered key→value map. Values are one of:
//
//	string, float64, bool          scalar field
//	[]any                          inline array of scalars
//	[]*Block                       array of nested objects
//	*Block                         nested object
//
// Key order is insertion order and is preserved through Serialize.
type Block struct {
	keys []string
	vals map[string]any
}

// New returns an empty block.
func New() *Block {
	return &Block{vals: make(map[string]any)}
}

// Set stores a value under key, appending the key if it is new.
func (b *Block) Set(key string, v any) {
	if _, ok := b.vals[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.vals[key] = v
}

// Get returns the raw value for key.
func (b *Block) Get(key string) (any, bool) {
	v, ok := b.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (b *Block) Keys() []string {
	return b.keys
}

// Len returns the number of keys.
func (b *Block) Len() int {
	return len(b.keys)
}

// String returns the string value for key, or "" when absent or not a string.
func (b *Block) String(key string) string {
	s, _ := b.vals[key].(string)
	return s
}

// Float returns the numeric value for key, or 0.
func (b *Block) Float(key string) float64 {
	f, _ := b.vals[key].(float64)
	return f
}

// Int returns the numeric value for key truncated to int, or 0.
func (b *Block) Int(key string) int {
	return int(b.Float(key))
}

// Bool returns the boolean value for key, or false.
func (b *Block) Bool(key string) bool {
	v, _ := b.vals[key].(bool)
	return v
}

// Blocks returns the array-of-objects value for key, or nil.
func (b *Block) Blocks(key string) []*Block {
	v, _ := b.vals[key].([]*Block)
	return v
}

// Scalars returns the inline-array value for key, or nil.
func (b *Block) Scalars(key string) []any {
	v, _ := b.vals[key].([]any)
	return v
}

// Strings returns the inline-array value for key with every element
// rendered as its string form. Non-string scalars are formatted the same
// way Serialize would format them.
func (b *Block) Strings(key string) []string {
	raw := b.Scalars(key)
	if raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, formatScalar(v))
	}
	return out
}

// Child returns the nested object value for key, or nil.
func (b *Block) Child(key string) *Block {
	v, _ := b.vals[key].(*Block)
	return v
}

// Equal reports whether two blocks have the same keys in the same order
// with equal values, recursing into nested arrays and objects.
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	if len(b.keys) != len(other.keys) {
		return false
	}
	for i, k := range b.keys {
		if other.keys[i] != k {
			return false
		}
		if !valueEqual(b.vals[k], other.vals[k]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case *Block:
		bv, ok := b.(*Block)
		return ok && av.Equal(bv)
	case []*Block:
		bv, ok := b.([]*Block)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !av[i].Equal(bv[i]) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
