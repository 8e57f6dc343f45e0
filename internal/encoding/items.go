package encoding

// ReadVarItems reads a VarInt count followed by that many records, each
// parsed by parseOne. This is spec.md §4.1's parse_items(T) helper.
func ReadVarItems[T any](c *Cursor, parseOne func(*Cursor) (T, error)) ([]T, error) {
	n, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, n)
	for i := uint64(0); i < n; i++ {
		item, err := parseOne(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// AppendVarItems appends a VarInt count of items followed by each item
// serialized by writeOne.
func AppendVarItems[T any](dst []byte, items []T, writeOne func([]byte, T) []byte) []byte {
	dst = AppendVarInt(dst, uint64(len(items)))
	for _, item := range items {
		dst = writeOne(dst, item)
	}
	return dst
}

// ReverseBytes returns a reversed copy of b (used for TXID display form).
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
