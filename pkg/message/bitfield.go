package message

// BitField is the piece-availability bitmap a peer sends right after
// the handshake. High bit of byte 0 is piece 0.
type BitField struct {
	Fields []byte
}

var _ Message = &BitField{}

// Marshal ...
func (m *BitField) Marshal() ([]byte, error) {
	return m.Fields, nil
}

// Unmarshal ...
func (m *BitField) Unmarshal(r []byte) error {
	m.Fields = make([]byte, len(r))
	copy(m.Fields, r)
	return nil
}

// HasPiece ...
func (m *BitField) HasPiece(index int) bool {
	byteIndex, bitMask := index/8, byte(1<<(7-index%8))
	if byteIndex < 0 || byteIndex >= len(m.Fields) {
		return false
	}
	return m.Fields[byteIndex]&bitMask == bitMask
}

// SetPiece ...
func (m *BitField) SetPiece(index int) {
	byteIndex, bitMask := index/8, byte(1<<(7-index%8))
	if byteIndex < 0 || byteIndex >= len(m.Fields) {
		return
	}
	m.Fields[byteIndex] |= bitMask
}
