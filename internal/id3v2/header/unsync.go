package header

// Resynchronise undoes the unsynchronisation scheme: every 0xFF 0x00 pair
// becomes 0xFF. The input is not modified.
func Resynchronise(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		out = append(out, b[i])
		if b[i] == 0xFF && i+1 < len(b) && b[i+1] == 0x00 {
			i++
		}
	}
	return out
}
