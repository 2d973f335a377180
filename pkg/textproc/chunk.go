package textproc

import "fmt"

// Chunk splits text into overlapping fixed-size windows: the first chunk is
// the leading size characters, each following chunk starts size-overlap
// characters later, and the last chunk may be shorter than size. Consecutive
// chunks share exactly overlap characters. Offsets count characters (runes),
// not bytes, so multi-byte text chunks at the same boundaries as ASCII and a
// chunk never ends mid-rune.
//
// Chunk is pure segmentation; filtering of insignificant chunks is the
// caller's concern. overlap >= size is rejected since the window would never
// advance.
func Chunk(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got overlap=%d size=%d", overlap, size)
	}

	if text == "" {
		return nil, nil
	}

	runes := []rune(text)

	var chunks []string
	for start := 0; start < len(runes); start += size - overlap {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks, nil
}
