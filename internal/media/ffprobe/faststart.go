package ffprobe

import (
	"encoding/binary"
	"os"
)

// hasFastStart reports whether an mp4-family file places its moov box before
// the mdat box, the layout required for playback to start while streaming.
// Unreadable or truncated files report true so that an I/O hiccup never
// shows up as a scoring deduction.
func hasFastStart(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return true
	}
	defer file.Close()

	var offset int64
	header := make([]byte, 8)
	for {
		if _, err := file.ReadAt(header, offset); err != nil {
			// Ran out of boxes without seeing moov or mdat.
			return true
		}
		size := int64(binary.BigEndian.Uint32(header[:4]))
		boxType := string(header[4:8])

		switch boxType {
		case "moov":
			return true
		case "mdat":
			return false
		}

		switch size {
		case 0:
			// Box extends to end of file.
			return true
		case 1:
			large := make([]byte, 8)
			if _, err := file.ReadAt(large, offset+8); err != nil {
				return true
			}
			size = int64(binary.BigEndian.Uint64(large))
			if size < 16 {
				return true
			}
		default:
			if size < 8 {
				return true
			}
		}
		offset += size
	}
}
