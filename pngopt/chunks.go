package pngopt

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Ancillary chunks that change how the pixels are displayed. The encoder
// cannot write them back, so files carrying them are left alone.
var colorChunks = map[string]bool{
	"iCCP": true,
	"sRGB": true,
	"gAMA": true,
	"cHRM": true,
	"cICP": true,
}

// chunkTypes lists the chunk types of a PNG stream in file order
func chunkTypes(data []byte) ([]string, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, ErrNotPNG
	}

	var types []string
	for off := len(pngSignature); off < len(data); {
		// length (4) + type (4) + data + crc (4)
		if len(data)-off < 12 {
			return nil, fmt.Errorf("truncated chunk at offset %d", off)
		}
		length := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		end := off + 12 + length
		if length < 0 || end > len(data) {
			return nil, fmt.Errorf("chunk %s at offset %d overruns the file", typ, off)
		}
		types = append(types, typ)
		if typ == "IEND" {
			break
		}
		off = end
	}
	return types, nil
}

// splitAncillary returns the color-management chunks and the other
// ancillary chunks found in types. Each name is reported once.
func splitAncillary(types []string) (color, other []string) {
	seen := make(map[string]bool)
	for _, typ := range types {
		// critical chunks start with an upper-case letter
		if seen[typ] || typ == "" || typ[0] < 'a' || typ[0] > 'z' {
			continue
		}
		seen[typ] = true
		if colorChunks[typ] {
			color = append(color, typ)
		} else {
			other = append(other, typ)
		}
	}
	return color, other
}
