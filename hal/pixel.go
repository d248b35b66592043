package hal

// RGB565 packs an 8-bit-per-channel colour into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// rgb888From565 widens p to 8 bits per channel, replicating the high bits
// into the low ones so white stays 0xff.
func rgb888From565(p uint16) (r, g, b uint8) {
	r5 := uint8(p >> 11)
	g6 := uint8(p>>5) & 0x3f
	b5 := uint8(p) & 0x1f
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// fillRGB565 stores p little-endian in every pixel of buf.
func fillRGB565(buf []byte, p uint16) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = byte(p)
		buf[i+1] = byte(p >> 8)
	}
}
