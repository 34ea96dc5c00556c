package hal

func rgbAt(pix []byte, width, x, y int) (r, g, b uint8) {
	i := (y*width + x) * 3
	return pix[i], pix[i+1], pix[i+2]
}
