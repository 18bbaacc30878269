package frame

// Binary is a single-bit map stored one byte per pixel (0 or 1).
type Binary struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBinary allocates a zeroed binary map.
func NewBinary(width, height int) *Binary {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Binary{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Empty reports whether the map holds no pixels.
func (b *Binary) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0 || len(b.Pix) == 0
}

// At returns 1 if the pixel at (x,y) is set. Out-of-bounds reads return 0.
func (b *Binary) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// Set marks the pixel at (x,y). Out-of-bounds writes are dropped.
func (b *Binary) Set(x, y int) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = 1
}

// Count returns the number of set pixels.
func (b *Binary) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
