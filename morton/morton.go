// Package morton interleaves two 16-bit coordinates into a 32-bit Morton code and back.
// The layout is the common one (libmorton, most quadtree code): x takes the even bits, y the odd bits.
package morton

type Z = uint32

var (
	masks = [...]uint32{
		0b01010101010101010101010101010101,
		0b00110011001100110011001100110011,
		0b00001111000011110000111100001111,
		0b00000000111111110000000011111111,
		0b00000000000000001111111111111111,
	}
	powersOfTwo = [...]uint32{0, 1, 2, 4, 8}
)

// Encode2D interleaves x and y, x first (bit 0).
func Encode2D(x, y uint16) Z {
	return spread(x) | spread(y)<<1
}

// Decode2D is the exact inverse of Encode2D.
func Decode2D(z Z) (x, y uint16) {
	return compact(z), compact(z >> 1)
}

func spread(v uint16) uint32 {
	s := uint32(v)
	for i := len(masks) - 2; i >= 0; i-- {
		s = (s | (s << powersOfTwo[i+1])) & masks[i]
	}
	return s
}

func compact(z uint32) uint16 {
	for i := 0; i < len(masks); i++ {
		z = (z | (z >> powersOfTwo[i])) & masks[i]
	}
	return uint16(z)
}
