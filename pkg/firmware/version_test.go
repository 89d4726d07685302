package firmware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	v := Decode(0x01020A43)

	assert.Equal(t, uint8(0x01), v.IDHigh)
	assert.Equal(t, uint8(0x02), v.IDLow)
	assert.Equal(t, 2005, v.Year)
	assert.Equal(t, 2, v.Month)
	assert.Equal(t, 3, v.Day)
	assert.Equal(t, "v1.02 2005/02/03", v.String())
}

func TestDecodeIsTotal(t *testing.T) {
	// Malformed bit patterns still decode to a well-formed string.
	cases := []struct {
		raw  uint32
		want string
	}{
		{0x00000000, "v0.00 2000/00/00"},
		{0xFFFFFFFF, "vff.ff 2127/15/31"},
		{0x1A2B3C4D, "v1a.2b 2030/02/13"},
	}
	for _, tc := range cases {
		v := Decode(tc.raw)
		assert.Equal(t, tc.want, v.String(), "raw=0x%08X", tc.raw)
		assert.Equal(t, tc.raw, v.Raw)
	}
}
