package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestParseLengthUnits(t *testing.T) {
	cases := []struct {
		in   string
		want Length
	}{
		{"2rem", Length{2, UnitREM}},
		{"1500px", Length{1500, UnitPX}},
		{"1.5em", Length{1.5, UnitEM}},
		{"100%", Length{100, UnitPercent}},
		{"12pt", Length{12, UnitPT}},
		{"10mm", Length{10, UnitMM}},
		{"0", Length{0, UnitNone}},
	}
	for _, c := range cases {
		got, ok := ParseLength(c.in)
		require.True(t, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseLengthRejectsKeywords(t *testing.T) {
	for _, in := range []string{"auto", "", "calc(1px + 2px)", "rem"} {
		_, ok := ParseLength(in)
		assert.False(t, ok, in)
	}
}

func TestLengthConversion(t *testing.T) {
	ctx := DefaultContext(200)
	rem := Length{Value: 2, Unit: UnitREM}
	// 2rem = 32px = 8.4666mm
	assert.True(t, almostEqual(rem.ToMM(ctx), 32*PxToMm))
	assert.True(t, almostEqual(Length{1, UnitIN}.ToMM(ctx), 25.4))
	assert.True(t, almostEqual(Length{50, UnitPercent}.ToMM(ctx), 100))
	assert.True(t, almostEqual(Length{72, UnitPT}.ToMM(ctx), 72*PtToMm))
	assert.True(t, almostEqual(Length{10, UnitMM}.ToPT(ctx), 10*MmToPt))

	ctx.FontSize = 10
	assert.True(t, almostEqual(Length{1.5, UnitEM}.ToMM(ctx), 15))
}
