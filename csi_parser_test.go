package vtmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feedAll(c *csiCollector, s string) csiFeedResult {
	var last csiFeedResult
	for i := 0; i < len(s); i++ {
		last = c.feed(s[i])
	}
	return last
}

func TestCSICollectorBasicParams(t *testing.T) {
	var c csiCollector
	res := feedAll(&c, "1;23;456m")
	assert.Equal(t, csiAccept, res)
	assert.Equal(t, byte('m'), c.final)
	assert.Equal(t, 3, c.nParams)
	assert.Equal(t, 1, c.intValue(0, 0))
	assert.Equal(t, 23, c.intValue(1, 0))
	assert.Equal(t, 456, c.intValue(2, 0))
}

func TestCSICollectorDefaultedParams(t *testing.T) {
	var c csiCollector
	feedAll(&c, "1;;3m")
	assert.Equal(t, 3, c.nParams)
	assert.Equal(t, 9, c.intValue(1, 9)) // empty middle param defaults
}

func TestCSICollectorLeadingByte(t *testing.T) {
	var c csiCollector
	feedAll(&c, "?1049h")
	assert.Equal(t, byte('?'), c.leading)
	assert.Equal(t, byte('h'), c.final)
	assert.Equal(t, 1049, c.intValue(0, 0))
}

func TestCSICollectorSubParams(t *testing.T) {
	var c csiCollector
	feedAll(&c, "38:2:255:128:0m")
	p := c.param(0)
	assert.Equal(t, 5, p.n)
	assert.Equal(t, 38, p.values[0])
	assert.Equal(t, 2, p.values[1])
}

func TestCSICollectorParamCap(t *testing.T) {
	var c csiCollector
	s := ""
	for i := 0; i < 20; i++ {
		s += "1;"
	}
	s += "9m"
	feedAll(&c, s)
	assert.True(t, c.overflow)
	assert.LessOrEqual(t, c.nParams, maxCSIParams)
}

func TestCSICollectorIntermediate(t *testing.T) {
	var c csiCollector
	feedAll(&c, "1 q")
	assert.True(t, c.hasIntermediate(' '))
	assert.Equal(t, byte('q'), c.final)
}
