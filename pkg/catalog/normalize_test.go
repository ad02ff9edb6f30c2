package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTDUName(t *testing.T) {
	cases := map[string]string{
		"Oncor Electric Delivery Company":         "ONCOR",
		"ONCOR":                                   "ONCOR",
		"CenterPoint Energy Houston Electric LLC": "CENTERPOINT",
		"AEP Texas Central Company":               "AEP_CENTRAL",
		"AEP Texas North Company":                 "AEP_NORTH",
		"Texas-New Mexico Power Company":          "TNMP",
		"Lubbock Power & Light":                   "LPL",
		"  oncor electric  ":                      "ONCOR",
		"Some Future TDU":                         "SOME FUTURE TDU",
		"":                                        "UNKNOWN",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeTDUName(raw), "input %q", raw)
	}
}

func TestParsePrice(t *testing.T) {
	t.Run("decimal dollars convert to cents", func(t *testing.T) {
		v, ok := ParsePrice("0.1600")
		assert.True(t, ok)
		assert.InDelta(t, 16.0, v, 0.0001)
	})

	t.Run("cents pass through", func(t *testing.T) {
		v, ok := ParsePrice("12.5")
		assert.True(t, ok)
		assert.InDelta(t, 12.5, v, 0.0001)
	})

	t.Run("currency symbols stripped", func(t *testing.T) {
		v, ok := ParsePrice("$0.098")
		assert.True(t, ok)
		assert.InDelta(t, 9.8, v, 0.0001)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, ok := ParsePrice("call us")
		assert.False(t, ok)
		_, ok = ParsePrice("")
		assert.False(t, ok)
	})
}

func TestParseInt(t *testing.T) {
	v, ok := parseInt("12 months")
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	v, ok = parseInt("36")
	assert.True(t, ok)
	assert.Equal(t, 36, v)

	_, ok = parseInt("")
	assert.False(t, ok)
}

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/efl.pdf", sanitizeURL("https://example.com/efl.pdf"))
	assert.Equal(t, "https://cdn.example.com/efl.pdf", sanitizeURL("//cdn.example.com/efl.pdf"))
	assert.Equal(t, "https://www.powertochoose.org/en-us/Plan/123", sanitizeURL("/en-us/Plan/123"))
	assert.Equal(t, "", sanitizeURL("  "))
}
