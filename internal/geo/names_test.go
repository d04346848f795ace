package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"Fujairah, UAE":             "fujairah_uae",
		"Houston Ship Channel, USA": "houston_ship_channel_usa",
		"Cushing, OK":               "cushing_ok",
		"St. Petersburg":            "st_petersburg",
		"already_safe":              "already_safe",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeName(in), in)
	}
}
