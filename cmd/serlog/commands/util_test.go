package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_shortEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := newShortEncoder(&buf)

	ports := portList{
		{Name: "/dev/ttyUSB0", IsUSB: true},
		{Name: "/dev/ttyACM0"},
	}
	require.NoError(t, enc.Encode(ports))
	assert.Equal(t, "/dev/ttyUSB0\n/dev/ttyACM0\n", buf.String())
}

func Test_shortEncoderRejectsOtherTypes(t *testing.T) {
	enc := newShortEncoder(&bytes.Buffer{})
	assert.Error(t, enc.Encode("not elements"))
}
