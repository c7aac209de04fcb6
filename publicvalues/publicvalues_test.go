package publicvalues

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jam-duna/fraudproof/common"
)

func TestEncodeLayout(t *testing.T) {
	pv := PublicValues{
		BlockHash:  common.HexToHash("0x0102030405060708091011121314151617181920212223242526272829303132"),
		Solution:   0x0a0b0c0d,
		Constraint: 7,
		FraudType:  13,
	}
	data, err := pv.Encode()
	require.NoError(t, err)
	require.Len(t, data, EncodedSize)

	require.Equal(t, pv.BlockHash.Bytes(), data[:32])
	// integers are left padded to 32 bytes
	require.Equal(t, make([]byte, 28), data[32:60])
	require.Equal(t, []byte{0x0a, 0x0b, 0x0c, 0x0d}, data[60:64])
	require.Equal(t, byte(7), data[95])
	require.Equal(t, make([]byte, 31), data[96:127])
	require.Equal(t, byte(13), data[127])

	back, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, pv, back)
}

func TestZeroRecord(t *testing.T) {
	data, err := PublicValues{FraudType: 1}.Encode()
	require.NoError(t, err)
	want := make([]byte, EncodedSize)
	want[127] = 1
	require.Equal(t, want, data)
}

func TestDecodeRejectsShortInput(t *testing.T) {
	_, err := Decode(make([]byte, 96))
	require.Error(t, err)
}
