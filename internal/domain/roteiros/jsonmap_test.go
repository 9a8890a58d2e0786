package roteiros

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapValueAndScanRoundtrip(t *testing.T) {
	original := JSONMap{"corFundo": "#FF0000", "negrito": true, "tamanho": float64(14)}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSONMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestJSONMapNilValue(t *testing.T) {
	var m JSONMap
	value, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestJSONMapScanNilAndEmpty(t *testing.T) {
	m := JSONMap{"x": 1}
	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	m = JSONMap{"x": 1}
	require.NoError(t, m.Scan([]byte{}))
	assert.Nil(t, m)
}

func TestJSONMapScanString(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan(`{"alinhamento":"centro"}`))
	assert.Equal(t, JSONMap{"alinhamento": "centro"}, m)
}

func TestJSONMapScanUnsupportedType(t *testing.T) {
	var m JSONMap
	assert.Error(t, m.Scan(42))
}
