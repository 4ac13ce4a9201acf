package mmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon_ReadWriteClose(t *testing.T) {
	m, err := MapAnon(1 << 16)
	require.NoError(t, err)
	defer m.Close()

	data := m.Bytes()
	require.Len(t, data, 1<<16)

	// Anonymous mappings start zero-filled.
	for i := 0; i < len(data); i += 4096 {
		assert.Equal(t, byte(0), data[i])
	}

	data[0] = 0x42
	data[len(data)-1] = 0x24
	assert.Equal(t, byte(0x42), m.Bytes()[0])
	assert.Equal(t, byte(0x24), m.Bytes()[len(data)-1])
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = MapAnon(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapping_AdviseRandom(t *testing.T) {
	m, err := MapAnon(1 << 20)
	require.NoError(t, err)

	assert.NoError(t, m.AdviseRandom())

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.AdviseRandom(), ErrClosed)
}

func TestMapping_CloseIdempotent(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
}
