package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/rpsbuild/internal/rps"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Archetype{
		"heavy":    Heavy,
		" Balance": Balance,
		"TWINTOP":  TwinTop,
		"twin_top": TwinTop,
		"twin-top": TwinTop,
	} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := Parse("dragon")
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "TwinTop", TwinTop.String())
	assert.Equal(t, "Archetype(7)", Archetype(7).String())
	assert.False(t, Archetype(3).Valid())
	assert.Equal(t, "Pa Heavy", EnemyLabel(Heavy, rps.Pa))
	assert.Equal(t, "Choki Balance", EnemyLabel(Balance, rps.Choki))
}
