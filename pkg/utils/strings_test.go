package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "instruccion", Fold("Instrucción"))
	assert.Equal(t, "piloto de avion", Fold("PILOTO DE AVIÓN"))
	assert.Equal(t, "plain", Fold("plain"))
}

func TestContainsFold(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsFold("Piloto de Avión (vigente)", "piloto de avion"))
	assert.True(t, ContainsFold("INSTRUCTOR DE PLANEADOR", "instructor de planeador"))
	assert.False(t, ContainsFold("Socio colaborador", "piloto"))
}
