package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartgear_back_end/internal/models"
)

func TestFilterMediaByName(t *testing.T) {
	items := []models.MediaItem{
		{FileName: "banniere-accueil.png"},
		{FileName: "Logo-HyperSound.svg"},
		{FileName: "casque-gx7.jpg"},
	}

	assert.Equal(t, items, filterMediaByName(items, ""))

	filtered := filterMediaByName(items, "logo")
	require.Len(t, filtered, 1)
	assert.Equal(t, "Logo-HyperSound.svg", filtered[0].FileName)

	assert.Empty(t, filterMediaByName(items, "introuvable"))
}
