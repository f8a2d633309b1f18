package sync

import (
	"WooWithERPNext/internal/wooapi/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ywapoMeta(addonValue string) models.MetaData {
	return models.MetaData{
		Key: "_ywapo_meta_data",
		Value: []interface{}{
			map[string]interface{}{
				"addon_1": map[string]interface{}{
					"display_label": "sku",
					"addon_value":   addonValue,
				},
			},
		},
	}
}

func TestResolveItemCodeExplicitSKUWins(t *testing.T) {
	wcItem := &models.LineItem{
		Name: "Widget",
		SKU:  "W1",
		MetaData: []models.MetaData{
			{Key: "sku", Value: "META-SKU"},
			ywapoMeta("ADDON-SKU"),
		},
	}
	assert.Equal(t, "W1", resolveItemCode(wcItem))
}

func TestResolveItemCodeMetaBeatsAddon(t *testing.T) {
	wcItem := &models.LineItem{
		Name: "Widget",
		MetaData: []models.MetaData{
			{Key: "SKU ", Value: "META-SKU"},
			ywapoMeta("ADDON-SKU"),
		},
	}
	assert.Equal(t, "META-SKU", resolveItemCode(wcItem))
}

func TestResolveItemCodeDisplayKey(t *testing.T) {
	wcItem := &models.LineItem{
		Name: "Widget",
		MetaData: []models.MetaData{
			{Key: "_custom", DisplayKey: "Sku", Value: "DK-SKU"},
		},
	}
	assert.Equal(t, "DK-SKU", resolveItemCode(wcItem))
}

func TestResolveItemCodeAddonSKU(t *testing.T) {
	wcItem := &models.LineItem{
		Name:     "Widget",
		MetaData: []models.MetaData{ywapoMeta("ADDON-SKU")},
	}
	assert.Equal(t, "ADDON-SKU", resolveItemCode(wcItem))
}

func TestResolveItemCodeFallbackIsUnique(t *testing.T) {
	Assert := assert.New(t)

	first := &models.LineItem{Name: "Deluxe Widget Bundle"}
	second := &models.LineItem{Name: "Deluxe Widget Bundle"}

	codeA := resolveItemCode(first)
	codeB := resolveItemCode(second)

	Assert.NotEmpty(codeA)
	Assert.Contains(codeA, "deluxe-widget-bundle"[:10])
	Assert.NotEqual(codeA, codeB)
}

func TestGetOrCreateItemTruncatesAndReuses(t *testing.T) {
	Assert := assert.New(t)
	svc, store := newTestService(t)

	wcItem := &models.LineItem{
		Name:        strings.Repeat("x", 300),
		SKU:         "LONG-1",
		Description: strings.Repeat("y", 1200),
	}

	itemCode, err := svc.getOrCreateItem(wcItem)
	require.NoError(t, err)
	Assert.Equal("LONG-1", itemCode)

	item, err := store.FindItemByCode("LONG-1")
	require.NoError(t, err)
	require.NotNil(t, item)
	Assert.Len([]rune(item.ItemName), 140)
	Assert.Len([]rune(item.Description), 1000)

	// second resolution reuses the record
	itemCode, err = svc.getOrCreateItem(wcItem)
	require.NoError(t, err)
	Assert.Equal("LONG-1", itemCode)

	var n int
	require.NoError(t, store.DB.Get(&n, "SELECT COUNT(*) FROM Item WHERE ItemCode = 'LONG-1'"))
	Assert.Equal(1, n)
}
