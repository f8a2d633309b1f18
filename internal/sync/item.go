package sync

import (
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/syncerr"
	"WooWithERPNext/internal/wooapi/models"
	"WooWithERPNext/pkg/logging"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	maxItemNameLen        = 140
	maxItemDescriptionLen = 1000
	maxGeneratedCodeLen   = 20
)

// resolveItemCode applies the SKU precedence for one line item: the explicit
// sku field, then a "sku" meta entry, then a nested add-on block labelled
// "sku", and finally a generated slug with a random suffix so that items
// without a stable SKU never collide.
func resolveItemCode(wcItem *models.LineItem) string {
	if wcItem.SKU != "" {
		return wcItem.SKU
	}

	for i := range wcItem.MetaData {
		meta := &wcItem.MetaData[i]
		key := strings.ToLower(strings.TrimSpace(meta.Key))
		displayKey := strings.ToLower(strings.TrimSpace(meta.DisplayKey))
		if key == "sku" || displayKey == "sku" {
			if value := meta.StringValue(); value != "" {
				return value
			}
		}
	}

	for i := range wcItem.MetaData {
		meta := &wcItem.MetaData[i]
		if meta.Key != "_ywapo_meta_data" {
			continue
		}
		if code := addonSKU(meta.Value); code != "" {
			return code
		}
	}

	return fmt.Sprintf("%s-%s", truncate(slug.Make(wcItem.Name), maxGeneratedCodeLen), randomSuffix(4))
}

// addonSKU digs through the loosely typed _ywapo_meta_data payload for an
// entry whose display_label is "sku".
func addonSKU(value interface{}) string {
	entries, ok := value.([]interface{})
	if !ok {
		return ""
	}
	for _, entry := range entries {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		for _, subval := range fields {
			addon, ok := subval.(map[string]interface{})
			if !ok {
				continue
			}
			label, _ := addon["display_label"].(string)
			if strings.ToLower(strings.TrimSpace(label)) != "sku" {
				continue
			}
			if addonValue, ok := addon["addon_value"].(string); ok && addonValue != "" {
				return addonValue
			}
		}
	}
	return ""
}

// getOrCreateItem resolves the item code for a line item and creates the
// local item on first sight.
func (s *Service) getOrCreateItem(wcItem *models.LineItem) (string, error) {
	logger := logging.GetLogger()

	itemCode := strings.TrimSpace(resolveItemCode(wcItem))

	existing, err := s.store.FindItemByCode(itemCode)
	if err != nil {
		return "", &syncerr.ResolutionError{Entity: "item", Key: itemCode, Err: err}
	}
	if existing != nil {
		logger.Infof("Found existing item: %s", existing.ItemCode)
		return existing.ItemCode, nil
	}

	item := &erpstore.Item{
		ItemCode:    itemCode,
		ItemName:    truncate(wcItem.Name, maxItemNameLen),
		Description: truncate(wcItem.Description, maxItemDescriptionLen),
		ItemGroup:   "All Item Groups",
		StockUOM:    "Nos",
		IsStockItem: 1,
		IsSalesItem: 1,
		IsPurchase:  1,
	}
	if err := s.store.CreateItem(item); err != nil {
		return "", &syncerr.ResolutionError{Entity: "item", Key: itemCode, Err: err}
	}

	logger.Infof("Item %s created", itemCode)
	return itemCode, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func randomSuffix(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(id) {
		n = len(id)
	}
	return id[:n]
}
