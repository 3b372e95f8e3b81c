package reports

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"loomledger/internal/core/entity"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/documents/receipt"
)

// Alias priority chains for logical fields. Canonical key first, then
// legacy aliases in fixed order. Receipts written through the API carry
// the canonical keys; migrated records may carry any of the rest.
var (
	receiptNoAliases    = []string{"receiptNo", "receiptNumber", "receipt_no"}
	supervisorIDAliases = []string{"supervisorId", "supervisor_id"}
	weaverIDAliases     = []string{"weaverId", "weaver_id", "loomNo", "loom_no"}
	weaverNameAliases   = []string{"weaverName", "weaver_name", "name"}
	productsAliases     = []string{"products", "product", "items", "productsData"}
	dateAliases         = []string{"date", "receiptDate", "created_at"}
)

// Keys tried inside a single product entry.
var (
	productNameKeys = []string{"productName", "product_name", "name"}
	quantityKeys    = []string{"quantity", "qty"}
)

// Date layouts accepted from raw string values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// UnmatchedFunc is an optional diagnostic hook invoked for product names
// that do not match any catalog entry. Unmatched names are dropped from
// the result either way.
type UnmatchedFunc func(receiptNo, productName string)

// Normalizer resolves canonical field values from raw receipt attribute
// bags whose key names drifted over time. It is pure: one instance is
// built per report run from the live product catalog.
type Normalizer struct {
	columns   []string
	canonical map[string]string // normalized name -> canonical column name
	unmatched UnmatchedFunc
}

// NewNormalizer builds a normalizer over the product catalog.
func NewNormalizer(catalog []*product.Product, unmatched UnmatchedFunc) *Normalizer {
	columns := OrderedProductColumns(catalog)
	canonical := make(map[string]string, len(columns))
	for _, name := range columns {
		canonical[normalizeName(name)] = name
	}
	return &Normalizer{
		columns:   columns,
		canonical: canonical,
		unmatched: unmatched,
	}
}

// ProductColumns returns the ordered, de-duplicated product column names.
func (n *Normalizer) ProductColumns() []string {
	return n.columns
}

// Normalize converts one receipt into its canonical record. It never
// fails: missing fields normalize to empty strings, a missing date to the
// zero time, and unparseable product data to a zero-filled quantity map.
func (n *Normalizer) Normalize(doc *receipt.Receipt) Record {
	attrs := doc.Attributes

	rec := Record{
		ID:           doc.ID,
		ReceiptNo:    firstString(attrs, receiptNoAliases),
		SupervisorID: firstString(attrs, supervisorIDAliases),
		WeaverID:     firstString(attrs, weaverIDAliases),
		WeaverName:   firstString(attrs, weaverNameAliases),
		Date:         n.normalizeDate(attrs),
	}

	rec.Quantities = n.extractQuantities(attrs, rec.ReceiptNo)
	for _, qty := range rec.Quantities {
		rec.SubTotal += qty
	}

	return rec
}

// NormalizeAll maps a receipt collection into records.
func (n *Normalizer) NormalizeAll(docs []*receipt.Receipt) []Record {
	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, n.Normalize(doc))
	}
	return records
}

// firstString resolves the first alias present in the bag to a string.
func firstString(attrs entity.Attributes, aliases []string) string {
	for _, key := range aliases {
		if !attrs.Has(key) {
			continue
		}
		switch v := attrs[key].(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(v, 10)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}

// normalizeDate resolves the receipt date, accepting time values, date
// strings in known layouts and unix timestamps. Anything else yields the
// zero time.
func (n *Normalizer) normalizeDate(attrs entity.Attributes) time.Time {
	for _, key := range dateAliases {
		if !attrs.Has(key) {
			continue
		}
		if t := coerceDate(attrs[key]); !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

func coerceDate(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t
			}
		}
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return unixDate(i)
		}
	case float64:
		return unixDate(int64(val))
	case int64:
		return unixDate(val)
	}
	return time.Time{}
}

// unixDate interprets a numeric timestamp as milliseconds when it is too
// large to be seconds.
func unixDate(n int64) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	if n > 1e11 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// extractQuantities locates the receipt's product data and accumulates
// matched quantities into a dense, zero-filled map over the catalog
// columns. Product data may be a name->quantity map, a name->entry map,
// an entry array, or a JSON string of any of those. A string that fails
// to parse means "no products".
func (n *Normalizer) extractQuantities(attrs entity.Attributes, receiptNo string) map[string]float64 {
	quantities := make(map[string]float64, len(n.columns))
	for _, name := range n.columns {
		quantities[name] = 0
	}

	raw := n.findProductData(attrs)
	if raw == nil {
		return quantities
	}

	switch data := raw.(type) {
	case map[string]any:
		for key, entry := range data {
			n.accumulate(quantities, key, entry, receiptNo)
		}
	case []any:
		for _, entry := range data {
			n.accumulate(quantities, "", entry, receiptNo)
		}
	}

	return quantities
}

// findProductData resolves the product-data field, decoding JSON strings.
// Returns nil when absent or unparseable.
func (n *Normalizer) findProductData(attrs entity.Attributes) any {
	for _, key := range productsAliases {
		if !attrs.Has(key) {
			continue
		}
		switch v := attrs[key].(type) {
		case map[string]any, []any:
			return v
		case string:
			var decoded any
			if err := json.Unmarshal([]byte(v), &decoded); err != nil {
				return nil
			}
			switch decoded.(type) {
			case map[string]any, []any:
				return decoded
			}
			return nil
		}
	}
	return nil
}

// accumulate extracts a product name and quantity from one entry and adds
// the quantity to the matching column. The entry key serves as name
// fallback for map-shaped product data.
func (n *Normalizer) accumulate(quantities map[string]float64, key string, entry any, receiptNo string) {
	name := key
	var qty float64

	switch e := entry.(type) {
	case map[string]any:
		if found := firstString(entity.Attributes(e), productNameKeys); found != "" {
			name = found
		}
		qty = firstNumber(entity.Attributes(e), quantityKeys)
	default:
		qty, _ = coerceNumber(entry)
	}

	if name == "" {
		return
	}

	canonical, ok := n.canonical[normalizeName(name)]
	if !ok {
		if n.unmatched != nil {
			n.unmatched(receiptNo, name)
		}
		return
	}

	quantities[canonical] += qty
}

func firstNumber(attrs entity.Attributes, keys []string) float64 {
	for _, key := range keys {
		if !attrs.Has(key) {
			continue
		}
		if f, ok := coerceNumber(attrs[key]); ok {
			return f
		}
	}
	return 0
}

func coerceNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case float64:
		return val, true
	case int64:
		return float64(val), true
	case int:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

// normalizeName lowercases and trims a product name for matching.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
