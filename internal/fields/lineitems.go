package fields

// LineItem is one structured row from a detected table. Normalization
// failures leave the numeric fields nil.
type LineItem struct {
	Description *string
	Quantity    *string
	UnitPrice   *string
	Amount      *string
}

// LineItems derives line items from extracted tables only; the raw-text
// fallback path never produces them. A table needs a header plus at least one
// data row; data rows with fewer than 3 columns are skipped silently, and the
// header row itself is never emitted.
func LineItems(tables [][][]string) []LineItem {
	var items []LineItem
	for _, table := range tables {
		if len(table) < 2 {
			continue
		}
		for _, row := range table[1:] {
			if len(row) < 3 {
				continue
			}
			item := LineItem{
				Description: ptr(row[0]),
				Quantity:    NormalizeCurrency(ptr(row[1])),
				UnitPrice:   NormalizeCurrency(ptr(row[2])),
			}
			if len(row) > 3 {
				item.Amount = NormalizeCurrency(ptr(row[3]))
			}
			items = append(items, item)
		}
	}
	return items
}
