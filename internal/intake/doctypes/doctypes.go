// Package doctypes maps scanned document names onto the categories the
// intake pipeline understands. The table is an explicitly constructed value
// injected into the normalizer and classifier, so tests can swap in alternate
// tables without touching global state.
package doctypes

// Category tells the normalizer which structured sub-object, if any, to
// extract from a document's OCR data.
type Category string

const (
	// CategoryPlea marks plea forms carrying checkbox plea data.
	CategoryPlea Category = "plea"
	// CategoryFinancialMeans marks MC100 financial-means statements.
	CategoryFinancialMeans Category = "financial_means"
	// CategoryGeneral marks supported documents with no structured extract.
	CategoryGeneral Category = "general"
)

// Table is a read-only document-name lookup.
type Table struct {
	byName map[string]Category
}

// NewTable copies the given mapping into a Table.
func NewTable(entries map[string]Category) Table {
	byName := make(map[string]Category, len(entries))
	for name, cat := range entries {
		byName[name] = cat
	}
	return Table{byName: byName}
}

// Default returns the production table of supported SJP document names.
func Default() Table {
	return NewTable(map[string]Category{
		"SJPN":     CategoryGeneral,
		"SJPP":     CategoryPlea,
		"SJPMC100": CategoryFinancialMeans,
	})
}

// Category returns the category for a document name and whether the name is
// in the supported table at all.
func (t Table) Category(documentName string) (Category, bool) {
	cat, ok := t.byName[documentName]
	return cat, ok
}

// Supported reports whether the document name can be processed automatically.
func (t Table) Supported(documentName string) bool {
	_, ok := t.byName[documentName]
	return ok
}
