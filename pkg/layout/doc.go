// Package layout resolves table specifications into grids.
//
// A [TableSpec] pairs a primary variable X with an optional secondary
// variable Y. [Resolve] selects one of six fixed recipes from the pair of
// descriptor types and fills a [grid.Grid] in one pass:
//
//	x         y          header rows  columns
//	Quantity  -          1            2
//	Category  -          1            2
//	Quantity  Category   2            1 + groups(y) + 2
//	Category  Category   2            1 + actual_groups(y)
//	Itemset   -          1            1 + contents
//	Itemset   Category   2            1 + contents*groups(y)
//
// Any other pair fails with UNSUPPORTED_COMBINATION. The recipe set is closed
// on purpose; there is no registry to extend.
//
// # Two-row headers
//
// Whenever Y is present the header has two rows. Column 0 carries the label
// of X and is merged vertically across both rows. For quantity and category
// rows, row 0 carries the description of Y merged across every data column
// and row 1 lists its groups. For listings, row 0 is cut into one block per
// group of Y, each block as wide as the itemset's contents, and row 1 repeats
// the contents under every block.
//
// # Captions and cell templates
//
// An explicit caption always wins. Otherwise the caption is derived at
// resolve time ("Age by treatment", "Listing of adverse events") and stored
// in the grid. Body cells hold the placeholder template of X, unless the spec
// overrides it. For category-by-category tables, [WithCellTemplateFrom]
// selects whether the "NA"/"Tot" pseudo-group cells use the template of X
// or of Y.
//
// Resolution is pure: no I/O, no shared state, safe to run concurrently.
package layout
