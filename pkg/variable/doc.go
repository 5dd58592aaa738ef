// Package variable defines the immutable descriptors of the variables that
// clinical-trial tables are built from.
//
// # Descriptor Types
//
// Three kinds of variable exist, each with its own constructor:
//
//   - [Quantity]: a continuous measurement (age, blood pressure) summarised
//     by display statistics such as median or 25pct.
//   - [Category]: a grouping variable (sex, treatment arm) with at least two
//     group labels and optional "NA"/"Tot" pseudo-groups.
//   - [Itemset]: row items by column contents, used only for listings.
//
// All three implement the closed [Variable] interface. The layout package
// matches on [Kind] rather than on concrete types, so adding a descriptor
// here means adding recipes there.
//
// # Immutability
//
// Descriptors are built once by their constructor and never change: fields
// are unexported and slice accessors return copies. A structure file that
// refers to the same identifier twice gets the same *Quantity (or *Category,
// *Itemset) pointer back from the loader, which is safe to share between
// goroutines.
//
// # Example
//
//	age, _ := variable.NewQuantity("Age",
//	    variable.WithUnit("years"),
//	    variable.WithDisplay("median", "25pct", "75pct"))
//	trt, _ := variable.NewCategory("Treatment", []string{"EXP", "CTRL"},
//	    variable.WithTotal())
package variable
