// Package selection filters and ranks validated chunks for size-budgeted
// outputs.
//
// The engine treats critical chunks as a hard floor, fills the remaining
// budget by descending priority tier, and breaks ties within a tier by
// ascending identifier. Selection is a pure function of the chunk set and
// the budget, which is what makes rebuilds byte-identical.
package selection
