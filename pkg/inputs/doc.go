// Package inputs implements Global Inputs: a runtime-mutable overlay over a
// theme's slot rules. Each set_<kind>(name, value) mutates the overlay,
// re-lowers the merged rule set into a slot-override document, and
// notifies registered observers of the change. Remove reverts a name to its
// theme-only projection.
package inputs
