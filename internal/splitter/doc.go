// Package splitter partitions a basket of products into delivery groups.
//
// Every product is assigned exactly one delivery method it is allowed to use,
// while keeping the number of distinct methods small. The heuristic is a single
// deterministic pass: delivery methods are ranked into tiers by how many basket
// products support them, products with the fewest options are placed first,
// and inside a tier a method that already has a group is preferred over
// opening a new one. It never backtracks and does not guarantee a global
// minimum.
package splitter
