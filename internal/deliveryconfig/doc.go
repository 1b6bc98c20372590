// Package deliveryconfig loads the per-product delivery method table the
// splitter works from. A table maps a product name to the ordered list of
// delivery methods that product may ship with. Tables are read once from a
// JSON or YAML file and treated as immutable afterwards.
package deliveryconfig
