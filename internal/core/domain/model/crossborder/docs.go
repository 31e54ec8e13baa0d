// Package crossborder models Ghana-line shipments: a cross-border freight track kept
// apart from the domestic prep workflow. These shipments never open tasks or orders.
package crossborder
