// Package model provides the contracts shared by the chain package and its options.
// It defines the file sets flowing through a chain, the steps consuming and producing them,
// and the hooks a chain option can implement.
package model
