// Package ecosystems provides the complete list of supported ecosystems.
//
// This package exists to break import cycles: the individual ecosystem
// packages (python, javascript, etc.) import pkg/ecosystem, so pkg/ecosystem
// cannot import them back. Consumers that need the full list import this
// package instead.
//
// Usage:
//
//	import "github.com/matzehuels/envforge/pkg/ecosystem/ecosystems"
//
//	for _, eco := range ecosystems.All {
//	    fmt.Println(eco.Name)
//	}
package ecosystems

import (
	"github.com/matzehuels/envforge/pkg/ecosystem"
	"github.com/matzehuels/envforge/pkg/ecosystem/golang"
	"github.com/matzehuels/envforge/pkg/ecosystem/java"
	"github.com/matzehuels/envforge/pkg/ecosystem/javascript"
	"github.com/matzehuels/envforge/pkg/ecosystem/python"
	"github.com/matzehuels/envforge/pkg/ecosystem/ruby"
)

// All is the canonical list of supported ecosystems. The order doubles as
// the fixed preference order for primary-ecosystem tie-breaks: when two
// ecosystems have the same file count, the one listed first wins.
var All = []*ecosystem.Ecosystem{
	python.Ecosystem,
	javascript.Ecosystem,
	java.Ecosystem,
	golang.Ecosystem,
	ruby.Ecosystem,
}

// Find returns the Ecosystem with the given name, or nil if not found.
func Find(name string) *ecosystem.Ecosystem {
	return ecosystem.Find(name, All)
}
