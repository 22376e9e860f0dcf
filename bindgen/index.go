package bindgen

import (
	"sort"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/model"
)

// TypedefIndex maps a type node's identity to the typedef names that refer
// to it. A parsed type node does not remember which typedef produced it, so
// the index is the only way to render a node by its friendlier alias (the
// result of ulCreateStringUTF8 is a C_String pointer, but it reads better as
// ULString).
//
// The index is keyed by node identity, never by structural equality: two
// separately built nodes with the same shape may belong to different
// typedefs. It is built once and read-only afterwards, so it is safe for
// concurrent lookups.
type TypedefIndex struct {
	entries map[model.Type]*indexEntry
}

type indexEntry struct {
	node    model.Type
	aliases []string
}

// BuildIndex indexes every typedef declaration. Several typedefs of one node
// accumulate into one alias set.
func BuildIndex(decls []model.Declaration) *TypedefIndex {
	ix := &TypedefIndex{entries: make(map[model.Type]*indexEntry)}
	for _, decl := range decls {
		if decl.Prefix != model.DeclTypedef {
			continue
		}
		entry, ok := ix.entries[decl.Type]
		if !ok {
			entry = &indexEntry{node: decl.Type}
			ix.entries[decl.Type] = entry
		}
		entry.aliases = appendUnique(entry.aliases, decl.Name)
	}
	for _, entry := range ix.entries {
		sort.Strings(entry.aliases)
	}
	return ix
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// Lookup returns the alias naming t when exactly one typedef refers to it.
// ok is false when t has no alias or is ambiguous.
func (ix *TypedefIndex) Lookup(t model.Type) (alias string, ok bool, err error) {
	entry, found := ix.entries[t]
	if !found {
		return "", false, nil
	}
	if entry.node != t {
		return "", false, errors.AssertionFailedf(
			"typedef index entry for %s node %v holds a different node %v", t.Kind(), t, entry.node)
	}
	if len(entry.aliases) != 1 {
		return "", false, nil
	}
	return entry.aliases[0], true, nil
}

// Aliases returns the sorted typedef names referring to t.
func (ix *TypedefIndex) Aliases(t model.Type) []string {
	entry, found := ix.entries[t]
	if !found {
		return nil
	}
	return append([]string(nil), entry.aliases...)
}

// Len is the number of distinct nodes with at least one alias.
func (ix *TypedefIndex) Len() int {
	return len(ix.entries)
}

// Ambiguous returns the nodes named by more than one typedef, with their
// aliases, in a stable order.
func (ix *TypedefIndex) Ambiguous() [][]string {
	var out [][]string
	for _, entry := range ix.entries {
		if len(entry.aliases) > 1 {
			out = append(out, append([]string(nil), entry.aliases...))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
