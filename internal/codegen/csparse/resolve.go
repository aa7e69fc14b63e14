package csparse

import "strings"

// resolver binds attribute names as written to fully qualified type names.
type resolver struct {
	known map[string]struct{}
	// program-wide global using directives
	usings  []string
	aliases map[string]string
}

func newResolver(files []*File) *resolver {
	r := &resolver{
		known:   make(map[string]struct{}, len(wellKnownAttributes)),
		aliases: make(map[string]string),
	}
	for _, n := range wellKnownAttributes {
		r.known[n] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, f := range files {
		for _, d := range f.classes {
			if d.err == nil && d.arity == 0 && d.name != "" {
				r.known[d.id()] = struct{}{}
			}
		}
		for _, u := range f.globalUsings {
			if _, ok := seen[u]; !ok {
				seen[u] = struct{}{}
				r.usings = append(r.usings, u)
			}
		}
		for a, t := range f.globalAliases {
			r.aliases[a] = t
		}
	}
	return r
}

func (r *resolver) isKnown(name string) bool {
	_, ok := r.known[name]
	return ok
}

// candidates lists the spellings C# tries for an attribute name, the
// Attribute-suffixed one first.
func candidates(name string) []string {
	return []string{name + "Attribute", name}
}

// resolve returns the fully qualified name of ref as seen from sc. Names
// that bind to nothing known, or bind ambiguously, come back as written.
func (r *resolver) resolve(sc *scope, ref attrRef) string {
	if ref.global {
		for _, c := range candidates(ref.name) {
			if r.isKnown(c) {
				return c
			}
		}
		return ref.name
	}

	first, rest, qualified := strings.Cut(ref.name, ".")

	for s := sc; s != nil; s = s.parent {
		// members of the namespace itself, and of every enclosing namespace
		// implied by a dotted declaration, innermost first
		parentNS := ""
		if s.parent != nil {
			parentNS = s.parent.ns
		}
		for ns := s.ns; ; ns = parentOf(ns) {
			if s.parent != nil && ns == parentNS {
				break
			}
			for _, c := range candidates(ref.name) {
				if full := joinName(ns, c); r.isKnown(full) {
					return full
				}
			}
			if ns == "" {
				break
			}
		}

		aliases := s.aliases
		usings := s.usings
		if s.parent == nil {
			aliases = mergeAliases(r.aliases, s.aliases)
			usings = append(append([]string(nil), s.usings...), r.usings...)
		}

		if target, ok := aliases[first]; ok {
			if qualified {
				for _, c := range candidates(rest) {
					if full := joinName(target, c); r.isKnown(full) {
						return full
					}
				}
				return ref.name
			}
			return target
		}

		if qualified {
			continue
		}
		var found []string
		for _, u := range usings {
			for _, c := range candidates(ref.name) {
				if full := joinName(u, c); r.isKnown(full) {
					found = append(found, full)
					break
				}
			}
		}
		switch {
		case len(found) == 1:
			return found[0]
		case len(found) > 1 && allEqual(found):
			return found[0]
		case len(found) > 1:
			return ref.name
		}
	}
	return ref.name
}

func parentOf(ns string) string {
	if i := strings.LastIndexByte(ns, '.'); i >= 0 {
		return ns[:i]
	}
	return ""
}

func mergeAliases(global, local map[string]string) map[string]string {
	if len(global) == 0 {
		return local
	}
	out := make(map[string]string, len(global)+len(local))
	for k, v := range global {
		out[k] = v
	}
	for k, v := range local {
		out[k] = v
	}
	return out
}

func allEqual(names []string) bool {
	for _, n := range names[1:] {
		if n != names[0] {
			return false
		}
	}
	return true
}
