package descriptors

import (
	"fmt"
	"strings"

	"github.com/wallet-std/descriptors/derive"
)

// ParseStdDescr parses a standard descriptor string, e.g.
//
//	wpkh([dc567276/84h/1h/0h]xpub6C.../<0;1>/*)
//	tr([dc567276/86h/1h/0h]xpub6C.../<0;1>/*)
//
// Whitespace is ignored and a trailing "#checksum" suffix, if present, is
// stripped without verification.
func ParseStdDescr(s string) (StdDescr, error) {
	s = strings.ReplaceAll(s, " ", "")
	if core, _, found := strings.Cut(s, "#"); found {
		s = core
	}

	inner, ok := cutFunc(s, "wpkh")
	if ok {
		key, err := derive.ParseXpubDerivable(inner)
		if err != nil {
			return StdDescr{}, err
		}
		return NewWpkhDescr(NewWpkh(key)), nil
	}

	inner, ok = cutFunc(s, "tr")
	if ok {
		key, err := derive.ParseXpubDerivable(inner)
		if err != nil {
			return StdDescr{}, err
		}
		return NewTrKeyDescr(NewTrKey(key)), nil
	}

	return StdDescr{}, fmt.Errorf("unable to parse descriptor %q", s)
}

// cutFunc extracts the argument of a "name(...)" wrapper.
func cutFunc(s, name string) (string, bool) {
	if !strings.HasPrefix(s, name+"(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return s[len(name)+1 : len(s)-1], true
}
