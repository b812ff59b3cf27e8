package console

import (
	"net/url"
	"strings"
)

// Address is an immutable split of a raw address. Query and Fragment hold
// the raw, undecoded text: parsing reverses each scheme's own escaping
// stack, and injection splices bytes back at exact offsets, so nothing here
// may be normalized.
type Address struct {
	Raw      string
	Host     string
	Path     string
	RawQuery string
	Fragment string

	fragIdx  int // offset of '#' in Raw, -1 when absent
	queryIdx int // offset of '?' in Raw (before any '#'), -1 when absent
}

// SplitAddress splits a raw address into its parts. It never fails: text
// that does not parse as a URL still splits on '#' and '?', which is all
// classification needs.
func SplitAddress(raw string) Address {
	a := Address{Raw: raw, fragIdx: -1, queryIdx: -1}

	rest := raw
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		a.fragIdx = i
		a.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		a.queryIdx = i
		a.RawQuery = rest[i+1:]
		rest = rest[:i]
	}

	if u, err := url.Parse(rest); err == nil {
		a.Host = u.Host
		a.Path = u.Path
	} else {
		a.Path = rest
	}
	return a
}

// withFragment rebuilds the raw address with a replacement fragment.
func (a Address) withFragment(frag string) string {
	if a.fragIdx >= 0 {
		return a.Raw[:a.fragIdx+1] + frag
	}
	return a.Raw + "#" + frag
}

// withRawQuery rebuilds the raw address with a replacement query string,
// leaving the fragment untouched.
func (a Address) withRawQuery(q string) string {
	if a.queryIdx < 0 {
		// never called without an existing query; keep the address
		return a.Raw
	}
	end := len(a.Raw)
	if a.fragIdx >= 0 {
		end = a.fragIdx
	}
	return a.Raw[:a.queryIdx+1] + q + a.Raw[end:]
}
