// Package harvest extracts path-like values from saved HTML pages to seed a
// wordlist: every href/src attribute is reduced to its URL path and split
// into cumulative directory prefixes.
package harvest

import (
	"io"
	"net/url"

	"golang.org/x/net/html"

	"lfichef/helper"
)

// linkTags are the elements whose href/src attributes carry paths worth
// seeding from.
var linkTags = map[string]bool{
	"a":      true,
	"link":   true,
	"script": true,
	"img":    true,
}

// Extract tokenizes the HTML document and returns the cumulative directory
// prefixes of every linked path, unique and in first-seen order. Links whose
// path cannot be parsed are skipped.
func Extract(body io.Reader) ([]string, error) {
	var paths []string
	z := html.NewTokenizer(body)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return helper.Unique(paths), nil
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		token := z.Token()
		if !linkTags[token.Data] {
			continue
		}
		ok, href := attrLink(token)
		if !ok {
			continue
		}
		u, err := url.Parse(href)
		if err != nil || u.Path == "" {
			continue
		}
		paths = append(paths, helper.PathPrefixes(u.Path)...)
	}
}

// attrLink pulls the href or src attribute value off a token, if present.
func attrLink(t html.Token) (ok bool, href string) {
	for _, a := range t.Attr {
		if a.Key == "href" || a.Key == "src" {
			href = a.Val
			ok = true
		}
	}
	return
}
