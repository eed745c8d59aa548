// Package page holds the FamilyAI admin UI stub document and the checks that
// describe its content contract.
//
// The document is a constant embedded in the binary. It carries no template
// variables and no scripts, so every build writes byte-identical output.
package page

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FileName is the name the document is written under inside the output directory.
const FileName = "index.html"

// Doctype is the exact prefix every emitted document starts with.
const Doctype = "<!doctype html>"

//go:embed index.html
var index []byte

// ErrContract marks a document that does not satisfy the stub page contract.
var ErrContract = errors.New("document contract violated")

// Document returns the stub page bytes. Each call returns a fresh copy.
func Document() []byte {
	return bytes.Clone(index)
}

// Size reports the length of the document in bytes.
func Size() int {
	return len(index)
}

// Equal reports whether b is byte-identical to the document.
func Equal(b []byte) bool {
	return bytes.Equal(b, index)
}

// Endpoints returns the "METHOD /path" strings documented by the Quick Links
// cards, in document order.
func Endpoints(doc []byte) ([]string, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	var out []string
	for _, card := range findAll(root, isCard) {
		for _, c := range findAll(card, isElement(atom.Code)) {
			if ep, ok := endpoint(textContent(c)); ok {
				out = append(out, ep)
			}
		}
	}
	return out, nil
}

var requiredEndpoints = [][]string{
	{"GET /models", "POST /models/:id/download"},
	{"POST /recommend"},
	{"GET /profiles", "POST /profiles/:profile/activate"},
}

// Validate checks doc against the stub page contract and returns every
// violation found, each wrapping ErrContract.
func Validate(doc []byte) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrContract, fmt.Sprintf(format, args...)))
	}

	if !bytes.HasPrefix(doc, []byte(Doctype)) {
		fail("document must start with %q", Doctype)
	}

	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	if len(findAll(root, isMeta("charset", "utf-8"))) != 1 {
		fail("expected one utf-8 charset meta tag")
	}
	if len(findAll(root, isMeta("name", "viewport"))) != 1 {
		fail("expected one viewport meta tag")
	}
	if n := len(findAll(root, isElement(atom.Style))); n != 1 {
		fail("expected one inline style block, found %d", n)
	}
	if n := len(findAll(root, isStylesheetLink)); n != 0 {
		fail("external stylesheets are not allowed, found %d", n)
	}
	if n := len(findAll(root, isElement(atom.Script))); n != 0 {
		fail("scripts are not allowed, found %d", n)
	}

	validateHeader(root, fail)
	validateQuickLinks(root, fail)

	footers := findAll(root, isElement(atom.Footer))
	if len(footers) != 1 || !strings.Contains(textContent(footers[0]), "Stub") {
		fail("expected one footer marking the page as a stub")
	}

	return errors.Join(errs...)
}

func validateHeader(root *html.Node, fail func(string, ...any)) {
	headers := findAll(root, isElement(atom.Header))
	if len(headers) != 1 {
		fail("expected one header, found %d", len(headers))
		return
	}
	h1 := findAll(headers[0], isElement(atom.H1))
	if len(h1) != 1 || strings.TrimSpace(textContent(h1[0])) != "FamilyAI Control Center" {
		fail("header title must read %q", "FamilyAI Control Center")
	}
	paras := findAll(headers[0], isElement(atom.P))
	if len(paras) != 1 || !strings.Contains(textContent(paras[0]), "control-plane") {
		fail("header must hold one paragraph referencing control-plane")
	}
}

func validateQuickLinks(root *html.Node, fail func(string, ...any)) {
	sections := findAll(root, isElement(atom.Section))
	if len(sections) != 1 {
		fail("expected one section, found %d", len(sections))
		return
	}
	h2 := findAll(sections[0], isElement(atom.H2))
	if len(h2) != 1 || strings.TrimSpace(textContent(h2[0])) != "Quick Links" {
		fail("section title must read %q", "Quick Links")
	}
	cards := findAll(sections[0], isCard)
	if len(cards) != len(requiredEndpoints) {
		fail("expected %d cards, found %d", len(requiredEndpoints), len(cards))
		return
	}
	for i, card := range cards {
		var got []string
		for _, c := range findAll(card, isElement(atom.Code)) {
			if ep, ok := endpoint(textContent(c)); ok {
				got = append(got, ep)
			}
		}
		if !slices.Equal(got, requiredEndpoints[i]) {
			fail("card %d documents %v, want %v", i+1, got, requiredEndpoints[i])
		}
	}
}

// endpoint accepts text of the form "METHOD /path".
func endpoint(s string) (string, bool) {
	method, path, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok || !strings.HasPrefix(path, "/") {
		return "", false
	}
	switch method {
	case "GET", "POST", "PUT", "PATCH", "DELETE":
		return method + " " + path, true
	}
	return "", false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func isMeta(key, value string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Meta {
			return false
		}
		return strings.EqualFold(attr(n, key), value)
	}
}

func isStylesheetLink(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Link &&
		strings.EqualFold(attr(n, "rel"), "stylesheet")
}

func isCard(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return slices.Contains(strings.Fields(attr(n, "class")), "card")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
