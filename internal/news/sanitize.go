package news

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StripImages removes every <img> element from an HTML fragment.
func StripImages(fragment string) (string, error) {
	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if isImage(n) {
			continue
		}
		removeImages(n)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func removeImages(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isImage(c) {
			n.RemoveChild(c)
		} else {
			removeImages(c)
		}
		c = next
	}
}

func isImage(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Img
}
