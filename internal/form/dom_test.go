package form

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Small DOM query helpers in the spirit of testing-library: look elements up
// by test id, label text, or their own text.

func parseHTML(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textContent concatenates every descendant text node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

// ownText concatenates only the direct text children of n.
func ownText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func elements(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
	})
	return out
}

func allByTestID(root *html.Node, re *regexp.Regexp) []*html.Node {
	return elements(root, func(n *html.Node) bool {
		v, ok := attr(n, "data-testid")
		return ok && re.MatchString(v)
	})
}

func allByText(root *html.Node, text string) []*html.Node {
	return elements(root, func(n *html.Node) bool { return ownText(n) == text })
}

func allByTag(root *html.Node, tag string) []*html.Node {
	return elements(root, func(n *html.Node) bool { return n.Data == tag })
}

// byLabelText returns the control associated with the first label whose
// text matches re, or nil.
func byLabelText(root *html.Node, re *regexp.Regexp) *html.Node {
	for _, l := range allByTag(root, "label") {
		if !re.MatchString(textContent(l)) {
			continue
		}
		id, ok := attr(l, "for")
		if !ok {
			continue
		}
		ctrls := elements(root, func(n *html.Node) bool {
			v, ok := attr(n, "id")
			return ok && v == id
		})
		if len(ctrls) > 0 {
			return ctrls[0]
		}
	}
	return nil
}

// controlValue reads an input's value attribute or a textarea's text.
func controlValue(n *html.Node) string {
	if n.Data == "textarea" {
		return textContent(n)
	}
	v, _ := attr(n, "value")
	return v
}
