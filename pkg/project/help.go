package project

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-projectform/pkg/dom"
)

// helpPolicy allows the inline formatting field descriptions may carry
// (emphasis, code, links) and drops everything else.
var helpPolicy = sync.OnceValue(func() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("b", "strong", "em", "i", "code", "br")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
})

// helpText builds the hint shown under a control from a field description.
func helpText(description string) (*html.Node, error) {
	small := dom.Element("small", []html.Attribute{dom.Attr("class", "help")})
	clean := helpPolicy().Sanitize(strings.TrimSpace(description))
	nodes, err := html.ParseFragment(strings.NewReader(clean), &html.Node{
		Type:     html.ElementNode,
		Data:     "small",
		DataAtom: atom.Small,
	})
	if err != nil {
		return nil, err
	}
	for _, node := range nodes {
		small.AppendChild(node)
	}
	return small, nil
}
