package indeed

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// elementNode reads a live element through playwright
type elementNode struct {
	h playwright.ElementHandle
}

func (n elementNode) Find(selector string) (Node, error) {
	child, err := n.h.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, nil
	}
	return elementNode{h: child}, nil
}

func (n elementNode) Text() (string, error) {
	return n.h.TextContent()
}

func (n elementNode) Attr(name string) (string, bool, error) {
	v, err := n.h.GetAttribute(name)
	if err != nil {
		return "", false, err
	}
	return v, v != "", nil
}

// selectionNode reads a parsed document through goquery
type selectionNode struct {
	s *goquery.Selection
}

func (n selectionNode) Find(selector string) (Node, error) {
	child := n.s.Find(selector).First()
	if child.Length() == 0 {
		return nil, nil
	}
	return selectionNode{s: child}, nil
}

func (n selectionNode) Text() (string, error) {
	return n.s.Text(), nil
}

func (n selectionNode) Attr(name string) (string, bool, error) {
	v, ok := n.s.Attr(name)
	return v, ok, nil
}
