package svgdoc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoSeatplan = errors.New("no seatplan svg found in page")

const (
	seatplanSelector = "div.seatplanWrapper > svg"
	houseSelector    = "div.showDetail div.name"
	xlinkDeclaration = `xmlns:xlink="http://www.w3.org/1999/xlink"`
)

// Page is what a captured seatplan page contributes: the chart and the
// name of the house it belongs to.
type Page struct {
	SVG   []byte
	House string
}

// FromPage pulls the seatplan <svg> out of a captured HTML page. Browsers
// drop the xlink namespace declaration when serializing inline svg, so it
// is put back to keep xlink:href anchors well-formed.
func FromPage(html []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	sel := doc.Find(seatplanSelector).First()
	if sel.Length() == 0 {
		sel = doc.Find("svg").First()
	}
	if sel.Length() == 0 {
		return nil, ErrNoSeatplan
	}

	outer, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to render seatplan svg: %w", err)
	}

	return &Page{
		SVG:   []byte(withXlinkNamespace(outer)),
		House: strings.TrimSpace(doc.Find(houseSelector).First().Text()),
	}, nil
}

func withXlinkNamespace(svg string) string {
	end := strings.IndexByte(svg, '>')
	if end < 0 {
		return svg
	}
	if strings.Contains(svg[:end], "xmlns:xlink") {
		return svg
	}
	if end > 0 && svg[end-1] == '/' {
		end--
	}
	return svg[:end] + " " + xlinkDeclaration + svg[end:]
}
