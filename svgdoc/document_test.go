package svgdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chart = `<svg xmlns:xlink="http://www.w3.org/1999/xlink">
	<g><rect x="0" y="0" width="100"/></g>
	<g>
		<text> A </text>
		<a xlink:href="#A1"><rect x="1" y="2" width="10" style="fill: rgb(0, 255, 0);"/><text>1</text></a>
		<a xlink:href="#A2"><rect x="16" y="2" width="25"/><text>2</text><text>3</text></a>
	</g>
</svg>`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		wantErr bool
	}{
		{name: "well formed", markup: chart},
		{name: "empty", markup: "", wantErr: true},
		{name: "unclosed", markup: "<svg><g>", wantErr: true},
		{name: "mismatched", markup: "<svg><g></a></svg>", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse([]byte(tc.markup))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrParse)
				assert.Nil(t, doc)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, doc)
		})
	}
}

func TestDocument_PathQueries(t *testing.T) {
	doc, err := Parse([]byte(chart))
	require.NoError(t, err)

	assert.Equal(t, "svg", doc.Root().Tag())
	groups := doc.RowGroups()
	require.Len(t, groups, 2)

	_, ok := groups[0].FirstLabel()
	assert.False(t, ok)
	assert.Empty(t, groups[0].SeatAnchors())

	label, ok := groups[1].FirstLabel()
	require.True(t, ok)
	assert.Equal(t, "A", label.Text())

	anchors := groups[1].SeatAnchors()
	require.Len(t, anchors, 2)

	shape, ok := anchors[0].Shape()
	require.True(t, ok)
	width, ok := shape.Attr("width")
	assert.True(t, ok)
	assert.Equal(t, "10", width)
	style, ok := shape.Attr("style")
	assert.True(t, ok)
	assert.Equal(t, "fill: rgb(0, 255, 0);", style)
	_, ok = shape.Attr("transform")
	assert.False(t, ok)

	labels := anchors[1].Labels()
	require.Len(t, labels, 2)
	assert.Equal(t, "2", labels[0].Text())
	assert.Equal(t, "3", labels[1].Text())

	href, ok := anchors[0].Attr("xlink:href")
	assert.True(t, ok)
	assert.Equal(t, "#A1", href)
}

func TestDocument_RowGroupsNeedSvgRoot(t *testing.T) {
	doc, err := Parse([]byte(`<html><g><text>A</text><a><rect/></a></g></html>`))
	require.NoError(t, err)

	assert.Equal(t, "html", doc.Root().Tag())
	assert.Nil(t, doc.RowGroups())
}

func TestDocument_String(t *testing.T) {
	doc, err := Parse([]byte(chart))
	require.NoError(t, err)

	out, err := doc.String()
	require.NoError(t, err)
	assert.Contains(t, out, `style="fill: rgb(0, 255, 0);"`)

	again, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.Len(t, again.RowGroups(), 2)
}
