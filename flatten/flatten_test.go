package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/flatxml/xmltree"
)

func mustParse(t *testing.T, doc string) *xmltree.Element {
	t.Helper()
	root, err := xmltree.ParseBytes([]byte(doc))
	require.NoError(t, err)
	return root
}

func TestStripNamespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"book", "book"},
		{"{http://example.com}book", "book"},
		{"{}book", "book"},
		{"{unterminated", "{unterminated"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripNamespace(tt.in), "StripNamespace(%q)", tt.in)
	}
}

func TestFlattenLeaf(t *testing.T) {
	f := New(DefaultOptions())

	t.Run("text leaf", func(t *testing.T) {
		rows, err := f.Flatten(mustParse(t, `<name>Alice</name>`), "")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		v, ok := rows[0].Get("name")
		require.True(t, ok)
		assert.Equal(t, Text("Alice"), v)
	})

	t.Run("empty leaf claims its column with Null", func(t *testing.T) {
		rows, err := f.Flatten(mustParse(t, `<field></field>`), "")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"field"}, rows[0].Paths())
		v, ok := rows[0].Get("field")
		require.True(t, ok)
		assert.True(t, v.IsNull())
	})

	t.Run("attribute-only leaf", func(t *testing.T) {
		rows, err := f.Flatten(mustParse(t, `<price currency="USD"/>`), "order")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		v, ok := rows[0].Get("order.price.@currency")
		require.True(t, ok)
		assert.Equal(t, Text("USD"), v)
	})
}

func TestFlattenDeepNesting(t *testing.T) {
	f := New(DefaultOptions())
	rows, err := f.Flatten(mustParse(t, `<a><b><c><d><e>X</e></d></c></b></a>`), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a.b.c.d.e"}, rows[0].Paths())
	v, _ := rows[0].Get("a.b.c.d.e")
	assert.Equal(t, Text("X"), v)
}

func TestFlattenRepeatsUnion(t *testing.T) {
	f := New(DefaultOptions())
	doc := `<order>
		<customer>Alice</customer>
		<items>
			<item>pen</item>
			<item>ink</item>
			<item>pad</item>
		</items>
	</order>`
	rows, err := f.Flatten(mustParse(t, doc), "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	var items []string
	for _, row := range rows {
		cust, ok := row.Get("order.customer")
		require.True(t, ok)
		assert.Equal(t, Text("Alice"), cust)
		item, ok := row.Get("order.items.item")
		require.True(t, ok)
		items = append(items, item.Text())
	}
	assert.Equal(t, []string{"pen", "ink", "pad"}, items)
}

func TestFlattenCartesianProduct(t *testing.T) {
	f := New(DefaultOptions())
	doc := `<book>
		<author>A1</author>
		<author>A2</author>
		<category>C1</category>
		<category>C2</category>
	</book>`
	rows, err := f.Flatten(mustParse(t, doc), "")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	pairs := make(map[[2]string]bool)
	for _, row := range rows {
		a, _ := row.Get("book.author")
		c, _ := row.Get("book.category")
		pairs[[2]string{a.Text(), c.Text()}] = true
	}
	for _, a := range []string{"A1", "A2"} {
		for _, c := range []string{"C1", "C2"} {
			assert.True(t, pairs[[2]string{a, c}], "missing pair (%s, %s)", a, c)
		}
	}
}

func TestFlattenMixedValueTypes(t *testing.T) {
	f := New(DefaultOptions())
	doc := `<book id="1">
		<title>T</title>
		<price>29.99</price>
		<pages>320</pages>
		<available>true</available>
	</book>`
	rows, err := f.Flatten(mustParse(t, doc), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]

	id, _ := row.Get("book.@id")
	assert.Equal(t, Int(1), id)
	title, _ := row.Get("book.title")
	assert.Equal(t, Text("T"), title)
	price, _ := row.Get("book.price")
	assert.Equal(t, Float(29.99), price)
	pages, _ := row.Get("book.pages")
	assert.Equal(t, Int(320), pages)
	avail, _ := row.Get("book.available")
	assert.Equal(t, Bool(true), avail)
}

func TestFlattenAttributesDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeAttributes = false
	f := New(opts)

	rows, err := f.Flatten(mustParse(t, `<book id="1"><title>T</title></book>`), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"book.title"}, rows[0].Paths())
}

func TestFlattenCustomDelimiterAndPrefix(t *testing.T) {
	f := New(Options{
		IncludeAttributes: true,
		PathDelimiter:     "/",
		AttributePrefix:   "$",
	})
	rows, err := f.Flatten(mustParse(t, `<book id="1"><title>T</title></book>`), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"book/$id", "book/title"}, rows[0].Paths())
}

func TestFlattenNamespacedDocument(t *testing.T) {
	f := New(DefaultOptions())
	doc := `<root xmlns="http://example.com/ns"><item>v</item></root>`
	rows, err := f.Flatten(mustParse(t, doc), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	v, ok := rows[0].Get("root.item")
	require.True(t, ok)
	assert.Equal(t, Text("v"), v)
}

func TestFlattenParentTextWithChildren(t *testing.T) {
	f := New(DefaultOptions())
	rows, err := f.Flatten(mustParse(t, `<note priority="2">remember<when>today</when></note>`), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]

	assert.Equal(t, []string{"note.@priority", "note", "note.when"}, row.Paths())
	text, _ := row.Get("note")
	assert.Equal(t, Text("remember"), text)
}

func TestFlattenMaxDepth(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 3
	f := New(opts)

	_, err := f.Flatten(mustParse(t, `<a><b><c><d>X</d></c></b></a>`), "")
	assert.Error(t, err)

	rows, err := f.Flatten(mustParse(t, `<a><b><c>X</c></b></a>`), "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSelectRecords(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantTag string
		wantLen int
	}{
		{"uniform children", `<catalog><book/><book/><book/></catalog>`, "book", 3},
		{"majority wins", `<root><meta/><item/><item/></root>`, "item", 2},
		{"tie breaks to first seen", `<root><a/><b/><a/><b/></root>`, "a", 2},
		{"three-way tie", `<root><x/><y/><z/></root>`, "x", 1},
		{"no children", `<root/>`, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, records := SelectRecords(mustParse(t, tt.doc))
			assert.Equal(t, tt.wantTag, tag)
			assert.Len(t, records, tt.wantLen)
		})
	}
}

func TestDocumentRows(t *testing.T) {
	f := New(DefaultOptions())

	t.Run("records concatenate and never multiply", func(t *testing.T) {
		doc := `<catalog>
			<book id="1"><title>A</title></book>
			<book id="2"><title>B</title></book>
		</catalog>`
		rows, tag, err := f.DocumentRows(mustParse(t, doc))
		require.NoError(t, err)
		assert.Equal(t, "book", tag)
		require.Len(t, rows, 2)

		// document order preserved
		first, _ := rows[0].Get("book.title")
		second, _ := rows[1].Get("book.title")
		assert.Equal(t, Text("A"), first)
		assert.Equal(t, Text("B"), second)
	})

	t.Run("childless root falls back to flattening root", func(t *testing.T) {
		rows, tag, err := f.DocumentRows(mustParse(t, `<only>42</only>`))
		require.NoError(t, err)
		assert.Equal(t, "", tag)
		require.Len(t, rows, 1)
		v, _ := rows[0].Get("only")
		assert.Equal(t, Int(42), v)
	})

	t.Run("record paths omit the root tag", func(t *testing.T) {
		rows, _, err := f.DocumentRows(mustParse(t, `<catalog><book id="1"><title>T</title></book></catalog>`))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"book.@id", "book.title"}, rows[0].Paths())
	})
}
