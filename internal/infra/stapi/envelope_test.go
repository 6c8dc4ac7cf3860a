package stapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

func TestMemberPath(t *testing.T) {
	cases := []struct {
		path string
		want []string
		ok   bool
	}{
		{path: "$", ok: true},
		{path: "$.content", want: []string{"content"}, ok: true},
		{path: "$.data.classes", want: []string{"data", "classes"}, ok: true},
		{path: "$.content[*]"},
		{path: "$..content"},
		{path: "content"},
	}
	for _, c := range cases {
		got, ok := memberPath(c.path)
		assert.Equal(t, c.ok, ok, c.path)
		assert.Equal(t, c.want, got, c.path)
	}
}

const orderedLinks = `{"content":[{"code":"1","class":"PDF","links":{"ZZZ":[{"code":"z"}],"AAA":[{"code":"a"}],"MMM":[{"code":"m"}]}}]}`

func TestDecodeConceptsKeepsLinkOrder(t *testing.T) {
	concepts, err := DecodeConcepts([]byte(orderedLinks), "")
	require.NoError(t, err)
	require.Len(t, concepts, 1)

	var cats []string
	for _, g := range concepts[0].Links {
		cats = append(cats, g.Category)
	}
	assert.Equal(t, []string{"ZZZ", "AAA", "MMM"}, cats)
}

func TestDecodeConceptsExpressionPath(t *testing.T) {
	concepts, err := DecodeConcepts([]byte(orderedLinks), "$.content[?(@.class == 'PDF')]")
	require.NoError(t, err)
	require.Len(t, concepts, 1)
	assert.Equal(t, "1", concepts[0].Code)
	assert.Len(t, concepts[0].Links, 3)
}

func TestDecodeConceptsLinksNotAnObject(t *testing.T) {
	_, err := DecodeConcepts([]byte(`{"content":[{"code":"1","links":"x"}]}`), "")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidData))
}

func TestDecodeConceptsContentNotArray(t *testing.T) {
	_, err := DecodeConcepts([]byte(`{"content":{"code":"1"}}`), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an array")
}
