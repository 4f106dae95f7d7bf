package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandContainsInput(t *testing.T) {
	o := Default()
	for _, topic := range o.Keys() {
		assert.Contains(t, o.Expand(topic), topic)
	}
	assert.Equal(t, []string{"gardening"}, o.Expand("gardening"), "unknown topics expand to themselves")
}

func TestExpandNormalizesInput(t *testing.T) {
	o := Default()
	assert.Equal(t, o.Expand("ai"), o.Expand("  AI  "))
}

func TestExpandFromSynonymMember(t *testing.T) {
	o := Default()
	// "ipl" is a member of the cricket synonym set, so expanding it pulls
	// in the whole set.
	got := o.Expand("ipl")
	assert.Contains(t, got, "cricket")
	assert.Contains(t, got, "wicket")
}

func TestExpandIdempotentOverKeys(t *testing.T) {
	o := Default()
	for _, topic := range o.Keys() {
		expanded := o.Expand(topic)
		for _, member := range expanded {
			if !contains(o.Keys(), member) {
				continue
			}
			re := o.Expand(member)
			for _, s := range expanded {
				assert.Contains(t, re, s, "re-expanding a canonical member must be a superset")
			}
		}
	}
}

func TestEntityTermsLongestFirst(t *testing.T) {
	o := Default()
	terms := o.EntityTerms()
	require.NotEmpty(t, terms)
	for i := 1; i < len(terms); i++ {
		assert.GreaterOrEqual(t, len(terms[i-1]), len(terms[i]))
	}
	assert.Contains(t, terms, "elon musk")
	assert.Contains(t, terms, "musk")
}

func TestIsEntity(t *testing.T) {
	o := Default()
	assert.True(t, o.IsEntity("elon musk"))
	assert.True(t, o.IsEntity("tesla"), "synonym members resolve to their entity")
	assert.False(t, o.IsEntity("cricket"))
	assert.False(t, o.IsEntity(""))
}

func TestLexicons(t *testing.T) {
	o := Default()
	assert.True(t, o.IsAITerm("xai"))
	assert.False(t, o.IsAITerm("cricket"))
	assert.Contains(t, o.PositiveWords(), "great")
	assert.Contains(t, o.AIWords(), "llm")
}
