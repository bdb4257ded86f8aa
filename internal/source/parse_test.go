package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnau/data-standards-authority/internal/card"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	return p
}

func TestSplitFrontmatter(t *testing.T) {
	front, body, err := splitFrontmatter([]byte("---\ntype: section\n---\n# About\n"))
	require.NoError(t, err)
	assert.Equal(t, "type: section\n", string(front))
	assert.Equal(t, "# About\n", string(body))

	front, body, err = splitFrontmatter([]byte("---\r\ntype: section\r\n---\r\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "type: section\r\n", string(front))
	assert.Equal(t, "body", string(body))

	_, _, err = splitFrontmatter([]byte("# No frontmatter\n"))
	assert.ErrorIs(t, err, ErrNoFrontmatter)
}

func TestSplitFrontmatterNeedsFenceAtLineStart(t *testing.T) {
	front, body, err := splitFrontmatter([]byte("---\nname: a---b\n---\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "name: a---b\n", string(front))
	assert.Equal(t, "body", string(body))
}

func TestParseStandard(t *testing.T) {
	p := newTestParser(t)
	blob := []byte(`---
type: standard
identifier: vapour
name: Vapour
topic: exchange
specification: https://spec.vapour.org/
licence: ogl
maintainer: data-standards-authority
endorsement_state:
  status: identified
  start_date: 2021-06-01
  review_date: 2021-06-01
related:
  - steam
---
# Vapour
`)

	c, err := p.ParseCard(blob)
	require.NoError(t, err)

	std, ok := c.(card.Standard)
	require.True(t, ok, "got %T", c)
	assert.Equal(t, "vapour", std.ID)
	assert.Equal(t, []string{"steam"}, std.Related)
	assert.Equal(t, card.EndorsementIdentified, std.EndorsementState.Status)
	assert.Equal(t, "2021-06-01", std.EndorsementState.ReviewDate.String())
	assert.Equal(t, "# Vapour\n", std.Content)
}

func TestParseTaxonomyUsesBodyAsDescription(t *testing.T) {
	p := newTestParser(t)

	c, err := p.ParseCard([]byte("---\ntype: topic\nidentifier: exchange\nname: Exchange\ntheme: data\nordinal: 3\n---\nMoving data.\n"))
	require.NoError(t, err)
	assert.Equal(t, card.Topic{
		ID:          "exchange",
		Name:        "Exchange",
		Theme:       "data",
		Ordinal:     3,
		Description: "Moving data.\n",
	}, c)

	c, err = p.ParseCard([]byte("---\ntype: theme\nidentifier: data\nname: Data\nordinal: 1\n---\nAll data.\n"))
	require.NoError(t, err)
	assert.Equal(t, "All data.\n", c.(card.Theme).Description)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	p := newTestParser(t)

	tests := map[string]string{
		"unknown status":  "---\ntype: guidance\nidentifier: g\nmaintainer: m\nstatus: lost\ncreation_date: 2021-01-01\nupdate_date: 2021-01-01\nstandards: []\n---\n",
		"missing field":   "---\ntype: section\nidentifier: about\n---\n",
		"unknown field":   "---\ntype: section\nidentifier: about\nresource_type: section\ncolour: red\n---\n",
		"negative order":  "---\ntype: theme\nidentifier: data\nname: Data\nordinal: -1\n---\n",
		"bad date":        "---\ntype: guidance\nidentifier: g\nmaintainer: m\nstatus: draft\ncreation_date: 01/02/2021\nupdate_date: 2021-01-01\nstandards: []\n---\n",
		"empty id":        "---\ntype: section\nidentifier: \"\"\nresource_type: section\n---\n",
		"wrong list type": "---\ntype: guidance\nidentifier: g\nmaintainer: m\nstatus: draft\ncreation_date: 2021-01-01\nupdate_date: 2021-01-01\nstandards: vapour\n---\n",
	}

	for name, blob := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := p.ParseCard([]byte(blob))
			assert.Error(t, err)
		})
	}
}

func TestParseTypeHints(t *testing.T) {
	p := newTestParser(t)

	_, err := p.ParseCard([]byte("---\nidentifier: x\n---\nbody"))
	assert.ErrorIs(t, err, ErrNoType)

	_, err = p.ParseCard([]byte("---\ntype: usecase\nidentifier: x\n---\nbody"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usecase")

	_, err = p.ParseCard([]byte("no frontmatter"))
	assert.ErrorIs(t, err, ErrNoFrontmatter)
}

func TestParseOptionalNulls(t *testing.T) {
	p := newTestParser(t)

	c, err := p.ParseCard([]byte(`---
type: standard
identifier: steam
name: Steam
acronym:
topic: exchange
specification: https://spec.steam.org/
licence: null
maintainer: w3c
endorsement_state:
  status: endorsed
  start_date: 2021-06-01
  review_date: 2021-06-01
  end_date: 2023-06-01
---
`))
	require.NoError(t, err)

	std := c.(card.Standard)
	assert.Nil(t, std.Acronym)
	assert.Nil(t, std.Licence)
	require.NotNil(t, std.EndorsementState.EndDate)
	assert.Equal(t, "2023-06-01", std.EndorsementState.EndDate.String())
}

func TestParseRegistries(t *testing.T) {
	p := newTestParser(t)

	licences, err := p.ParseLicences([]byte(`[{"id": "ogl", "name": "Open Government Licence", "acronym": "OGL", "url": "https://ogl.example"}]`))
	require.NoError(t, err)
	require.Len(t, licences, 1)
	assert.Equal(t, "OGL", *licences[0].Acronym)

	orgs, err := p.ParseOrganisations([]byte(`[{"id": "w3c", "name": "W3C", "url": "https://w3.org"}]`))
	require.NoError(t, err)
	assert.Equal(t, []card.Organisation{{ID: "w3c", Name: "W3C", URL: "https://w3.org"}}, orgs)

	_, err = p.ParseOrganisations([]byte(`[{"id": "w3c", "name": "W3C"}]`))
	assert.Error(t, err, "url is required")

	_, err = p.ParseLicences([]byte(`{"id": "ogl"}`))
	assert.Error(t, err, "a list is required")
}
