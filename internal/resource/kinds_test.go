package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnau/data-standards-authority/internal/card"
	"github.com/arnau/data-standards-authority/internal/testutil"
)

func graphql() card.Guidance {
	published := card.NewDate(2021, 5, 20)
	return card.Guidance{
		ID:              "graphql",
		Description:     strPtr("Using GraphQL for APIs"),
		Maintainer:      "data-standards-authority",
		Status:          card.GuidancePublished,
		CreationDate:    card.NewDate(2021, 4, 1),
		UpdateDate:      card.NewDate(2021, 5, 14),
		PublicationDate: &published,
		Standards:       []string{"graphql", "openapi"},
		Content:         "# GraphQL",
	}
}

func TestGuidanceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	guidances := NewGuidances(s)
	ctx := context.Background()

	outcome, err := guidances.Add(ctx, graphql())
	require.NoError(t, err)
	assert.Equal(t, Created, outcome)

	got, err := guidances.Get(ctx, "graphql")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, graphql(), *got)

	reordered := graphql()
	reordered.Standards = []string{"openapi", "graphql"}
	outcome, err = guidances.Add(ctx, reordered)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome, "the standards list is ordered")

	got, err = guidances.Get(ctx, "graphql")
	require.NoError(t, err)
	assert.Equal(t, []string{"openapi", "graphql"}, got.Standards)
}

func TestRegistryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	licences := NewLicences(s)
	ogl := card.Licence{ID: "ogl", Name: "Open Government Licence", Acronym: strPtr("OGL"), URL: "https://ogl.example"}
	_, err := licences.Add(ctx, ogl)
	require.NoError(t, err)

	gotLicence, err := licences.Get(ctx, "ogl")
	require.NoError(t, err)
	assert.Equal(t, ogl, *gotLicence)

	organisations := NewOrganisations(s)
	w3c := card.Organisation{ID: "w3c", Name: "World Wide Web Consortium", URL: "https://w3.org"}
	_, err = organisations.Add(ctx, w3c)
	require.NoError(t, err)

	all, err := organisations.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []card.Organisation{w3c}, all)
}

func TestTaxonomy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	themes := NewThemes(s)
	topics := NewTopics(s)

	data := card.Theme{ID: "data", Name: "Data", Ordinal: 1, Description: "About data."}
	_, err := themes.Add(ctx, data)
	require.NoError(t, err)

	exchange := card.Topic{ID: "exchange", Name: "Data exchange", Theme: "data", Ordinal: 2, Description: "Moving data."}
	metadata := card.Topic{ID: "metadata", Name: "Metadata", Theme: "data", Ordinal: 1, Description: "Data about data."}
	for _, topic := range []card.Topic{exchange, metadata} {
		_, err := topics.Add(ctx, topic)
		require.NoError(t, err)
	}

	gotTheme, err := themes.Get(ctx, "data")
	require.NoError(t, err)
	assert.Equal(t, data, *gotTheme)

	byTheme, err := topics.ByTheme(ctx, "data")
	require.NoError(t, err)
	assert.Equal(t, []card.Topic{metadata, exchange}, byTheme)

	_, err = NewStandards(s).Add(ctx, testutil.Vapour())
	require.NoError(t, err)

	byTopic, err := NewStandards(s).ByTopic(ctx, "exchange")
	require.NoError(t, err)
	assert.Equal(t, []TopicStandard{{
		ID:         "vapour",
		Name:       "Vapour",
		Status:     card.EndorsementIdentified,
		ReviewDate: card.NewDate(2021, 6, 1),
	}}, byTopic)
}

func TestSectionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	sections := NewSections(s)
	ctx := context.Background()

	about := card.Section{ID: "about", ResourceType: "section", Content: "# About"}
	_, err := sections.Add(ctx, about)
	require.NoError(t, err)

	about.Content = "# About us"
	outcome, err := sections.Add(ctx, about)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	got, err := sections.Get(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, about, *got)
}

func TestSetDispatch(t *testing.T) {
	s := newTestStore(t)
	set := NewSet(s)
	ctx := context.Background()

	cards := []card.Card{
		testutil.Vapour(),
		graphql(),
		card.Licence{ID: "ogl", Name: "OGL", URL: "https://ogl.example"},
		card.Organisation{ID: "w3c", Name: "W3C", URL: "https://w3.org"},
		card.Topic{ID: "exchange", Name: "Exchange", Theme: "data"},
		card.Theme{ID: "data", Name: "Data"},
		card.Section{ID: "about", ResourceType: "section"},
	}
	for _, c := range cards {
		outcome, err := set.Add(ctx, c)
		require.NoError(t, err, c.Kind())
		assert.Equal(t, Created, outcome, c.Kind())

		got, err := set.Get(ctx, c.Kind(), c.Identifier())
		require.NoError(t, err)
		require.NotNil(t, got, c.Kind())
		assert.Equal(t, card.Fingerprint(c), card.Fingerprint(got), c.Kind())
	}

	missing, err := set.Get(ctx, card.KindTopic, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing, "a missing card is a nil interface")

	dropped, err := set.Drop(ctx, card.KindTheme, "data")
	require.NoError(t, err)
	assert.Equal(t, "data", dropped.Identifier())

	_, err = set.Get(ctx, card.Kind("usecase"), "x")
	assert.Error(t, err)
	_, err = set.Drop(ctx, card.Kind("usecase"), "x")
	assert.Error(t, err)
}
