package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"auction_client/internal/domain/value"
	"auction_client/internal/render"
	"auction_client/internal/store"
)

func TestDocument_ApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	r := render.NewRenderer(playerID)
	doc := render.NewDocument()

	s := store.New()
	s.Replace(value.KindAuction, tulips(100, true))

	frame, err := r.Render(value.ScreenAuction, s.Read())
	rq.NoError(err)

	first := doc.Apply(frame)
	rq.Len(first, len(frame.Elements))
	rq.Empty(doc.Apply(frame))

	bar, ok := doc.Element(value.ScreenAuction, render.IDProgressBar)
	rq.True(ok)
	rq.Equal("0%", bar.Width)

	// Цена снизилась: меняются только цена и полоса прогресса.
	s.Replace(value.KindAuction, tulips(55, true))

	frame, err = r.Render(value.ScreenAuction, s.Read())
	rq.NoError(err)

	changed := doc.Apply(frame)
	rq.Len(changed, 2)

	byID := map[string]render.Mutation{}
	for _, m := range changed {
		byID[m.ElementID] = m
	}

	rq.Equal(render.OpSetWidth, byID[render.IDProgressBar].Op)
	rq.Equal("50%", byID[render.IDProgressBar].Value)
	rq.Equal(render.OpSetText, byID[render.IDPrice].Op)
}

func TestDocument_ButtonsAndLists(t *testing.T) {
	t.Parallel()

	rq := require.New(t)
	doc := render.NewDocument()

	frame := render.Frame{
		Screen: value.ScreenGame,
		Elements: []render.Element{
			{ID: "startGame", Kind: render.KindButton},
			{ID: "playersList", Kind: render.KindList, Items: []string{"Анна"}},
		},
	}
	rq.Len(doc.Apply(frame), 2)

	frame.Elements = []render.Element{
		{ID: "startGame", Kind: render.KindButton, Disabled: true},
		{ID: "playersList", Kind: render.KindList, Items: []string{"Анна", "Борис"}},
	}

	mutations := doc.Apply(frame)
	rq.Equal([]render.Mutation{
		{Screen: value.ScreenGame, ElementID: "startGame", Op: render.OpSetDisabled, Value: true},
		{Screen: value.ScreenGame, ElementID: "playersList", Op: render.OpReplaceItems, Value: []string{"Анна", "Борис"}},
	}, mutations)

	elements := doc.Elements(value.ScreenGame)
	rq.Len(elements, 2)
	rq.Equal("playersList", elements[0].ID)

	rq.Empty(doc.Elements(value.ScreenStatistics))
}
