package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/rpsbuild/internal/rps"
)

func TestQuote(t *testing.T) {
	cat := Catalog{CardMove: 2, GaugeBuy: 3, GaugeBuyAmount: 0.25}
	d := Draft{
		Add:       [3]int{3, 0, 0},
		Sub:       [3]int{0, 1, 2},
		GaugeBuys: [3]int{0, 2, 1},
	}
	plan := Quote(cat, d)

	want := []Purchase{
		{Kind: "move", Qty: 3, UnitPrice: 2, Subtotal: 6},
		{Kind: "gauge", Color: rps.Choki, Qty: 2, UnitPrice: 3, Subtotal: 6},
		{Kind: "gauge", Color: rps.Pa, Qty: 1, UnitPrice: 3, Subtotal: 3},
	}
	if diff := cmp.Diff(want, plan.Purchases); diff != "" {
		t.Fatalf("purchases (-want +got):\n%s", diff)
	}
	assert.Equal(t, 6, plan.MoveCost)
	assert.Equal(t, 9, plan.GaugeCost)
	assert.Equal(t, 15, plan.Total)
	assert.Equal(t, [3]float64{0, 0.5, 0.25}, plan.GaugeGain)
}

func TestCostSaturates(t *testing.T) {
	assert.Equal(t, 6, Cost(3, 2))
	assert.Zero(t, Cost(0, 5))
	assert.Zero(t, Cost(5, 0))
	assert.Equal(t, math.MaxInt, Cost(math.MaxInt/2+1, 2))

	cat := Catalog{CardMove: 1, GaugeBuy: 2, GaugeBuyAmount: 0.5}
	plan := Quote(cat, Draft{GaugeBuys: [3]int{math.MaxInt / 2, math.MaxInt / 2, 1}})
	assert.Equal(t, math.MaxInt, plan.GaugeCost)
	assert.Equal(t, math.MaxInt, plan.Total)

	plan = Quote(cat, Draft{Add: [3]int{math.MaxInt, math.MaxInt, 0}, GaugeBuys: [3]int{1, 0, 0}})
	assert.Equal(t, math.MaxInt, plan.MoveCost)
	assert.Equal(t, math.MaxInt, plan.Total)
}

func TestQuoteEmpty(t *testing.T) {
	plan := Quote(DefaultCatalog(), Draft{})
	assert.Zero(t, plan.Total)
	assert.Empty(t, plan.Purchases)
	assert.True(t, Draft{}.Empty())
}

func TestMovesTakesLargerSide(t *testing.T) {
	assert.Equal(t, 4, Draft{Add: [3]int{1, 1, 0}, Sub: [3]int{0, 0, 4}}.Moves())
	assert.Equal(t, 5, Draft{Add: [3]int{5, 0, 0}, Sub: [3]int{0, 2, 0}}.Moves())
}

func TestDraftApply(t *testing.T) {
	p := rps.MustDeckProfile(10, 10, 10)

	next, err := Draft{Add: [3]int{4, 0, 0}, Sub: [3]int{0, 1, 3}}.Apply(p)
	require.NoError(t, err)
	assert.Equal(t, [3]int{14, 9, 7}, next.Counts())

	_, err = Draft{Add: [3]int{4, 0, 0}, Sub: [3]int{0, 1, 2}}.Apply(p)
	assert.True(t, errors.Is(err, rps.ErrInvalidProfile), "got %v", err)

	_, err = Draft{Sub: [3]int{0, 11, 0}, Add: [3]int{11, 0, 0}}.Apply(p)
	assert.Error(t, err)

	_, err = Draft{Add: [3]int{-1, 0, 0}, Sub: [3]int{0, -1, 0}}.Apply(p)
	assert.Error(t, err)
}

func TestPlanDeckChange(t *testing.T) {
	from := rps.MustDeckProfile(0, 0, 30)
	to := rps.MustDeckProfile(20, 5, 5)
	d := PlanDeckChange(from, to)
	assert.Equal(t, [3]int{20, 5, 0}, d.Add)
	assert.Equal(t, [3]int{0, 0, 25}, d.Sub)
	assert.Equal(t, 25, d.Moves())

	got, err := d.Apply(from)
	require.NoError(t, err)
	assert.Equal(t, to, got)
}
