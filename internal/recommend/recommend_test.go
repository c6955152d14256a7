package recommend

import (
	"reflect"
	"testing"
)

func TestRecommendNoLikes(t *testing.T) {
	likes := map[int64][]int64{
		2: {1, 2},
	}
	if got := Recommend(1, likes); len(got) != 0 {
		t.Fatalf("expected no recommendations for a user with no likes, got %v", got)
	}
}

func TestRecommendDisjointLikes(t *testing.T) {
	likes := map[int64][]int64{
		1: {1, 2},
		2: {3, 4},
	}
	if got := Recommend(1, likes); len(got) != 0 {
		t.Fatalf("expected no recommendations for disjoint like sets, got %v", got)
	}
	if got := Recommend(2, likes); len(got) != 0 {
		t.Fatalf("expected no recommendations for disjoint like sets, got %v", got)
	}
}

func TestRecommendSingleNeighbor(t *testing.T) {
	// A likes {1,2}, B likes {2,3}, C likes {4}: B is A's only neighbor,
	// candidate {2,3} minus {1,2} leaves {3}.
	likes := map[int64][]int64{
		1: {1, 2},
		2: {2, 3},
		3: {4},
	}
	got := Recommend(1, likes)
	want := []int64{3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRecommendRanksByContributingNeighbors(t *testing.T) {
	// Both neighbors like film 10; only one likes film 20.
	likes := map[int64][]int64{
		1: {1},
		2: {1, 10, 20},
		3: {1, 10},
	}
	got := Recommend(1, likes)
	want := []int64{10, 20}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRecommendNeighborTieBreakByUserID(t *testing.T) {
	// Eleven users all share exactly one like with the target; only the ten
	// lowest ids may contribute. User 12 alone likes film 99, so 99 must
	// not appear.
	likes := map[int64][]int64{1: {1}}
	for u := int64(2); u <= 12; u++ {
		likes[u] = []int64{1, 100 + u}
	}
	likes[12] = []int64{1, 99}

	got := Recommend(1, likes)
	for _, f := range got {
		if f == 99 {
			t.Fatalf("film 99 contributed by the excluded 11th neighbor: %v", got)
		}
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 candidate films from 10 neighbors, got %v", got)
	}
}

func TestRecommendResultOrderDeterministic(t *testing.T) {
	likes := map[int64][]int64{
		1: {1},
		2: {1, 7, 3, 5},
	}
	want := Recommend(1, likes)
	for i := 0; i < 20; i++ {
		if got := Recommend(1, likes); !reflect.DeepEqual(got, want) {
			t.Fatalf("order not stable: got %v, want %v", got, want)
		}
	}
	// Equal-vote candidates come back in ascending film id order.
	wantOrder := []int64{3, 5, 7}
	if !reflect.DeepEqual(want, wantOrder) {
		t.Fatalf("got %v, want %v", want, wantOrder)
	}
}

func TestRecommendDuplicateNeighborLikesCountOnce(t *testing.T) {
	// Matrix rows are slices; a repeated film id in one row must not count
	// as two contributing neighbors.
	likes := map[int64][]int64{
		1: {1},
		2: {1, 9, 9},
		3: {1, 8},
	}
	got := Recommend(1, likes)
	want := []int64{8, 9}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
