package repos

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestVoteTransitionTable(t *testing.T) {
	liked := boolPtr(true)
	disliked := boolPtr(false)

	cases := []struct {
		name      string
		current   *bool
		action    voteAction
		wantDelta int
		wantApply bool
		wantNext  *bool
	}{
		{"none addLike", nil, voteLike, 1, true, liked},
		{"none addDislike", nil, voteDislike, -1, true, disliked},
		{"liked addLike noop", liked, voteLike, 0, false, nil},
		{"liked addDislike switch", liked, voteDislike, -2, true, disliked},
		{"liked removeLike", liked, unvoteLike, -1, true, nil},
		{"liked removeDislike noop", liked, unvoteDislike, 0, false, nil},
		{"disliked addDislike noop", disliked, voteDislike, 0, false, nil},
		{"disliked addLike switch", disliked, voteLike, 2, true, liked},
		{"disliked removeDislike", disliked, unvoteDislike, 1, true, nil},
		{"disliked removeLike noop", disliked, unvoteLike, 0, false, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, delta, apply := voteTransition(tc.current, tc.action)
			if apply != tc.wantApply {
				t.Fatalf("apply = %v, want %v", apply, tc.wantApply)
			}
			if delta != tc.wantDelta {
				t.Fatalf("delta = %d, want %d", delta, tc.wantDelta)
			}
			if !tc.wantApply {
				return
			}
			switch {
			case tc.wantNext == nil && next != nil:
				t.Fatalf("next = %v, want row deleted", *next)
			case tc.wantNext != nil && next == nil:
				t.Fatalf("next = nil, want %v", *tc.wantNext)
			case tc.wantNext != nil && *next != *tc.wantNext:
				t.Fatalf("next = %v, want %v", *next, *tc.wantNext)
			}
		})
	}
}

func TestVoteTransitionRoundTrip(t *testing.T) {
	// addLike then removeLike on a fresh vote nets zero.
	next, d1, _ := voteTransition(nil, voteLike)
	_, d2, _ := voteTransition(next, unvoteLike)
	if d1+d2 != 0 {
		t.Fatalf("addLike+removeLike net delta = %d, want 0", d1+d2)
	}
}

func TestVoteTransitionScenario(t *testing.T) {
	// useful starts at 0; U1 likes (+1), U2 dislikes (-1), U1 removes the
	// like (-1): -1 overall.
	useful := 0
	u1, d, _ := voteTransition(nil, voteLike)
	useful += d
	if useful != 1 {
		t.Fatalf("after U1 addLike useful = %d, want 1", useful)
	}
	_, d, _ = voteTransition(nil, voteDislike) // U2 has no prior vote
	useful += d
	if useful != 0 {
		t.Fatalf("after U2 addDislike useful = %d, want 0", useful)
	}
	_, d, _ = voteTransition(u1, unvoteLike)
	useful += d
	if useful != -1 {
		t.Fatalf("after U1 removeLike useful = %d, want -1", useful)
	}
}
