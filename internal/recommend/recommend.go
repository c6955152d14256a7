// Package recommend implements like-based collaborative filtering over the
// full like matrix. It is pure computation: callers provide the matrix and
// resolve the returned film ids themselves.
package recommend

import "sort"

// maxNeighbors caps how many similar users contribute candidates.
const maxNeighbors = 10

// Recommend returns film ids to suggest to the target user.
//
// Neighbors are all other users sharing at least one like with the target,
// ranked by the size of that unnormalized intersection, ties broken by
// ascending user id, truncated to maxNeighbors. The result is the union of
// the neighbors' like sets minus the target's own likes, ordered by the
// number of contributing neighbors descending and film id ascending.
//
// A target with no likes has no similarity basis and gets nothing.
func Recommend(target int64, likes map[int64][]int64) []int64 {
	targetLikes := make(map[int64]struct{}, len(likes[target]))
	for _, f := range likes[target] {
		targetLikes[f] = struct{}{}
	}
	if len(targetLikes) == 0 {
		return []int64{}
	}

	type neighbor struct {
		user    int64
		overlap int
	}
	neighbors := make([]neighbor, 0)
	for user, films := range likes {
		if user == target {
			continue
		}
		overlap := 0
		for _, f := range films {
			if _, ok := targetLikes[f]; ok {
				overlap++
			}
		}
		if overlap > 0 {
			neighbors = append(neighbors, neighbor{user: user, overlap: overlap})
		}
	}
	if len(neighbors) == 0 {
		return []int64{}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].overlap != neighbors[j].overlap {
			return neighbors[i].overlap > neighbors[j].overlap
		}
		return neighbors[i].user < neighbors[j].user
	})
	if len(neighbors) > maxNeighbors {
		neighbors = neighbors[:maxNeighbors]
	}

	// Candidate films ranked by how many selected neighbors liked them.
	votes := make(map[int64]int)
	for _, n := range neighbors {
		seen := make(map[int64]struct{})
		for _, f := range likes[n.user] {
			if _, own := targetLikes[f]; own {
				continue
			}
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			votes[f]++
		}
	}

	out := make([]int64, 0, len(votes))
	for f := range votes {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if votes[out[i]] != votes[out[j]] {
			return votes[out[i]] > votes[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
