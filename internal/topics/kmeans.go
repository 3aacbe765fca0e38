package topics

import (
	"math/rand/v2"
	"slices"
)

const unassigned = -1

// kmeans partitions the non-zero vectors into at most k groups with cosine
// similarity. Zero vectors stay unassigned. The PRNG is seeded so the same
// input always yields the same labels.
func kmeans(vectors []vector, k, iterations int, seed uint64) (labels []int, centroids []vector) {
	labels = make([]int, len(vectors))
	var active []int
	for i, v := range vectors {
		labels[i] = unassigned
		if !isZero(v) {
			active = append(active, i)
		}
	}
	if len(active) == 0 || k <= 0 {
		return labels, nil
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	centroids = seedCentroids(vectors, active, min(k, len(active)), rng)

	for iter := 0; iter < max(iterations, 1); iter++ {
		changed := false
		for _, i := range active {
			best := nearest(vectors[i], centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		centroids = recompute(vectors, labels, centroids)
		if !changed {
			break
		}
	}

	return labels, centroids
}

// seedCentroids applies k-means++ seeding over the active documents.
func seedCentroids(vectors []vector, active []int, k int, rng *rand.Rand) []vector {
	first := active[rng.IntN(len(active))]
	centroids := []vector{slices.Clone(vectors[first])}

	for len(centroids) < k {
		weights := make([]float64, len(active))
		var total float64
		for j, i := range active {
			d := 1 - cosine(vectors[i], centroids[nearest(vectors[i], centroids)])
			if d < 0 {
				d = 0
			}
			weights[j] = d * d
			total += weights[j]
		}
		if total == 0 {
			// every remaining document duplicates a centroid
			break
		}

		target := rng.Float64() * total
		pick := -1
		for j, w := range weights {
			if w == 0 {
				continue
			}
			pick = active[j]
			target -= w
			if target <= 0 {
				break
			}
		}
		centroids = append(centroids, slices.Clone(vectors[pick]))
	}

	return centroids
}

// nearest returns the index of the most similar centroid; ties go to the lowest index.
func nearest(v vector, centroids []vector) int {
	best, bestSim := 0, -2.0
	for c, centroid := range centroids {
		if sim := cosine(v, centroid); sim > bestSim {
			best, bestSim = c, sim
		}
	}
	return best
}

func recompute(vectors []vector, labels []int, previous []vector) []vector {
	dim := len(previous[0])
	sums := make([]vector, len(previous))
	counts := make([]int, len(previous))
	for c := range sums {
		sums[c] = make(vector, dim)
	}
	for i, label := range labels {
		if label == unassigned {
			continue
		}
		counts[label]++
		for j, x := range vectors[i] {
			sums[label][j] += x
		}
	}

	next := make([]vector, len(previous))
	for c := range sums {
		if counts[c] == 0 {
			next[c] = previous[c]
			continue
		}
		next[c] = normalize(sums[c])
	}
	return next
}
