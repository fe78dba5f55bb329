package textanalysis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"lexdoc/pkg/common"
)

const kmeansIterations = 10

// Cluster describes one partition of the corpus.
type Cluster struct {
	ID                   int            `json:"cluster_id"`
	DocumentIDs          []string       `json:"document_ids"`
	CommonTerms          []TermCount    `json:"common_terms"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	Quality              float64        `json:"quality"`
}

// ClusterReport is the result of partitioning a corpus into k clusters.
type ClusterReport struct {
	TotalDocuments int            `json:"total_documents"`
	NumClusters    int            `json:"num_clusters"`
	Clusters       []Cluster      `json:"clusters"`
	Assignments    map[string]int `json:"assignments"`
}

// ClusterDocuments partitions documents into k clusters by k-means over
// TF-IDF vectors with cosine distance. Centroids are initialized from
// randomly sampled documents using rng; pass a seeded source for
// deterministic assignments, or nil for a time-seeded one. The iteration
// budget is fixed: there is no early convergence check.
//
// When the corpus is smaller than k each document becomes its own cluster
// and no iteration runs.
func (a *Analyzer) ClusterDocuments(docs []common.Document, k int, rng *rand.Rand) (*ClusterReport, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", k)
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	tokens := make([][]string, len(docs))
	for i, doc := range docs {
		tokens[i] = a.Tokenize(documentText(doc.Title, doc.Content, doc.Summary))
	}

	vectors := buildTFIDFVectors(tokens)

	var clusterIDs [][]int
	if len(docs) < k {
		// Degenerate corpus: one document per cluster.
		clusterIDs = make([][]int, len(docs))
		for i := range docs {
			clusterIDs[i] = []int{i}
		}
	} else {
		clusterIDs = kmeans(vectors, k, rng)
	}

	report := &ClusterReport{
		TotalDocuments: len(docs),
		NumClusters:    k,
		Clusters:       make([]Cluster, 0, len(clusterIDs)),
		Assignments:    make(map[string]int, len(docs)),
	}

	for id, members := range clusterIDs {
		termCounts := make(map[string]int)
		categories := make(map[string]int)
		docIDs := make([]string, 0, len(members))
		memberVectors := make([][]float64, 0, len(members))

		for _, idx := range members {
			docIDs = append(docIDs, docs[idx].ID)
			report.Assignments[docs[idx].ID] = id
			for _, tok := range tokens[idx] {
				termCounts[tok]++
			}
			if docs[idx].Category != "" {
				categories[docs[idx].Category]++
			}
			memberVectors = append(memberVectors, vectors[idx])
		}

		report.Clusters = append(report.Clusters, Cluster{
			ID:                   id,
			DocumentIDs:          docIDs,
			CommonTerms:          topCounts(termCounts, 10),
			CategoryDistribution: categories,
			Quality:              clusterQuality(memberVectors),
		})
	}

	return report, nil
}

// buildTFIDFVectors converts per-document token streams into TF-IDF vectors
// over the shared vocabulary. The vocabulary is sorted so vector layout is
// deterministic.
func buildTFIDFVectors(tokens [][]string) [][]float64 {
	termSet := make(map[string]struct{})
	counts := make([]map[string]int, len(tokens))
	for i, docTokens := range tokens {
		counts[i] = make(map[string]int, len(docTokens))
		for _, tok := range docTokens {
			counts[i][tok]++
			termSet[tok] = struct{}{}
		}
	}

	terms := make([]string, 0, len(termSet))
	for term := range termSet {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	docFreq := make(map[string]int, len(terms))
	for _, docCounts := range counts {
		for term := range docCounts {
			docFreq[term]++
		}
	}

	total := len(tokens)
	vectors := make([][]float64, len(tokens))
	for i := range tokens {
		vec := make([]float64, len(terms))
		for j, term := range terms {
			tf := counts[i][term]
			if tf == 0 {
				continue
			}
			idf := math.Log(float64(total) / float64(max(docFreq[term], 1)))
			vec[j] = float64(tf) * idf
		}
		vectors[i] = vec
	}
	return vectors
}

// kmeans runs the fixed-budget iteration: assign every vector to the closest
// centroid by cosine distance, then move each centroid to the mean of its
// members, keeping the previous centroid when a cluster empties.
func kmeans(vectors [][]float64, k int, rng *rand.Rand) [][]int {
	centroids := make([][]float64, k)
	for i := range k {
		sample := vectors[rng.IntN(len(vectors))]
		centroids[i] = append([]float64(nil), sample...)
	}

	var clusters [][]int
	for range kmeansIterations {
		clusters = make([][]int, k)
		for i := range clusters {
			clusters[i] = []int{}
		}

		for idx, vec := range vectors {
			closest := 0
			minDistance := math.Inf(1)
			for cid, centroid := range centroids {
				if d := cosineDistance(vec, centroid); d < minDistance {
					minDistance = d
					closest = cid
				}
			}
			clusters[closest] = append(clusters[closest], idx)
		}

		for cid, members := range clusters {
			if len(members) == 0 {
				continue
			}
			mean := make([]float64, len(centroids[cid]))
			for _, idx := range members {
				for j, v := range vectors[idx] {
					mean[j] += v
				}
			}
			for j := range mean {
				mean[j] /= float64(len(members))
			}
			centroids[cid] = mean
		}
	}

	return clusters
}

// cosineDistance is 1 - cosine similarity, with distance 1 when either
// vector has zero magnitude.
func cosineDistance(a, b []float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 1.0
	}
	return 1 - dot/(math.Sqrt(magA)*math.Sqrt(magB))
}

// clusterQuality is the average pairwise cosine similarity among members,
// zero for clusters smaller than two.
func clusterQuality(vectors [][]float64) float64 {
	if len(vectors) < 2 {
		return 0
	}
	total := 0.0
	comparisons := 0
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			total += 1 - cosineDistance(vectors[i], vectors[j])
			comparisons++
		}
	}
	return total / float64(comparisons)
}
