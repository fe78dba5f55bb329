package textanalysis

import (
	"sort"

	"lexdoc/pkg/common"
)

const citationClusterThreshold = 0.3

// CitationCount ranks a document number by how often it cites or is cited.
type CitationCount struct {
	DocumentNumber string `json:"document_number"`
	Count          int    `json:"count"`
}

// CitationCluster groups documents whose cited-reference sets overlap.
type CitationCluster struct {
	ID              int      `json:"cluster_id"`
	DocumentNumbers []string `json:"document_numbers"`
	CommonCitations []string `json:"common_citations"`
	Similarity      float64  `json:"similarity"`
}

// CitationNetwork is the directed citation graph over a corpus, keyed by
// document number. Graph values keep one entry per citation occurrence;
// cluster similarity works on the deduplicated sets.
type CitationNetwork struct {
	TotalDocuments         int                 `json:"total_documents"`
	DocumentsWithCitations int                 `json:"documents_with_citations"`
	TotalCitations         int                 `json:"total_citations"`
	Graph                  map[string][]string `json:"citation_graph"`
	MostCited              []CitationCount     `json:"most_cited"`
	MostCiting             []CitationCount     `json:"most_citing"`
	Clusters               []CitationCluster   `json:"citation_clusters"`
}

// ExtractReferences pulls legal-instrument identifiers out of content using
// the vocabulary's reference patterns. The result is deduplicated and sorted.
func (a *Analyzer) ExtractReferences(content string) []string {
	seen := make(map[string]struct{})
	for _, pattern := range a.vocab.ReferencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			if len(match) > 1 && match[1] != "" {
				seen[match[1]] = struct{}{}
			}
		}
	}

	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// BuildCitationNetwork extracts references from every document's content and
// attached reference list, and records an edge citing -> cited whenever the
// cited identifier belongs to another known document. Rankings are plain
// descending counts; clusters merge documents whose reference sets have
// Jaccard similarity above 0.3 against the cluster seed, first match wins.
func (a *Analyzer) BuildCitationNetwork(docs []common.Document) *CitationNetwork {
	known := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		if doc.DocumentNumber != "" {
			known[doc.DocumentNumber] = struct{}{}
		}
	}

	graph := make(map[string][]string)
	var order []string
	for _, doc := range docs {
		if doc.DocumentNumber == "" {
			continue
		}
		refs := append(a.ExtractReferences(doc.Content), doc.References...)
		for _, ref := range refs {
			if _, ok := known[ref]; !ok {
				continue
			}
			if _, seen := graph[doc.DocumentNumber]; !seen {
				order = append(order, doc.DocumentNumber)
			}
			graph[doc.DocumentNumber] = append(graph[doc.DocumentNumber], ref)
		}
	}

	citedCounts := make(map[string]int)
	citingCounts := make(map[string]int)
	totalCitations := 0
	for citing, cited := range graph {
		citingCounts[citing] = len(cited)
		totalCitations += len(cited)
		for _, ref := range cited {
			citedCounts[ref]++
		}
	}

	return &CitationNetwork{
		TotalDocuments:         len(docs),
		DocumentsWithCitations: len(graph),
		TotalCitations:         totalCitations,
		Graph:                  graph,
		MostCited:              topCitations(citedCounts, 20),
		MostCiting:             topCitations(citingCounts, 20),
		Clusters:               citationClusters(graph, order),
	}
}

// citationClusters greedily merges documents by reference-set similarity to
// the cluster seed. A document joins at most one cluster; the merge is
// deliberately not transitive.
func citationClusters(graph map[string][]string, order []string) []CitationCluster {
	var clusters []CitationCluster
	processed := make(map[string]struct{}, len(order))

	for _, seed := range order {
		if _, done := processed[seed]; done {
			continue
		}
		processed[seed] = struct{}{}

		members := []string{seed}
		seedRefs := refSet(graph[seed])

		for _, other := range order {
			if _, done := processed[other]; done {
				continue
			}
			if jaccard(seedRefs, refSet(graph[other])) > citationClusterThreshold {
				members = append(members, other)
				processed[other] = struct{}{}
			}
		}

		if len(members) < 2 {
			continue
		}

		common := refSet(graph[members[0]])
		for _, m := range members[1:] {
			common = intersect(common, refSet(graph[m]))
		}
		commonRefs := make([]string, 0, len(common))
		for ref := range common {
			commonRefs = append(commonRefs, ref)
		}
		sort.Strings(commonRefs)

		overlap := 0
		for _, m1 := range members {
			for _, m2 := range members {
				if m1 == m2 {
					continue
				}
				overlap += len(intersect(refSet(graph[m1]), refSet(graph[m2])))
			}
		}
		pairs := len(members) * (len(members) - 1)

		clusters = append(clusters, CitationCluster{
			ID:              len(clusters),
			DocumentNumbers: members,
			CommonCitations: commonRefs,
			Similarity:      float64(overlap) / float64(max(pairs, 1)),
		})
	}

	return clusters
}

func refSet(refs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		set[r] = struct{}{}
	}
	return set
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := len(intersect(a, b))
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func topCitations(counts map[string]int, limit int) []CitationCount {
	out := make([]CitationCount, 0, len(counts))
	for number, count := range counts {
		out = append(out, CitationCount{DocumentNumber: number, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].DocumentNumber < out[j].DocumentNumber
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
