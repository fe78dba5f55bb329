package textanalysis

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"lexdoc/pkg/common"
)

func clusterCorpus() []common.Document {
	return []common.Document{
		testDoc("d1", "Hợp đồng thương mại", "hợp đồng thương mại quốc tế xuất khẩu hàng hóa"),
		testDoc("d2", "Thương mại điện tử", "thương mại điện tử hợp đồng mua bán hàng hóa"),
		testDoc("d3", "Xử phạt hành chính", "quy định xử phạt hành chính lĩnh vực giao thông"),
		testDoc("d4", "Vi phạm giao thông", "xử phạt hành chính giao thông đường bộ"),
	}
}

func TestClusterDocumentsCompleteness(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	docs := clusterCorpus()

	report, err := analyzer.ClusterDocuments(docs, 2, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("ClusterDocuments() error = %v", err)
	}

	if report.TotalDocuments != len(docs) {
		t.Errorf("TotalDocuments = %d, want %d", report.TotalDocuments, len(docs))
	}
	if report.NumClusters != 2 {
		t.Errorf("NumClusters = %d, want 2", report.NumClusters)
	}

	// Every document lands in exactly one cluster.
	seen := make(map[string]int)
	for _, cluster := range report.Clusters {
		for _, id := range cluster.DocumentIDs {
			seen[id]++
		}
	}
	for _, doc := range docs {
		if seen[doc.ID] != 1 {
			t.Errorf("document %s appears in %d clusters", doc.ID, seen[doc.ID])
		}
		if _, ok := report.Assignments[doc.ID]; !ok {
			t.Errorf("document %s missing from assignments", doc.ID)
		}
	}
}

func TestClusterDocumentsDeterministic(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	docs := clusterCorpus()

	first, err := analyzer.ClusterDocuments(docs, 2, rand.New(rand.NewPCG(42, 42)))
	if err != nil {
		t.Fatalf("ClusterDocuments() error = %v", err)
	}
	second, err := analyzer.ClusterDocuments(docs, 2, rand.New(rand.NewPCG(42, 42)))
	if err != nil {
		t.Fatalf("ClusterDocuments() error = %v", err)
	}

	if !reflect.DeepEqual(first.Assignments, second.Assignments) {
		t.Errorf("seeded runs differ: %v vs %v", first.Assignments, second.Assignments)
	}
}

func TestClusterDocumentsFewerThanK(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	docs := clusterCorpus()[:2]

	report, err := analyzer.ClusterDocuments(docs, 5, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatalf("ClusterDocuments() error = %v", err)
	}

	if len(report.Clusters) != 2 {
		t.Fatalf("clusters = %d, want one per document", len(report.Clusters))
	}
	for _, cluster := range report.Clusters {
		if len(cluster.DocumentIDs) != 1 {
			t.Errorf("cluster %d holds %d documents, want 1", cluster.ID, len(cluster.DocumentIDs))
		}
		if cluster.Quality != 0 {
			t.Errorf("singleton cluster quality = %f, want 0", cluster.Quality)
		}
	}
}

func TestClusterDocumentsInvalidK(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	if _, err := analyzer.ClusterDocuments(clusterCorpus(), 0, nil); err == nil {
		t.Error("k=0 expected error, got nil")
	}
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical vectors", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 0},
		{name: "orthogonal vectors", a: []float64{1, 0}, b: []float64{0, 1}, want: 1},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 2}, want: 1},
		{name: "both zero", a: []float64{0, 0}, b: []float64{0, 0}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineDistance(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineDistance(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClusterQuality(t *testing.T) {
	if q := clusterQuality([][]float64{{1, 0}}); q != 0 {
		t.Errorf("singleton quality = %f, want 0", q)
	}
	if q := clusterQuality([][]float64{{1, 0}, {1, 0}}); q < 0.999 {
		t.Errorf("identical-member quality = %f, want ~1", q)
	}
}
