package textanalysis

import (
	"reflect"
	"testing"

	"lexdoc/pkg/common"
)

func TestExtractReferences(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "no references",
			content: "văn bản không trích dẫn văn bản nào khác",
			want:    []string{},
		},
		{
			name:    "decree reference",
			content: "căn cứ Nghị định số 15/2020/ND-CP của Chính phủ",
			want:    []string{"15/2020/ND-CP"},
		},
		{
			name:    "multiple kinds deduplicated and sorted",
			content: "theo Thông tư số 30/2021/TT-BTC và Nghị định số 15/2020/ND-CP, xem thêm 15/2020/ND-CP",
			want:    []string{"15/2020/ND-CP", "30/2021/TT-BTC"},
		},
		{
			name:    "bare identifier",
			content: "văn bản 99/2019/QD-TTG vẫn còn hiệu lực",
			want:    []string{"99/2019/QD-TTG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.ExtractReferences(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractReferences() = %v, want %v", got, tt.want)
			}
		})
	}
}

func citationCorpus() []common.Document {
	base := common.Document{Category: "thương mại"}

	a := base
	a.ID = "a"
	a.DocumentNumber = "01/2020/ND-CP"
	a.Content = "sửa đổi Nghị định số 03/2018/ND-CP"

	b := base
	b.ID = "b"
	b.DocumentNumber = "02/2020/ND-CP"
	b.Content = "thay thế một phần Nghị định số 03/2018/ND-CP"

	c := base
	c.ID = "c"
	c.DocumentNumber = "03/2018/ND-CP"
	c.Content = "quy định gốc không trích dẫn"

	return []common.Document{a, b, c}
}

func TestBuildCitationNetwork(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	network := analyzer.BuildCitationNetwork(citationCorpus())

	if network.TotalDocuments != 3 {
		t.Errorf("TotalDocuments = %d, want 3", network.TotalDocuments)
	}
	if network.DocumentsWithCitations != 2 {
		t.Errorf("DocumentsWithCitations = %d, want 2", network.DocumentsWithCitations)
	}
	if network.TotalCitations != 2 {
		t.Errorf("TotalCitations = %d, want 2", network.TotalCitations)
	}

	wantGraph := map[string][]string{
		"01/2020/ND-CP": {"03/2018/ND-CP"},
		"02/2020/ND-CP": {"03/2018/ND-CP"},
	}
	if !reflect.DeepEqual(network.Graph, wantGraph) {
		t.Errorf("Graph = %v, want %v", network.Graph, wantGraph)
	}

	if len(network.MostCited) == 0 || network.MostCited[0].DocumentNumber != "03/2018/ND-CP" || network.MostCited[0].Count != 2 {
		t.Errorf("MostCited = %v", network.MostCited)
	}
}

func TestBuildCitationNetworkIgnoresUnknownTargets(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	docs := []common.Document{
		{ID: "a", DocumentNumber: "01/2020/ND-CP", Content: "theo Nghị định số 77/1999/ND-CP"},
	}

	network := analyzer.BuildCitationNetwork(docs)
	if network.TotalCitations != 0 {
		t.Errorf("citation to unknown document counted: %v", network.Graph)
	}
}

func TestCitationClustersFirstMatchWins(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	network := analyzer.BuildCitationNetwork(citationCorpus())

	if len(network.Clusters) != 1 {
		t.Fatalf("clusters = %d, want 1", len(network.Clusters))
	}
	cluster := network.Clusters[0]

	wantMembers := []string{"01/2020/ND-CP", "02/2020/ND-CP"}
	if !reflect.DeepEqual(cluster.DocumentNumbers, wantMembers) {
		t.Errorf("cluster members = %v, want %v", cluster.DocumentNumbers, wantMembers)
	}
	if !reflect.DeepEqual(cluster.CommonCitations, []string{"03/2018/ND-CP"}) {
		t.Errorf("common citations = %v", cluster.CommonCitations)
	}
	if cluster.Similarity != 1 {
		t.Errorf("similarity = %f, want 1", cluster.Similarity)
	}
}
