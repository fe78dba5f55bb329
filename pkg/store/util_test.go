package store

import (
	"errors"
	"reflect"
	"testing"
)

func TestChunkRange(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		chunkSize int
		want      [][2]int
	}{
		{name: "empty", total: 0, chunkSize: 10, want: nil},
		{name: "single window", total: 5, chunkSize: 10, want: [][2]int{{0, 5}}},
		{name: "exact windows", total: 20, chunkSize: 10, want: [][2]int{{0, 10}, {10, 20}}},
		{name: "trailing partial", total: 25, chunkSize: 10, want: [][2]int{{0, 10}, {10, 20}, {20, 25}}},
		{name: "zero chunk size covers all", total: 7, chunkSize: 0, want: [][2]int{{0, 7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			err := ChunkRange(tt.total, tt.chunkSize, func(start, end int) error {
				got = append(got, [2]int{start, end})
				return nil
			})
			if err != nil {
				t.Fatalf("ChunkRange() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("windows = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChunkRangePropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	err := ChunkRange(10, 3, func(start, end int) error {
		if start > 0 {
			return wantErr
		}
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}

func TestDedupeStrings(t *testing.T) {
	got := DedupeStrings([]string{"a", "", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeStrings() = %v, want %v", got, want)
	}
	if DedupeStrings(nil) != nil {
		t.Error("DedupeStrings(nil) should be nil")
	}
}
