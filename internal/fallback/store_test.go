package fallback

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/five82/batchview/internal/batch"
)

func TestDefault_ParsesEmbeddedDataset(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if s.Len() == 0 {
		t.Fatalf("Default dataset is empty")
	}
	rec, ok := s.Lookup("6774ebb37aa1a60276d43e7c")
	if !ok {
		t.Fatalf("Lookup(demo id) = not found, want record")
	}
	if rec.Name == "" || rec.TotalLectures <= 0 {
		t.Fatalf("demo record = %#v, want populated", rec)
	}

	again, _ := Default()
	if again != s {
		t.Fatalf("Default should return the same store on every call")
	}
}

func TestDefault_ToleratesUpstreamOddities(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	for _, id := range s.IDs() {
		rec, _ := s.Lookup(id)
		p := rec.Progress()
		if p < 0 || p > 100 {
			t.Fatalf("record %s Progress = %v, want within [0, 100]", id, p)
		}
		if rec.DiscountPrice > rec.Price && rec.HasDiscount() {
			t.Fatalf("record %s shows a discount for an inverted price pair", id)
		}
	}
}

func TestLookup_Missing(t *testing.T) {
	s, err := Load([]byte(`
[[batch]]
id = "A"
batch_name = "Alpha"
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, ok := s.Lookup("B"); ok {
		t.Fatalf("Lookup(B) = found, want not found")
	}
	if ids := s.IDs(); len(ids) != 1 || ids[0] != "A" {
		t.Fatalf("IDs = %v, want [A]", ids)
	}

	var nilStore *Store
	if _, ok := nilStore.Lookup("A"); ok {
		t.Fatalf("nil store Lookup should report not found")
	}
}

func TestIDs_ReturnsCopy(t *testing.T) {
	s, err := Load([]byte(`
[[batch]]
id = "b"
batch_name = "Beta"

[[batch]]
id = "a"
batch_name = "Alpha"
`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	ids := s.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("IDs = %v, want [a b]", ids)
	}
	ids[0] = "zzz"
	if s.IDs()[0] != "a" {
		t.Fatalf("IDs should return a copy")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		mention string
	}{
		{"invalid toml", `[[batch]`, "parse fallback dataset"},
		{"empty id", "[[batch]]\nid = \"  \"\nbatch_name = \"x\"\n", "_id"},
		{"duplicate id", "[[batch]]\nid = \"A\"\nbatch_name = \"x\"\n[[batch]]\nid = \"A\"\nbatch_name = \"y\"\n", "duplicate id"},
		{"bad rating", "[[batch]]\nid = \"A\"\nbatch_name = \"x\"\nrating = 9.0\n", "rating"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data))
			if err == nil {
				t.Fatalf("Load returned nil error, want error")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.mention)
			}
		})
	}
}

func TestFixedClient(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	c := NewFixedClient(s)

	rec, err := c.FetchRecord(context.Background(), "6774ebb37aa1a60276d43e7c")
	if err != nil {
		t.Fatalf("FetchRecord returned error: %v", err)
	}
	if rec.ID != "6774ebb37aa1a60276d43e7c" {
		t.Fatalf("FetchRecord.ID = %q", rec.ID)
	}

	_, err = c.FetchRecord(context.Background(), "unknown")
	if !errors.Is(err, batch.ErrStatus) {
		t.Fatalf("FetchRecord(unknown) error = %v, want ErrStatus", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.FetchRecord(ctx, "6774ebb37aa1a60276d43e7c")
	if !errors.Is(err, batch.ErrTransport) || !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchRecord(cancelled) error = %v, want transport + canceled", err)
	}
}
