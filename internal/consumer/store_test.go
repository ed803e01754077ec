package consumer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFile_RoundTrip(t *testing.T) {
	t.Parallel()

	save := NewSaveFile(filepath.Join(t.TempDir(), "nested", "save.json"))
	in := SaveData{Coins: 42, Inventory: map[string]int{"gift_tea": 2}, Affection: 77}
	if err := save.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := save.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Coins != 42 || out.Affection != 77 || out.Inventory["gift_tea"] != 2 {
		t.Fatalf("Load=%+v, want %+v", out, in)
	}
}

func TestSaveFile_MissingIsDefault(t *testing.T) {
	t.Parallel()

	save := NewSaveFile(filepath.Join(t.TempDir(), "save.json"))
	data, err := save.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.Coins != DefaultCoins || data.Affection != 0 || len(data.Inventory) != 0 {
		t.Fatalf("Load=%+v, want fresh defaults", data)
	}
}

func TestSaveFile_ClampsAffection(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte(`{"coins":5,"affection":300}`), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := NewSaveFile(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.Affection != 100 {
		t.Fatalf("Affection=%d, want 100", data.Affection)
	}
}
