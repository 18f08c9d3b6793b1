package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/keshon/hive-resources/internal/label"
)

func TestCategoryChoices(t *testing.T) {
	r := New(newFake(), Options{Kind: "map"})

	got, err := r.CategoryChoices(context.Background(), "AR")
	if err != nil {
		t.Fatalf("CategoryChoices: %v", err)
	}
	want := []string{"pvp: arena", "sky wars: solo"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i, c := range got {
		if c.Name != want[i] || c.Value != want[i] {
			t.Errorf("choice %d = %+v, want %q", i, c, want[i])
		}
	}
}

func TestItemChoicesNormalizesCategory(t *testing.T) {
	f := newFake()
	r := New(f, Options{Kind: "map"})

	got, err := r.ItemChoices(context.Background(), "pvp: arena", "ar")
	if err != nil {
		t.Fatalf("ItemChoices: %v", err)
	}
	if len(got) != 1 || got[0].Value != "Arena Classic" {
		t.Fatalf("unexpected choices %v", got)
	}
	if len(f.itemCategories) != 1 || f.itemCategories[0] != "PvP - Arena" {
		t.Fatalf("items fetched for %v, want the raw label", f.itemCategories)
	}
}

func TestItemChoicesWithoutCategory(t *testing.T) {
	f := newFake()
	r := New(f, Options{})

	for _, partial := range []string{"", "castle", "zzz"} {
		got := r.Suggest(context.Background(), Query{Focused: FieldItem, Partial: partial})
		if len(got) != 0 {
			t.Fatalf("Suggest(%q) without gamemode = %v, want empty", partial, got)
		}
	}
	if f.categoryCalls != 0 || len(f.itemCategories) != 0 {
		t.Fatalf("catalog was queried without a gamemode")
	}
}

func TestChoicesCappedAndFiltered(t *testing.T) {
	r := New(newFake(), Options{})

	for _, partial := range []string{"", "castle", "1", "CASTLE 3"} {
		got, err := r.ItemChoices(context.Background(), "build", partial)
		if err != nil {
			t.Fatalf("ItemChoices(%q): %v", partial, err)
		}
		if len(got) > MaxChoices {
			t.Fatalf("ItemChoices(%q) returned %d choices", partial, len(got))
		}
		for _, c := range got {
			if !label.Contains(c.Name, partial) {
				t.Fatalf("choice %q does not contain %q", c.Name, partial)
			}
		}
	}

	got, _ := r.ItemChoices(context.Background(), "build", "")
	if len(got) != MaxChoices || got[0].Value != "Castle 00" || got[24].Value != "Castle 24" {
		t.Fatalf("catalog order not preserved: first=%v last=%v", got[0], got[len(got)-1])
	}
}

func TestOverlongValuesSkipped(t *testing.T) {
	r := New(newFake(), Options{})
	got, err := r.ItemChoices(context.Background(), "sky wars: solo", "")
	if err != nil {
		t.Fatalf("ItemChoices: %v", err)
	}
	if len(got) != 1 || got[0].Value != "Islands" {
		t.Fatalf("unexpected choices %v", got)
	}
}

func TestSuggestDegradesOnError(t *testing.T) {
	f := newFake()
	f.categoriesErr = errors.New("connection refused")
	r := New(f, Options{})

	for _, q := range []Query{
		{Focused: FieldCategory, Partial: "a"},
		{Focused: FieldItem, Category: "build", Partial: "a"},
	} {
		got := r.Suggest(context.Background(), q)
		if got == nil || len(got) != 0 {
			t.Fatalf("Suggest(%+v) = %v, want empty non-nil list", q, got)
		}
	}

	f.categoriesErr = nil
	f.itemsErr = errors.New("bad json")
	if got := r.Suggest(context.Background(), Query{Focused: FieldItem, Category: "build"}); len(got) != 0 {
		t.Fatalf("item failure leaked choices %v", got)
	}
}

func TestConcurrentSuggestionsDoNotMix(t *testing.T) {
	r := New(newFake(), Options{})

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got := r.Suggest(context.Background(), Query{Focused: FieldItem, Category: "pvp: arena", Partial: "pit"})
			if len(got) != 1 || got[0].Value != "Pit" {
				errs <- fmt.Errorf("arena lookup got %v", got)
			}
		}()
		go func() {
			defer wg.Done()
			got := r.Suggest(context.Background(), Query{Focused: FieldItem, Category: "build", Partial: "castle 1"})
			if len(got) != 10 {
				errs <- fmt.Errorf("build lookup got %d choices", len(got))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
