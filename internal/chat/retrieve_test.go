package chat

import "testing"

func buildTestStore() *Store {
	store := NewStore()
	store.Add("Library opens at 8 AM and closes at 10 PM on weekdays.", LanguageEnglish, "library-rules")
	store.Add("Admission forms are available online from June.", LanguageEnglish, "admission")
	store.Add("The hostel mess serves dinner from 7 PM.", LanguageEnglish, "hostel")
	store.Add("Library membership requires a valid student ID card.", LanguageEnglish, "library-rules")
	store.Add("पुस्तकालय सुबह 8 बजे खुलता है।", LanguageHindi, "library-rules")
	return store
}

func TestSearchRanksByOverlap(t *testing.T) {
	r := NewRetriever(buildTestStore())
	got := r.Search("library opens at what time", LanguageEnglish)
	if len(got) == 0 {
		t.Fatal("expected matches")
	}
	if got[0].Category != "library-rules" {
		t.Fatalf("top chunk category = %s, want library-rules", got[0].Category)
	}
}

func TestSearchExcludesZeroOverlap(t *testing.T) {
	r := NewRetriever(buildTestStore())
	got := r.Search("zzzz qqqq", LanguageEnglish)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestSearchLimitsToThree(t *testing.T) {
	store := NewStore()
	for i := 0; i < 5; i++ {
		store.Add("campus news update for students", LanguageEnglish, "facilities")
	}
	r := NewRetriever(store)
	got := r.Search("campus news", LanguageEnglish)
	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3", len(got))
	}
}

func TestSearchFallsBackToEnglishChunks(t *testing.T) {
	store := NewStore()
	store.Add("Scholarship applications close in March.", LanguageEnglish, "scholarship")
	r := NewRetriever(store)
	got := r.Search("scholarship applications", LanguageRajasthani)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1 english fallback", len(got))
	}
	if got[0].Language != LanguageEnglish {
		t.Fatalf("fallback chunk language = %s", got[0].Language)
	}
}

func TestSearchFiltersByLanguage(t *testing.T) {
	r := NewRetriever(buildTestStore())
	got := r.Search("पुस्तकालय", LanguageHindi)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
	if got[0].Language != LanguageHindi {
		t.Fatalf("chunk language = %s, want hi", got[0].Language)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	r := NewRetriever(buildTestStore())
	if got := r.Search("   ", LanguageEnglish); len(got) != 0 {
		t.Fatalf("expected no matches for blank query, got %d", len(got))
	}
}
