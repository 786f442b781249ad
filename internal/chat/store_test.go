package chat

import "testing"

func TestStoreStats(t *testing.T) {
	store := NewStore()
	store.Add("admission info", LanguageEnglish, "admission")
	store.Add("fee info", LanguageEnglish, "fees")
	store.Add("प्रवेश जानकारी", LanguageHindi, "admission")

	stats := store.Stats()
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if stats.ByLanguage[LanguageEnglish] != 2 || stats.ByLanguage[LanguageHindi] != 1 {
		t.Fatalf("unexpected per-language counts: %v", stats.ByLanguage)
	}
	if stats.ByCategory["admission"] != 2 || stats.ByCategory["fees"] != 1 {
		t.Fatalf("unexpected per-category counts: %v", stats.ByCategory)
	}
}

func TestSeedStoreCoversAllLanguages(t *testing.T) {
	stats := SeedStore().Stats()
	if stats.Total == 0 {
		t.Fatal("seed store is empty")
	}
	for _, lang := range []Language{LanguageEnglish, LanguageHindi, LanguageRajasthani} {
		if stats.ByLanguage[lang] == 0 {
			t.Fatalf("seed store has no %s chunks", lang)
		}
	}
	if stats.ByCategory["library-rules"] == 0 {
		t.Fatal("seed store has no library-rules chunks")
	}
}

func TestIsGreeting(t *testing.T) {
	greetings := []string{
		"hi", "Hello!", "hey there", "Good morning", "namaste", "नमस्ते",
		"खम्मा घणी", "Ram Ram sa", "hello can you help me?",
	}
	for _, msg := range greetings {
		if !IsGreeting(msg) {
			t.Fatalf("%q should be a greeting", msg)
		}
	}
	notGreetings := []string{
		"", "what are the library timings", "high fees", "history of college",
		"hind", "फीस कब जमा करनी है",
	}
	for _, msg := range notGreetings {
		if IsGreeting(msg) {
			t.Fatalf("%q should not be a greeting", msg)
		}
	}
}
