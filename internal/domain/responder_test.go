package domain

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	catalog := testCatalog()
	david := byID(catalog, "david")
	venus := byID(catalog, "venus")

	tests := []struct {
		name     string
		question string
		statue   *Statue
		expected Topic
	}{
		{"creation time", "When were you created?", david, TopicCreationTime},
		{"creation time german", "Wann wurdest du geschaffen?", david, TopicCreationTime},
		{"attribution", "Who created you?", david, TopicAttribution},
		{"attribution via artist", "Who is your artist?", david, TopicAttribution},
		{"attribution german", "Wer hat dich erschaffen?", david, TopicAttribution},
		{"discovery", "Where were you found?", david, TopicDiscovery},
		{"discovery german", "Wo wurdest du gefunden?", david, TopicDiscovery},
		{"where now", "Where can I see you now?", david, TopicWhereNow},
		{"damage", "Tell me about your damage", venus, TopicDamage},
		{"damage german", "Erzähl mir von deinen Schäden", venus, TopicDamage},
		{"damage ignored for undamaged statue", "Tell me about your damage", david, TopicFallback},
		{"material", "What is it made of?", david, TopicMaterial},
		{"meaning", "What do you symbolize?", david, TopicMeaning},
		{"size", "How tall are you?", david, TopicSize},
		{"period", "Which period are you from?", david, TopicPeriod},
		{"technique", "What technique was used?", david, TopicTechnique},
		{"thanks", "Thank you!", david, TopicThanks},
		{"greeting", "Hello", david, TopicGreeting},
		{"greeting hi prefix", "hi", david, TopicGreeting},
		{"empty", "", david, TopicFallback},
		{"gibberish", "xyz", david, TopicFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.question, tt.statue); got != tt.expected {
				t.Errorf("Classify(%q) = %s, want %s", tt.question, got, tt.expected)
			}
		})
	}
}

func TestRespond_Attribution(t *testing.T) {
	david := byID(testCatalog(), "david")

	got := Respond("Who created you?", david)
	if !strings.Contains(got, "Michelangelo") {
		t.Errorf("Respond() = %q, want it to name the artist", got)
	}
}

func TestRespond_Damage(t *testing.T) {
	venus := byID(testCatalog(), "venus")

	got := Respond("What is missing?", venus)
	if !strings.Contains(got, "beide arme") {
		t.Errorf("Respond() = %q, want lowercased damaged part", got)
	}
	if !strings.Contains(got, venus.Damages[0].Description) {
		t.Errorf("Respond() = %q, want first damage description", got)
	}
}

func TestRespond_SizeSpecialCase(t *testing.T) {
	catalog := testCatalog()

	if got := Respond("How tall are you?", byID(catalog, "david")); !strings.Contains(got, "5,17") {
		t.Errorf("Respond(david) = %q, want literal height", got)
	}
	if got := Respond("How tall are you?", byID(catalog, "thinker")); !strings.Contains(got, "Lebensgröße") {
		t.Errorf("Respond(thinker) = %q, want generic life-size answer", got)
	}
}

func TestRespond_Fallback(t *testing.T) {
	david := byID(testCatalog(), "david")

	got := Respond("", david)
	if !strings.Contains(got, "Michelangelos David ist ein Meisterwerk der Renaissance.") {
		t.Errorf("Respond(\"\") = %q, want first sentence of description", got)
	}
	if strings.Contains(got, "Mehr Text") {
		t.Errorf("Respond(\"\") = %q, should stop at the first period", got)
	}
}

func TestRespond_UsesEpochTitle(t *testing.T) {
	s := &Statue{
		ID:          "x",
		Name:        "X",
		Period:      "hellenism",
		Year:        "200 v. Chr.",
		Kunstepoche: &Narrative{Title: "Hellenismus", Description: "..."},
	}

	if got := Respond("Which era?", s); !strings.Contains(got, "Hellenismus") {
		t.Errorf("Respond() = %q, want epoch title", got)
	}
}

func TestRespond_Total(t *testing.T) {
	catalog := testCatalog()
	inputs := []string{"", " ", "???", "ARM", "hi", "WHERE NOW", "\x00\xff", strings.Repeat("a", 10000)}

	for _, s := range catalog {
		for _, in := range inputs {
			if got := Respond(in, s); got == "" {
				t.Errorf("Respond(%q, %s) returned empty string", in, s.ID)
			}
		}
	}

	if got := Respond("hello", nil); got == "" {
		t.Error("Respond() with nil statue returned empty string")
	}
}

func TestRespond_Deterministic(t *testing.T) {
	venus := byID(testCatalog(), "venus")
	first := Respond("Where were you found?", venus)
	for i := 0; i < 10; i++ {
		if got := Respond("Where were you found?", venus); got != first {
			t.Fatalf("Respond() not deterministic: %q vs %q", got, first)
		}
	}
}

func TestGreeting(t *testing.T) {
	david := byID(testCatalog(), "david")
	got := Greeting(david)
	if !strings.Contains(got, "David") || !strings.Contains(got, "Michelangelo") {
		t.Errorf("Greeting() = %q", got)
	}
	if len(QuickQuestions()) != 4 {
		t.Errorf("QuickQuestions() returned %d entries, want 4", len(QuickQuestions()))
	}
}
