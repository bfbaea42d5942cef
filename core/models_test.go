package core

import (
	"slices"
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "practice name", content: "Sophrologie"},
		{name: "empty string", content: ""},
		{name: "accented content", content: "Réflexologie plantaire et détente profonde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)
			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	if IDFromContent("Yoga") == IDFromContent("yoga") {
		t.Errorf("IDFromContent() should be case sensitive")
	}
}

func TestIndications_Conditions(t *testing.T) {
	ind := Indications{
		Primary: []PrimaryIndication{
			{Condition: "stress", Effectiveness: "élevée"},
			{Condition: "sommeil"},
		},
		Secondary:  []string{"fatigue", "stress"},
		Preventive: []string{"burnout"},
	}

	got := ind.Conditions()
	if len(got) != 3 {
		t.Fatalf("Conditions() returned %d entries, want 3", len(got))
	}
	for _, want := range []string{"stress", "sommeil", "fatigue"} {
		if _, ok := got[want]; !ok {
			t.Errorf("Conditions() missing %q", want)
		}
	}
	if _, ok := got["burnout"]; ok {
		t.Errorf("Conditions() should not include preventive indications")
	}
}

func TestAnalysis_Categories(t *testing.T) {
	a := &Analysis{
		Symptoms: []SymptomMatch{
			{Category: "douleur", Keyword: "mal"},
			{Category: "stress", Keyword: "stress"},
			{Category: "douleur", Keyword: "mal de dos"},
		},
	}

	if got, want := a.Categories(), []string{"douleur", "stress"}; !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
	if got, want := a.SymptomKeywords(), []string{"mal", "stress", "mal de dos"}; !slices.Equal(got, want) {
		t.Errorf("SymptomKeywords() = %v, want %v", got, want)
	}
}

func TestAnalysis_CategoriesEmpty(t *testing.T) {
	a := &Analysis{}
	if got := a.Categories(); len(got) != 0 {
		t.Errorf("Categories() = %v, want empty", got)
	}
}

func TestDocument_Key(t *testing.T) {
	withID := &Document{Id: 42, Content: "a"}
	sameContent := &Document{Content: "a"}
	otherContent := &Document{Content: "b"}

	if withID.Key() == sameContent.Key() {
		t.Errorf("documents with and without ID should not share a key")
	}
	if sameContent.Key() == otherContent.Key() {
		t.Errorf("documents with different content should not share a key")
	}
	if sameContent.Key() != (&Document{Content: "a"}).Key() {
		t.Errorf("documents with the same content should share a key")
	}
}

func TestEmbeddable(t *testing.T) {
	p := &Practice{Description: Description{Full: "description complète"}}
	p.SetVector([]float32{1, 2})
	if p.EmbeddingText() != "description complète" {
		t.Errorf("Practice.EmbeddingText() = %q", p.EmbeddingText())
	}
	if len(p.Vector) != 2 {
		t.Errorf("Practice.SetVector() did not set the vector")
	}

	d := &Document{Content: "contenu"}
	d.SetVector([]float32{3})
	if d.EmbeddingText() != "contenu" || len(d.Vector) != 1 {
		t.Errorf("Document embedding accessors misbehaved: %+v", d)
	}
}
