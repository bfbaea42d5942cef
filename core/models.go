package core

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Practice is a catalog entry that can be recommended to a user.
// Practices are keyed by IDFromContent(Name).
type Practice struct {
	Id          ID          `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category,omitempty"`
	Description Description `json:"description"`
	Indications Indications `json:"indications"`
	Keywords    Keywords    `json:"keywords"`
	Vector      []float32   `json:"vector,omitempty"` // Embedding of Description.Full
	InsertedAt  time.Time   `json:"inserted_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Description holds the human readable texts of a practice.
type Description struct {
	Short string `json:"short,omitempty"`
	Full  string `json:"full"`
}

// Indications lists the conditions a practice addresses.
type Indications struct {
	Primary    []PrimaryIndication `json:"primary,omitempty"`
	Secondary  []string            `json:"secondary,omitempty"`
	Preventive []string            `json:"preventive,omitempty"`
}

// PrimaryIndication is a condition with its effectiveness metadata.
type PrimaryIndication struct {
	Condition     string `json:"condition"`
	Effectiveness string `json:"effectiveness,omitempty"`
	Evidence      string `json:"evidence,omitempty"`
}

// Keywords is the bag of terms used for fuzzy symptom matching.
type Keywords struct {
	Symptoms []string `json:"symptoms,omitempty"`
	Benefits []string `json:"benefits,omitempty"`
}

// Conditions returns the union of primary and secondary conditions.
func (i Indications) Conditions() map[string]struct{} {
	set := make(map[string]struct{}, len(i.Primary)+len(i.Secondary))
	for _, p := range i.Primary {
		set[p.Condition] = struct{}{}
	}
	for _, s := range i.Secondary {
		set[s] = struct{}{}
	}
	return set
}

// EmbeddingText returns the text the practice vector is computed from.
func (p *Practice) EmbeddingText() string {
	return p.Description.Full
}

// SetVector replaces the practice embedding.
func (p *Practice) SetVector(v []float32) {
	p.Vector = v
}

// Embedded reports whether the practice has a vector.
func (p *Practice) Embedded() bool {
	return len(p.Vector) > 0
}

// SymptomMatch is a lexicon hit found in user input.
type SymptomMatch struct {
	Category string `json:"category"`
	Keyword  string `json:"keyword"`
}

// Analysis is the structured form of a user's free text or questionnaire.
type Analysis struct {
	Text      string         `json:"text"`
	Keywords  []string       `json:"keywords"`
	Symptoms  []SymptomMatch `json:"symptoms"`
	Urgency   float64        `json:"urgency_level"`
	Embedding []float32      `json:"-"` // nil when the input was empty
}

// Categories returns the distinct symptom categories in first-seen order.
func (a *Analysis) Categories() []string {
	seen := make(map[string]struct{}, len(a.Symptoms))
	categories := make([]string, 0, len(a.Symptoms))
	for _, s := range a.Symptoms {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		categories = append(categories, s.Category)
	}
	return categories
}

// SymptomKeywords returns the matched keywords in detection order.
func (a *Analysis) SymptomKeywords() []string {
	keywords := make([]string, len(a.Symptoms))
	for i, s := range a.Symptoms {
		keywords[i] = s.Keyword
	}
	return keywords
}

// Feedback is a user's rating of a recommended practice.
type Feedback struct {
	Id           ID        `json:"id"`
	SessionID    string    `json:"session_id,omitempty"`
	PracticeName string    `json:"practice_name"`
	Rating       int       `json:"rating"` // 1 to 5
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedbackStat summarizes the feedback of one practice.
type FeedbackStat struct {
	Count     int     `json:"count"`
	AvgRating float64 `json:"avg_rating"`
}

// ScoredPractice is one entry of a recommendation ranking.
type ScoredPractice struct {
	PracticeId      ID       `json:"practice_id"`
	PracticeName    string   `json:"practice_name"`
	Score           float64  `json:"relevance_score"`
	MatchedSymptoms []string `json:"matched_symptoms"`
	FeedbackWeight  float64  `json:"feedback_weight"`
}

// Document is a chunk of the knowledge base used as advice context.
type Document struct {
	Id         ID                `json:"id"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Vector     []float32         `json:"vector,omitempty"`
	InsertedAt time.Time         `json:"inserted_at"`
}

// EmbeddingText returns the text the document vector is computed from.
func (d *Document) EmbeddingText() string {
	return d.Content
}

// SetVector replaces the document embedding.
func (d *Document) SetVector(v []float32) {
	d.Vector = v
}

// Embedded reports whether the document has a vector.
func (d *Document) Embedded() bool {
	return len(d.Vector) > 0
}

// Key identifies a document for deduplication. Documents without an ID
// are identified by their content.
func (d *Document) Key() string {
	if d.Id != 0 {
		return "id:" + strconv.FormatUint(uint64(d.Id), 10)
	}
	return "content:" + d.Content
}

// SearchResult represents a retrieved document and its relevance score.
type SearchResult struct {
	Document *Document `json:"document"`
	Score    float64   `json:"score"`
}

// Checkpoint records the last ingestion of a knowledge source so unchanged
// sources can be skipped.
type Checkpoint struct {
	Source      string    `json:"source"`
	ContentHash ID        `json:"content_hash"`
	Chunks      int       `json:"chunks"`
	UpdatedAt   time.Time `json:"updated_at"`
}
