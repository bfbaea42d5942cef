package analysis

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Answer is one questionnaire answer. Single-choice answers have one value.
type Answer struct {
	Key    string
	Values []string
}

// Questionnaire is an ordered set of answers. Decoding from a JSON object
// keeps the key order of the document.
type Questionnaire struct {
	Answers []Answer
}

// NewQuestionnaire creates a questionnaire from answers.
func NewQuestionnaire(answers ...Answer) *Questionnaire {
	return &Questionnaire{Answers: answers}
}

var keyTranslations = strings.NewReplacer(
	"main concern", "préoccupation principale",
	"pain location", "localisation de la douleur",
)

// Text renders the answers as French sentences:
//
//	{"main_concern": ["stress_anxiety"], "pain_location": "back"}
//
// becomes "préoccupation principale est stress anxiety. localisation de la
// douleur est back." An empty questionnaire renders as "".
func (q *Questionnaire) Text() string {
	if q == nil || len(q.Answers) == 0 {
		return ""
	}

	parts := make([]string, len(q.Answers))
	for i, answer := range q.Answers {
		key := keyTranslations.Replace(strings.ReplaceAll(answer.Key, "_", " "))
		values := make([]string, len(answer.Values))
		for j, v := range answer.Values {
			values[j] = strings.ReplaceAll(v, "_", " ")
		}
		parts[i] = key + " est " + strings.Join(values, ", ")
	}
	return strings.Join(parts, ". ") + "."
}

// UnmarshalJSON decodes an object whose values are scalars or arrays of
// scalars, keeping the key order.
func (q *Questionnaire) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	var answers []Answer
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidQuestionnaire, err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected key %v", ErrInvalidQuestionnaire, tok)
		}

		values, err := readValues(dec)
		if err != nil {
			return fmt.Errorf("%w: answer %q: %w", ErrInvalidQuestionnaire, key, err)
		}
		answers = append(answers, Answer{Key: key, Values: values})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	q.Answers = answers
	return nil
}

// MarshalJSON encodes the answers as an object in answer order. Answers
// with exactly one value are written as scalars.
func (q *Questionnaire) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, answer := range q.Answers {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(answer.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var value []byte
		if len(answer.Values) == 1 {
			value, err = json.Marshal(answer.Values[0])
		} else {
			value, err = json.Marshal(answer.Values)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuestionnaire, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrInvalidQuestionnaire, want, tok)
	}
	return nil
}

func readValues(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); ok {
		if d != '[' {
			return nil, fmt.Errorf("nested objects are not supported")
		}
		values := []string{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			v, err := scalar(tok)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		// closing bracket
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return values, nil
	}

	v, err := scalar(tok)
	if err != nil {
		return nil, err
	}
	return []string{v}, nil
}

func scalar(tok json.Token) (string, error) {
	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value %v", tok)
	}
}
