// Package quizdoc decodes quiz and answer documents written by authors. YAML is accepted
// everywhere JSON is; both go through the JSON decoders of the domain types so "_id"
// aliases are normalised the same way as documents loaded from a database.
package quizdoc

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"quiz-outcome-service/internal/domain"
)

//go:embed sample.yaml
var sampleYAML []byte

// Decode parses a quiz document and validates it.
func Decode(data []byte) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := decode(data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	if err := quiz.Validate(); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

// DecodeAnswers parses a list of answer submissions.
func DecodeAnswers(data []byte) ([]domain.AnswerSubmission, error) {
	var answers []domain.AnswerSubmission
	if err := decode(data, &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return answers, nil
}

// LoadFile reads and decodes a quiz document from disk.
func LoadFile(path string) (domain.Quiz, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("read quiz file: %w", err)
	}
	return Decode(data)
}

// LoadAnswersFile reads and decodes answer submissions from disk.
func LoadAnswersFile(path string) ([]domain.AnswerSubmission, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	return DecodeAnswers(data)
}

// Sample returns the bundled demo quiz.
func Sample() domain.Quiz {
	quiz, err := Decode(sampleYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled sample quiz: %v", err))
	}
	return quiz
}

func decode(data []byte, out any) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
