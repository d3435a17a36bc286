package cards

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/worldmind-ai/worldmind/internal/model"
)

// ReadFile loads cards from a JSONL file, one card per line
func ReadFile(path string) ([]model.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cards %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var out []model.Card
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var card model.Card
		if err := json.Unmarshal(text, &card); err != nil {
			return nil, fmt.Errorf("parse card at line %d: %w", line, err)
		}
		out = append(out, card)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cards %s: %w", path, err)
	}
	return out, nil
}

// WriteFile writes cards as JSONL, one card per line
func WriteFile(path string, cardList []model.Card) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cards %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, card := range cardList {
		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("encode card %s: %w", card.ID, err)
		}
	}
	return w.Flush()
}
