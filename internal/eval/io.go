package eval

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/worldmind-ai/worldmind/internal/model"
)

// ReadResults loads a results JSONL file, one result per line
func ReadResults(path string) ([]model.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	var results []model.Result
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var res model.Result
		if err := json.Unmarshal(scanner.Bytes(), &res); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return results, nil
}

// WriteResults writes results as JSONL
func WriteResults(path string, results []model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("write result %s: %w", res.ID, err)
		}
	}
	return nil
}
