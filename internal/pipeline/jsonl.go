package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/veripack/internal/model"
)

// ReadQuestions reads questions.jsonl: one {"qid", "question"} per line
func ReadQuestions(path string) ([]model.Question, error) {
	var questions []model.Question
	err := readLines(path, func(lineNo int, data []byte) error {
		var q model.Question
		if err := json.Unmarshal(data, &q); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		questions = append(questions, q)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read questions %s: %w", path, err)
	}
	return questions, nil
}

// ReadClaims reads claims.jsonl ({"qid", "claims": [...]}) into a map
// keyed by question id
func ReadClaims(path string) (map[string][]string, error) {
	claims := make(map[string][]string)
	err := readLines(path, func(lineNo int, data []byte) error {
		var cs model.ClaimSet
		if err := json.Unmarshal(data, &cs); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		claims[cs.QID] = cs.Claims
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read claims %s: %w", path, err)
	}
	return claims, nil
}

// WritePacks writes one JSON object per line to path
func WritePacks(path string, packs []model.Pack) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, pack := range packs {
		if err := enc.Encode(pack); err != nil {
			return fmt.Errorf("encode pack %s: %w", pack.QID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ReadPacks reads packs.jsonl back, for evaluation
func ReadPacks(path string) ([]model.Pack, error) {
	var packs []model.Pack
	err := readLines(path, func(lineNo int, data []byte) error {
		var p model.Pack
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		packs = append(packs, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read packs %s: %w", path, err)
	}
	return packs, nil
}

func readLines(path string, fn func(lineNo int, data []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn(lineNo, []byte(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
