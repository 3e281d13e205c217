package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/valter-silva-au/taskboard/pkg/models"
	"gopkg.in/yaml.v3"
)

// boardCodec converts between a board and its on-disk encoding.
type boardCodec interface {
	encode(board *models.Board) ([]byte, error)
	// decodeDocument parses data into a generic JSON document (maps,
	// slices, strings, float64) suitable for schema validation.
	decodeDocument(data []byte) (interface{}, error)
}

// codecFor picks the codec from the file extension. Anything that is not
// YAML is treated as JSON.
func codecFor(path string) boardCodec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) encode(board *models.Board) ([]byte, error) {
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling board JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func (jsonCodec) decodeDocument(data []byte) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing board JSON: %w", err)
	}
	return doc, nil
}

type yamlCodec struct{}

func (yamlCodec) encode(board *models.Board) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(board); err != nil {
		return nil, fmt.Errorf("marshalling board YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshalling board YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func (yamlCodec) decodeDocument(data []byte) (interface{}, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing board YAML: %w", err)
	}
	// Round-trip through JSON so YAML ints and maps take their JSON shapes.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting board YAML: %w", err)
	}
	return jsonCodec{}.decodeDocument(asJSON)
}

// legacyTaskKeys maps the task keys of the first file format onto the
// current ones.
var legacyTaskKeys = map[string]string{
	"task": "label",
	"time": "effort",
}

// upgradeLegacyTasks renames legacy task keys in place. A current key that
// is already present wins over its legacy counterpart.
func upgradeLegacyTasks(doc interface{}) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return
	}
	columns, _ := root["columns"].([]interface{})
	for _, column := range columns {
		tasks, _ := column.([]interface{})
		for _, task := range tasks {
			fields, ok := task.(map[string]interface{})
			if !ok {
				continue
			}
			for legacy, current := range legacyTaskKeys {
				value, ok := fields[legacy]
				if !ok {
					continue
				}
				if _, exists := fields[current]; !exists {
					fields[current] = value
				}
				delete(fields, legacy)
			}
		}
	}
}

// documentToBoard maps a validated generic document onto a Board.
func documentToBoard(doc interface{}) (*models.Board, error) {
	upgradeLegacyTasks(doc)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encoding board document: %w", err)
	}
	var board models.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("decoding board: %w", err)
	}
	for i := range board.Columns {
		if board.Columns[i] == nil {
			board.Columns[i] = []models.Task{}
		}
	}
	return &board, nil
}
