package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// Read a JSON file and unmarshal it into the given value.

func ReadJSONFile(filename string, v any) error {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("Failed to read %s\n%w", filename, err)
	}
	if err := json.Unmarshal(bytes, v); err != nil {
		return fmt.Errorf("Failed to parse JSON in %s\n%w", filename, err)
	}
	return nil
}

// Marshal the value and write it to the file, replacing any previous content.

func WriteJSONFile(filename string, v any) error {
	bytes, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		return fmt.Errorf("Failed to write %s\n%w", filename, err)
	}
	return nil
}
