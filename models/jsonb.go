package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores a list of strings as a JSONB column.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	data, err := jsonbBytes(value)
	if err != nil {
		return fmt.Errorf("failed to unmarshal StringList: %w", err)
	}
	return json.Unmarshal(data, l)
}

// Medication is one line of a prescription.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Medications stores prescription lines as a JSONB column.
type Medications []Medication

// Value implements the driver.Valuer interface
func (m Medications) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *Medications) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	data, err := jsonbBytes(value)
	if err != nil {
		return fmt.Errorf("failed to unmarshal Medications: %w", err)
	}
	return json.Unmarshal(data, m)
}

func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", value)
	}
}
