package preset

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ovenstack/batchprice/internal/pricing"
)

// Kind discriminates the two preset shapes: a single product, or a
// shared batch split into variants. The column carries the same CHECK
// constraint, so a stored preset can never be read back as the wrong
// shape.
type Kind string

const (
	KindSingle  Kind = "single"
	KindVariant Kind = "variant"
)

// ErrNotFound is returned when no preset exists under the given id.
var ErrNotFound = errors.New("preset not found")

// Preset is a saved calculator setup.
type Preset struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      Kind           `json:"kind"`
	Input     pricing.Input  `json:"input"`
	Config    pricing.Config `json:"config"`
	CreatedAt string         `json:"createdAt"`
}

// CalculationRecord is one stored calculation snapshot. The result is
// kept verbatim so history renders exactly what the user saw, even if
// the engine changes later.
type CalculationRecord struct {
	ID          string         `json:"id"`
	PresetID    string         `json:"presetId,omitempty"`
	ProductName string         `json:"productName"`
	Result      pricing.Result `json:"result"`
	CreatedAt   string         `json:"createdAt"`
}

// Store persists presets and calculation snapshots in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// KindOf derives the preset kind from the input shape.
func KindOf(input pricing.Input) Kind {
	if input.HasVariants && len(input.Variants) > 0 {
		return KindVariant
	}
	return KindSingle
}

// Create stores a new preset and returns it with its generated id.
func (s *Store) Create(name string, input pricing.Input, config pricing.Config) (Preset, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return Preset{}, fmt.Errorf("marshal preset input: %w", err)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		return Preset{}, fmt.Errorf("marshal preset config: %w", err)
	}

	p := Preset{
		ID:     uuid.NewString(),
		Name:   name,
		Kind:   KindOf(input),
		Input:  input,
		Config: config,
	}

	if _, err := s.db.Exec(`
		INSERT INTO presets (id, name, kind, input_json, config_json)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, string(p.Kind), string(inputJSON), string(configJSON)); err != nil {
		return Preset{}, fmt.Errorf("insert preset: %w", err)
	}

	if err := s.db.QueryRow(`SELECT created_at FROM presets WHERE id = ?`, p.ID).Scan(&p.CreatedAt); err != nil {
		return Preset{}, fmt.Errorf("read back preset timestamp: %w", err)
	}

	return p, nil
}

// Get loads one preset by id.
func (s *Store) Get(id string) (Preset, error) {
	row := s.db.QueryRow(`
		SELECT id, name, kind, input_json, config_json, created_at
		FROM presets
		WHERE id = ?
	`, id)

	p, err := scanPreset(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, ErrNotFound
	}
	if err != nil {
		return Preset{}, fmt.Errorf("query preset: %w", err)
	}
	return p, nil
}

// List returns all presets, newest first.
func (s *Store) List() ([]Preset, error) {
	rows, err := s.db.Query(`
		SELECT id, name, kind, input_json, config_json, created_at
		FROM presets
		ORDER BY datetime(created_at) DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}

	return presets, nil
}

// Delete removes a preset. Snapshots that referenced it keep their data
// and lose only the link (ON DELETE SET NULL).
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// SaveCalculation records one calculation pass. presetID may be empty
// for ad-hoc calculations.
func (s *Store) SaveCalculation(presetID string, input pricing.Input, config pricing.Config, result pricing.Result) (string, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("marshal calculation input: %w", err)
	}
	configJSON, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("marshal calculation config: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal calculation result: %w", err)
	}

	var pid any
	if presetID != "" {
		pid = presetID
	}

	id := uuid.NewString()
	if _, err := s.db.Exec(`
		INSERT INTO calculations (id, preset_id, product_name, input_json, config_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, pid, input.ProductName, string(inputJSON), string(configJSON), string(resultJSON)); err != nil {
		return "", fmt.Errorf("insert calculation: %w", err)
	}

	return id, nil
}

// ListCalculations returns the most recent snapshots, newest first.
func (s *Store) ListCalculations(limit int) ([]CalculationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, COALESCE(preset_id, ''), product_name, result_json, created_at
		FROM calculations
		ORDER BY datetime(created_at) DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	records := make([]CalculationRecord, 0)
	for rows.Next() {
		var rec CalculationRecord
		var resultJSON string
		if err := rows.Scan(&rec.ID, &rec.PresetID, &rec.ProductName, &resultJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		if err := json.Unmarshal([]byte(resultJSON), &rec.Result); err != nil {
			return nil, fmt.Errorf("decode calculation result: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return records, nil
}

func scanPreset(scan func(dest ...any) error) (Preset, error) {
	var p Preset
	var kind, inputJSON, configJSON string
	if err := scan(&p.ID, &p.Name, &kind, &inputJSON, &configJSON, &p.CreatedAt); err != nil {
		return Preset{}, err
	}

	p.Kind = Kind(kind)
	if err := json.Unmarshal([]byte(inputJSON), &p.Input); err != nil {
		return Preset{}, fmt.Errorf("decode preset input: %w", err)
	}
	if err := json.Unmarshal([]byte(configJSON), &p.Config); err != nil {
		return Preset{}, fmt.Errorf("decode preset config: %w", err)
	}

	return p, nil
}
