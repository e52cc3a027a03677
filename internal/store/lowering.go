package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/powcanon/internal/ir"
	"github.com/roach88/powcanon/internal/power"
)

// ErrNotFound is returned when a lowering ID is not in the store.
var ErrNotFound = errors.New("lowering not found")

// Lowering is one recorded lowered power atom.
type Lowering struct {
	ID               string      `json:"id"`
	Atom             string      `json:"atom"`
	OriginalExponent string      `json:"original_exponent"`
	Exponent         string      `json:"exponent"`
	Regime           string      `json:"regime"`
	MaxDenominator   int64       `json:"max_denominator"`
	ConstraintCount  int         `json:"constraint_count"`
	Program          ir.IRObject `json:"program"`
	IRVersion        string      `json:"ir_version"`
	ToolVersion      string      `json:"tool_version"`
	Seq              int64       `json:"seq"`
}

// NewLowering builds a record for a lowered program. The ID is the
// program's content hash.
func NewLowering(prog *ir.Program, desc power.Descriptor, policy power.Policy) (Lowering, error) {
	id, err := ir.ProgramID(prog)
	if err != nil {
		return Lowering{}, fmt.Errorf("new lowering: %w", err)
	}
	return Lowering{
		ID:               id,
		Atom:             prog.Atom,
		OriginalExponent: desc.Original().String(),
		Exponent:         desc.Exponent().String(),
		Regime:           desc.Regime().String(),
		MaxDenominator:   policy.MaxDenominator,
		ConstraintCount:  len(prog.Constraints),
		Program:          prog.ToIR(),
		IRVersion:        ir.IRVersion,
		ToolVersion:      ir.ToolVersion,
	}, nil
}

// WriteLowering inserts a lowering record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - a program already
// recorded keeps its original seq.
//
// The program is stored as RFC 8785 canonical JSON.
func (s *Store) WriteLowering(ctx context.Context, rec Lowering) error {
	programJSON, err := ir.MarshalCanonical(rec.Program)
	if err != nil {
		return fmt.Errorf("write lowering: marshal program: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lowerings
		(id, atom, original_exponent, exponent, regime, max_denominator, constraint_count, program, ir_version, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Atom,
		rec.OriginalExponent,
		rec.Exponent,
		rec.Regime,
		rec.MaxDenominator,
		rec.ConstraintCount,
		string(programJSON),
		rec.IRVersion,
		rec.ToolVersion,
	)
	if err != nil {
		return fmt.Errorf("write lowering: %w", err)
	}

	return nil
}

const selectLowering = `
	SELECT seq, id, atom, original_exponent, exponent, regime, max_denominator,
	       constraint_count, program, ir_version, tool_version
	FROM lowerings`

// ReadLowering returns the lowering with the given ID, or ErrNotFound.
func (s *Store) ReadLowering(ctx context.Context, id string) (Lowering, error) {
	row := s.db.QueryRowContext(ctx, selectLowering+` WHERE id = ?`, id)
	rec, err := scanLowering(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Lowering{}, fmt.Errorf("read lowering %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Lowering{}, fmt.Errorf("read lowering %s: %w", id, err)
	}
	return rec, nil
}

// ListLowerings returns every lowering in insertion order.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListLowerings(ctx context.Context) ([]Lowering, error) {
	return s.queryLowerings(ctx, selectLowering+` ORDER BY seq ASC`)
}

// ListLoweringsByRegime returns the lowerings in one regime, in insertion
// order.
func (s *Store) ListLoweringsByRegime(ctx context.Context, regime string) ([]Lowering, error) {
	return s.queryLowerings(ctx, selectLowering+` WHERE regime = ? ORDER BY seq ASC`, regime)
}

func (s *Store) queryLowerings(ctx context.Context, query string, args ...any) ([]Lowering, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lowerings: %w", err)
	}
	defer rows.Close()

	out := []Lowering{}
	for rows.Next() {
		rec, err := scanLowering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lowerings: %w", err)
	}
	return out, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLowering(sc scanner) (Lowering, error) {
	var rec Lowering
	var programJSON string
	err := sc.Scan(
		&rec.Seq,
		&rec.ID,
		&rec.Atom,
		&rec.OriginalExponent,
		&rec.Exponent,
		&rec.Regime,
		&rec.MaxDenominator,
		&rec.ConstraintCount,
		&programJSON,
		&rec.IRVersion,
		&rec.ToolVersion,
	)
	if err != nil {
		return Lowering{}, err
	}
	if err := rec.Program.UnmarshalJSON([]byte(programJSON)); err != nil {
		return Lowering{}, fmt.Errorf("unmarshal program %s: %w", rec.ID, err)
	}
	return rec, nil
}
