// Package ir provides the lowered-program types for powcanon.
//
// This package contains type definitions and their canonical encoding only.
// All other internal packages import ir; ir imports nothing internal. This
// keeps IR the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types in operands or constraints - constant fills are int64
//     and weights travel as exact rational strings ("3/4")
//   - Operand and Constraint are sealed interfaces; only this package
//     implements them, so lowering backends can switch exhaustively
//   - All JSON tags use snake_case
//   - Program identity is content-addressed over canonical JSON
package ir
