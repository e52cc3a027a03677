// Package rational provides the exact fraction type used for power exponents,
// the scalar sanitizer that turns user input into it, and the bounded
// denominator approximation.
//
// Values are always held in lowest terms with a positive denominator and are
// never mutated after construction. Floating-point inputs are converted from
// the exact binary value they hold, so 0.1 becomes 3602879701896397/36028797018963968
// and not 1/10.
package rational
