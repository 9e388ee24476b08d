// Package models defines the core domain models for RachaConta.
//
// # Models
//
//   - BillState: raw form inputs for one bill (amount, tip, division mode)
//   - Person: one entry of a custom percentage split
//   - PersonAmount: one person's computed share of the total
//   - SuggestionResult: output of the AI tip suggestion flow
//   - Calculation: a saved calculation for the history view
//
// # Design Principles
//
//  1. Raw inputs stay strings until parsed; parse failures normalize to zero
//     instead of erroring
//  2. Derived amounts keep full float64 precision; two-digit formatting
//     happens only at the presentation edge
//  3. Relationships use ID strings instead of pointers
package models
