// Package api contains the client-side access layer for the PRIZO backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the API interface) covering
//     every backend endpoint: raffle listing/config/progress, price quotes,
//     ticket reserve/release/check, payment submission and evidence upload.
//  2. A concrete HTTP implementation (see Client) that tries an ordered
//     list of candidate base URLs until one answers, applies a per-attempt
//     timeout, and normalizes structured backend error bodies into *Error
//     values.
//
// # Error Handling
//
// Transport-level conditions are exposed as sentinel errors that callers can
// match with errors.Is: ErrUnavailable, ErrTimeout. Backend rejections carry
// the extracted message and HTTP status in *Error.
//
// Concurrency & Contexts
//
// Client is safe for concurrent use. All operations accept context.Context
// and honor cancellation; each candidate attempt additionally enforces the
// configured request timeout.
package api
