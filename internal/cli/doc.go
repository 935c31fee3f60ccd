// Package cli provides the interactive back-office command-line client.
//
// It wires configuration, local credential storage, the authenticated API
// client and the entity services into an interactive REPL. Typical flow:
// restore a persisted session, list entities, edit fields inline and watch
// rejected edits roll back.
//
// Key features:
//   - Login / Register / Logout with a locally persisted token
//   - Product, category, order and user listings
//   - Optimistic inline edits with rollback on server rejection
//   - Draft-order creation guarded against duplicate submits
//   - Product image upload
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
