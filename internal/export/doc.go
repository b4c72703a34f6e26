// Package export flattens a normalized audit into row sets for a columnar
// analytics warehouse.
//
// The transform is pure: one wide audit row plus child row lists, every
// analytic field independently null-coalesced from its optional source
// path. Missing bundles null out their columns, they never fail the
// transform. All rows from one transform call share the audit's audit_id
// as foreign key and a single inserted_at timestamp captured once per
// call.
//
// The warehouse adapter stores rows in SQLite with WAL mode, an embedded
// schema, and user_version migrations. Batch export isolates per-audit
// failures: one audit's error is captured into its result without
// interrupting the rest of the batch.
package export
