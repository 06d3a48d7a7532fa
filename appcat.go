// Package appcat builds CSV catalogs of the applications offered by a
// software-bundling site. It extracts records from saved catalog exports or
// live application pages, reconciles catalog snapshots by application name,
// and writes the result as CSV.
//
// This package contains domain types, interfaces and the pure
// transformations (platform normalization, translation lookup, fallback
// data, reconciliation). Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package appcat
