// Package pebblestore is a thin wrapper over cockroachdb/pebble with an
// fsync policy, a metrics hook and prefix scans. seqid uses it to keep
// checkpoint records; it never stores issued identifiers.
package pebblestore
