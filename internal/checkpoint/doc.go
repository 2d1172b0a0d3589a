// Package checkpoint is seqid's restart guard.
//
// Generator state lives in memory, so a process that restarts within the
// same tick could hand out a (tick, offset) pair it already issued. The
// Recorder periodically persists each scheme's last tick (its high-water
// mark) and Guard makes startup wait until every scheme's clock has moved
// past it. Only ticks are stored, never identifiers.
package checkpoint
