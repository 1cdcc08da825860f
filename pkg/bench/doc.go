// Package bench is the core of the operator microbenchmark runner: the
// test case model, exact-match filtering, the adaptive timing loop that
// grows iteration counts until a measurement is significant, deterministic
// per-test RNG seeding, and result reporting.
//
// Registration and execution both work against an explicit *Registry;
// callers construct one, populate it (typically via ops.RegisterAll) and
// hand it to a Runner built from a RunConfig snapshot. Execution is
// strictly sequential: the per-test RNG reseeding contract does not
// survive parallel runs.
package bench
