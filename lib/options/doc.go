// Package options reconciles the effective value of named settings from an
// append-only history of competing assertions.
//
// # Assertions
//
// Every Setting starts with a single seed assertion holding its validated
// default. Callers then record requirements (binding) and suggestions
// (non-binding), each tagged with its origin and with how specifically the
// keyword was named. Nothing is ever overwritten: the effective value is
// recomputed from the whole history on every read.
//
// # Scoring
//
// An assertion scores its specificity, plus BindingBonus when it is binding.
// Among the assertions tied at the top score, the most recent one tagged
// TagUser and the most recent one carrying any other tag are selected. If only
// one of them exists it wins; if both exist they must agree, otherwise the
// read fails with a *ReconciliationError.
//
// # Registry
//
// A Registry groups settings by domain and routes Require/Suggest calls by
// keyword suffix, so that "MAXITER" reaches both SCF__MAXITER and CC__MAXITER
// at a lower specificity than naming either keyword in full. Every assertion
// made under a driver tag can later be withdrawn at once with UnwindByTag.
//
// A Registry performs no locking. Wrap it with NewLocked when it is shared
// between goroutines.
package options
