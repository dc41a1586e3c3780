// Package matching computes monogamous, role-agnostic stable matchings.
//
// Participants carry no fixed proposer or receiver side, so the Engine
// searches role partitions: every combination of ⌊N/2⌋ proposers is tried in
// lexicographic order and each candidate runs through the same pipeline:
//
//  1. Sanitize: copy the raw score matrix and mark gender-incompatible and
//     same-role pairs as forbidden (score forced to zero).
//  2. Rank: derive per-participant preference orderings over the other role,
//     descending by sanitized score, ties broken by ascending id. Forbidden
//     candidates always rank after every permitted one, so a permitted
//     negative score still outranks a forbidden pair.
//  3. GaleShapley: run deferred acceptance to a stable matching.
//  4. Validate: the matching is accepted only if no matched pair is forbidden
//     (or zero-scored, unless AllowZeroScores is set).
//
// The first valid candidate in enumeration order wins, which keeps results
// deterministic even when candidates are evaluated by parallel workers.
// When every candidate fails the result carries StatusInfeasible.
//
// Scaling: the search visits up to C(N, ⌊N/2⌋) partitions, each costing
// O(N² log N) for ranking plus O(N²) for the proposal loop. This is only
// practical for populations of a few dozen participants; Config.MaxAttempts
// bounds the work and Config.MaxParticipants rejects larger inputs up front.
package matching
