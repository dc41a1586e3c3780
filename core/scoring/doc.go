// Package scoring computes the pairwise compatibility matrix consumed by the
// matching engine. Scores combine graduation-year proximity, measured on the
// population's normal distribution, with agreement on survey answers where
// rare answers weigh more than common ones.
package scoring
