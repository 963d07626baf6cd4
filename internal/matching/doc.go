// Package matching scores a member's assessment results against the ministry
// catalog.
//
// Each ministry is compared on five dimensions. A dimension's score is the
// share of the ministry's recommended traits found among the member's top
// traits, as a percentage. The overall compatibility is the weighted sum
//
//	personality 15% + gifts 35% + skills 20% + passion 20% + experience 10%
//
// rounded to the nearest integer. Top traits are the two highest DISC
// letters, the five highest gifts and the three highest RIASEC letters, with
// ties broken by key in ascending order; passion and experience use the
// member's own top picks.
//
// Dimensions the member has not completed are reported in SkippedDimensions
// and dimensions the ministry leaves empty in EmptyDimensions. Both add zero
// to the weighted sum.
package matching
