// Package scoring turns a member's raw answers into a ScoreRecord.
//
// Scoring is pure: Score reads only its arguments and the static question
// banks in the model package, so the same answers always produce the same
// record. A submission is either scored completely or rejected with one of
// the sentinel errors:
//
//   - ErrIncompleteAnswers: a required question or field is missing
//   - ErrInvalidCardinality: a narrowing step has the wrong number of picks
//   - ErrInvalidAnswer: a value is out of range, unknown, or contradictory
//
// Rejections are returned as *AnswerError, which names the offending field
// and unwraps to the sentinel:
//
//	rec, err := scoring.Score(model.TestTypeGifts, answers)
//	if errors.Is(err, scoring.ErrIncompleteAnswers) {
//	    // ask the member to finish the questionnaire
//	}
package scoring
