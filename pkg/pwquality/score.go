// pkg/pwquality/score.go

package pwquality

// Score weights.
const (
	scorePerExtraChar = 4
	scorePerClass     = 10
	scorePerCredit    = 2
	MaxScore          = 100
)

// Score maps an accepted password's credit report to 0..100:
//
//	4*(length - effective minimum) + 10*classes + 2*credits, clamped.
//
// Adding a character never lowers any term, so the score is monotonic in
// length and in class diversity.
func Score(rep CreditReport) int {
	s := scorePerExtraChar*(rep.Length-rep.EffectiveMin) +
		scorePerClass*rep.Classes +
		scorePerCredit*rep.Bonus
	if s < 0 {
		return 0
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}
