// pkg/pwquality/credit.go

package pwquality

import "unicode/utf8"

var minReasons = [NumClasses]Reason{
	ClassDigit: ErrMinDigits,
	ClassUpper: ErrMinUppers,
	ClassLower: ErrMinLowers,
	ClassOther: ErrMinOthers,
}

// CreditReport is the outcome of the credit calculation for one password.
type CreditReport struct {
	Counts       ClassCounts
	Classes      int // classes present
	Bonus        int // length credit earned by classes with credit >= 0
	EffectiveMin int // min_length minus Bonus, never below 1
	Length       int // length in runes
}

// Credits computes counts, the length bonus and the effective minimum
// length for password under p. It does not reject anything.
func Credits(p Policy, password string) CreditReport {
	counts := CountClasses(password)
	bonus := 0
	for c := Class(0); c < NumClasses; c++ {
		cr := p.credit(c)
		if cr < 0 {
			continue
		}
		bonus += min(cr, counts[c])
	}
	eff := p.MinLength - bonus
	if eff < 1 {
		eff = 1
	}
	return CreditReport{
		Counts:       counts,
		Classes:      counts.Present(),
		Bonus:        bonus,
		EffectiveMin: eff,
		Length:       utf8.RuneCountInString(password),
	}
}

// checkCredits applies the hard requirements: per-class minimums for
// negative credits, then the class count, then the effective length.
func checkCredits(p Policy, rep CreditReport) Reason {
	for c := Class(0); c < NumClasses; c++ {
		cr := p.credit(c)
		if cr < 0 && rep.Counts[c] < -cr {
			return minReasons[c]
		}
	}
	if rep.Classes < p.MinClasses {
		return ErrMinClasses
	}
	if rep.Length < rep.EffectiveMin {
		return ErrMinLength
	}
	return 0
}
