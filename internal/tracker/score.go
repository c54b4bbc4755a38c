package tracker

// Code is a two-letter prospecting outcome logged per contact per day.
type Code string

const (
	CodeSpokeWith       Code = "SW"
	CodeNoAnswer        Code = "NA"
	CodeLeftMessage     Code = "LM"
	CodeSentText        Code = "ST"
	CodeEmailedProposal Code = "EP"
	CodeSetAppointment  Code = "SA"
	CodeCallBack        Code = "CB"
)

// CodePoints maps each prospecting code to its KPI point value. The scoring
// is intentionally a flat additive table so reps can hand-verify their own
// daily score.
var CodePoints = map[Code]int{
	CodeSpokeWith:       3,
	CodeNoAnswer:        1,
	CodeLeftMessage:     1,
	CodeSentText:        1,
	CodeEmailedProposal: 5,
	CodeSetAppointment:  10,
	CodeCallBack:        2,
}

// AllCodes lists the prospecting codes in display order.
var AllCodes = []Code{
	CodeSpokeWith,
	CodeNoAnswer,
	CodeLeftMessage,
	CodeSentText,
	CodeEmailedProposal,
	CodeSetAppointment,
	CodeCallBack,
}

// CodeSet records which prospecting actions were taken for one contact.
// Absent and false entries are equivalent.
type CodeSet map[Code]bool

// ScoreContact sums the point values of the codes set true for one contact.
func ScoreContact(codes CodeSet) int {
	score := 0
	for code, set := range codes {
		if !set {
			continue
		}
		score += CodePoints[code]
	}
	return score
}

// Score sums ScoreContact across a whole set of contacts, typically one
// day bucket.
func Score(contacts []CodeSet) int {
	total := 0
	for _, c := range contacts {
		total += ScoreContact(c)
	}
	return total
}
