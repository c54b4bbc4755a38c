package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreContact(t *testing.T) {
	codes := CodeSet{
		CodeSpokeWith:      true,
		CodeSetAppointment: true,
		CodeNoAnswer:       false, // false contributes nothing
	}
	assert.Equal(t, 13, ScoreContact(codes))
}

func TestScoreContactEmpty(t *testing.T) {
	assert.Equal(t, 0, ScoreContact(nil))
	assert.Equal(t, 0, ScoreContact(CodeSet{}))
}

func TestScoreSumsAcrossContacts(t *testing.T) {
	contacts := []CodeSet{
		{CodeSpokeWith: true, CodeEmailedProposal: true}, // 3 + 5
		{CodeLeftMessage: true, CodeSentText: true},      // 1 + 1
		{CodeCallBack: true},                             // 2
		nil,
	}
	assert.Equal(t, 12, Score(contacts))
}

func TestCodePointsTable(t *testing.T) {
	want := map[Code]int{
		CodeSpokeWith:       3,
		CodeNoAnswer:        1,
		CodeLeftMessage:     1,
		CodeSentText:        1,
		CodeEmailedProposal: 5,
		CodeSetAppointment:  10,
		CodeCallBack:        2,
	}
	assert.Equal(t, want, CodePoints)
}

func TestAllCodesCovered(t *testing.T) {
	assert.Len(t, AllCodes, len(CodePoints))
	for _, code := range AllCodes {
		_, ok := CodePoints[code]
		assert.True(t, ok, "code %s missing from point table", code)
	}
}
