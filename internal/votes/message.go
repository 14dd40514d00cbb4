package votes

import (
	"fmt"
	"sort"
	"strings"
)

// CanonicalMessage builds the exact byte string a wallet signs for a vote
// batch. Both ends of the wire build it independently, so the format is
// load-bearing: submission IDs are grouped by direction, each group sorted
// lexicographically and comma-joined, empty groups omitted entirely, and
// the remaining clauses joined with ";". Clear votes ("none") carry no
// clause; what the signature attests to is the set of up and down votes.
//
//	Tokenboard Vote Batch: up:a1,b2;down:c3 for 0xabc... at 1700000000000
func CanonicalMessage(batch []BatchVote, address string, timestampMs int64) string {
	var up, down []string
	for _, v := range batch {
		switch v.VoteType {
		case VoteUp:
			up = append(up, v.SubmissionID)
		case VoteDown:
			down = append(down, v.SubmissionID)
		}
	}
	sort.Strings(up)
	sort.Strings(down)

	var clauses []string
	if len(up) > 0 {
		clauses = append(clauses, "up:"+strings.Join(up, ","))
	}
	if len(down) > 0 {
		clauses = append(clauses, "down:"+strings.Join(down, ","))
	}

	return fmt.Sprintf("Tokenboard Vote Batch: %s for %s at %d",
		strings.Join(clauses, ";"), address, timestampMs)
}
