package source

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/credora/indexer/internal/common"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	// Nodes phrase the eth_getLogs result cap differently: geth style backends report
	// "query returned more than N results", hosted providers "log response size exceeded".
	rangeLimitRe = regexp.MustCompile(`(?i)query returned more than \d+ results|log response size exceeded`)
	// Some nodes append a range they would accept, e.g. "Try with this block range [0x7dfd25, 0x7e0fcc]."
	suggestedRangeRe = regexp.MustCompile(`\[(0x[0-9a-fA-F]+),\s*(0x[0-9a-fA-F]+)\]`)
)

// rangeLimit is a node refusing an eth_getLogs query because the range holds too many logs.
type rangeLimit struct {
	detail string

	// suggested is set when the node named a narrower range [from, to].
	suggested bool
	from, to  uint64
}

// parseRangeLimit reports whether err is a result cap refusal. The JSON-RPC error data
// is checked first since that is where geth puts the detail, then the message itself.
func parseRangeLimit(err error) (rangeLimit, bool) {
	if err == nil {
		return rangeLimit{}, false
	}

	candidates := make([]string, 0, 2)
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		candidates = append(candidates, fmt.Sprintf("%v", dataErr.ErrorData()))
	}
	candidates = append(candidates, err.Error())

	for _, detail := range candidates {
		if !rangeLimitRe.MatchString(detail) {
			continue
		}

		limit := rangeLimit{detail: detail}
		limit.from, limit.to, limit.suggested = parseSuggestedRange(detail)
		return limit, true
	}

	return rangeLimit{}, false
}

func parseSuggestedRange(detail string) (from, to uint64, ok bool) {
	matches := suggestedRangeRe.FindStringSubmatch(detail)
	if len(matches) != 3 {
		return 0, 0, false
	}

	from, err := common.ParseUint64orHex(&matches[1])
	if err != nil {
		return 0, 0, false
	}
	to, err = common.ParseUint64orHex(&matches[2])
	if err != nil || to < from {
		return 0, 0, false
	}

	return from, to, true
}
