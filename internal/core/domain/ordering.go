package domain

import (
	"math"
	"sort"
	"strings"
)

// Sort sentinels for results the answer text does not mention and results
// without a rank. Both sort after every real value.
const (
	unmentionedPosition = math.MaxInt
	unrankedRank        = math.MaxInt
)

// OrderResultsByAnswerText orders results the way the answer text mentions them.
//
// Results sort by the earliest case-insensitive occurrence of their title in
// answerText; results not mentioned sort last. Ties break on ascending rank
// (unranked last), then ascending identifier. The sort is stable and the
// input slice is not modified.
func OrderResultsByAnswerText(results []Product, answerText string) []Product {
	text := strings.ToLower(answerText)

	keyed := make([]orderKey, len(results))
	for i := range results {
		keyed[i] = orderKey{
			product:  results[i],
			position: mentionPosition(text, results[i].Title),
			rank:     rankOf(results[i]),
		}
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].less(keyed[j])
	})

	ordered := make([]Product, len(keyed))
	for i := range keyed {
		ordered[i] = keyed[i].product
	}
	return ordered
}

// orderKey caches the sort fields of one result.
type orderKey struct {
	product  Product
	position int
	rank     int
}

func (k orderKey) less(other orderKey) bool {
	if k.position != other.position {
		return k.position < other.position
	}
	if k.rank != other.rank {
		return k.rank < other.rank
	}
	return k.product.Identifier() < other.product.Identifier()
}

// mentionPosition returns the byte offset of title within text, both lower-cased.
// An empty title matches at offset 0.
func mentionPosition(text, title string) int {
	idx := strings.Index(text, strings.ToLower(title))
	if idx < 0 {
		return unmentionedPosition
	}
	return idx
}

func rankOf(p Product) int {
	if p.Rank == nil {
		return unrankedRank
	}
	return *p.Rank
}
