package ledger

import (
	"fmt"

	"github.com/x-xyz/nfttransfer/domain"
)

type blockRange struct {
	begin uint64
	end   uint64 // inclusive
}

func newBlockRange(begin, end uint64) *blockRange {
	return &blockRange{
		begin: begin,
		end:   end,
	}
}

func (r *blockRange) split() (*blockRange, *blockRange) {
	mid := r.begin + (r.end-r.begin)/2
	first := &blockRange{begin: r.begin, end: mid}
	second := &blockRange{begin: mid + 1, end: r.end}
	return first, second
}

func (r *blockRange) single() bool {
	return r.begin == r.end
}

func (r *blockRange) toDomain() domain.BlockRange {
	end := r.end
	return domain.BlockRange{From: r.begin, To: &end}
}

func (r *blockRange) String() string {
	return fmt.Sprintf("blockRange{%d-%d}", r.begin, r.end)
}
