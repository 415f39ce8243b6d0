package model

// SettlementPass collects every row a batch pass mutates so the datasource
// can persist all of it in one transaction. The same Account and FundBlock
// instances are mutated throughout the pass (read-modify-write); re-fetching
// them mid-pass would lose updates.
type SettlementPass struct {
	Batch        *PaymentBatch
	Instructions []*PaymentInstruction
	Accounts     map[string]*Account
	FundBlocks   map[string]*FundBlock
	Logs         []*AccountingLog
}

// NewSettlementPass prepares an empty pass for a batch.
func NewSettlementPass(batch *PaymentBatch) *SettlementPass {
	return &SettlementPass{
		Batch:      batch,
		Accounts:   make(map[string]*Account),
		FundBlocks: make(map[string]*FundBlock),
	}
}
