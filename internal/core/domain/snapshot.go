package domain

// Snapshot is the full persisted state of one ledger: receipts in
// most-recent-first order, the product catalog, the merchant profile (nil
// when never set), and challenge progress. A fresh store loads as an empty
// snapshot.
type Snapshot struct {
	Receipts []Receipt
	Products []Product
	Profile  *MerchantProfile
	Progress []ChallengeProgress
}
