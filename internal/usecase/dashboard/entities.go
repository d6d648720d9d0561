package dashboard

import "tablebanking/internal/ledger"

type SummaryDTO struct {
	AsOf string `json:"as_of"`
	ledger.PoolSnapshot
}
