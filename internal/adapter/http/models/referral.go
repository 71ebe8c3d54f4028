package models

type ReferralLevelSummary struct {
	Level   int      `json:"level"`
	Members []string `json:"members"`
	Count   int      `json:"count"`
}

type ReferralNetworkResponse struct {
	RootID   string                 `json:"rootId"`
	TeamSize int                    `json:"teamSize"`
	Levels   []ReferralLevelSummary `json:"levels"`
}

type CommissionAttributionResponse struct {
	SourceTransactionID string `json:"sourceTransactionId"`
	SourceOwnerID       string `json:"sourceOwnerId"`
	Level               int    `json:"level"`
	Amount              string `json:"amount"`
}

type LevelCommissionResponse struct {
	Level  int    `json:"level"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

type CommissionSummaryResponse struct {
	RootID       string                          `json:"rootId"`
	TeamSize     int                             `json:"teamSize"`
	Total        string                          `json:"total"`
	PerLevel     []LevelCommissionResponse       `json:"perLevel"`
	Attributions []CommissionAttributionResponse `json:"attributions"`
}
