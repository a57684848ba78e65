package syncer

// Sync result types.
const (
	TypeInitial     = "initial"
	TypeIncremental = "incremental"
)

// SyncResult is the structured outcome of one sync invocation. No raw
// error ever crosses the orchestrator boundary; failures surface here
// with Success=false and a message.
type SyncResult struct {
	Success     bool     `json:"success"`
	Type        string   `json:"type"`
	PairsFound  int      `json:"pairs_found"`
	TradesFound int      `json:"trades_found"`
	NewPairs    []string `json:"new_pairs,omitempty"`
	Message     string   `json:"message"`
}

func failure(msg string) SyncResult {
	return SyncResult{Success: false, Message: msg}
}
