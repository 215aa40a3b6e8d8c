package responses

// PayoutResult is the per-payee outcome of one aggregation batch. Failures are
// reported in-band; the batch endpoint itself answers 200 for partial failure.
type PayoutResult struct {
	PayeeID    string `json:"instructorId"`
	Status     string `json:"status"`
	TransferID string `json:"transferId,omitempty"`
	Error      string `json:"error,omitempty"`
}

const (
	PayoutResultSuccess = "success"
	PayoutResultFailed  = "failed"
)

// BatchReport summarizes one full aggregation run.
type BatchReport struct {
	BatchID          string         `json:"batch_id"`
	Message          string         `json:"message"`
	Results          []PayoutResult `json:"results"`
	EligibleBookings int            `json:"eligible_bookings"`
	SkippedBookings  int            `json:"skipped_bookings"`
	StartedAt        string         `json:"started_at"`
	FinishedAt       string         `json:"finished_at"`
}

type PayoutHistoryEntry struct {
	ID           string   `json:"id"`
	PayeeID      string   `json:"payee_id"`
	Amount       float64  `json:"amount"`
	NetAmount    float64  `json:"net_amount"`
	TransferID   string   `json:"transfer_id,omitempty"`
	Status       string   `json:"status"`
	BookingIDs   []string `json:"booking_ids"`
	ErrorMessage string   `json:"error_message,omitempty"`
	PayoutDate   string   `json:"payout_date"`
}
