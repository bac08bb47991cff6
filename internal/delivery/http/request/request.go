package request

// IngestRequest triggers an ingestion run over an inclusive date range.
type IngestRequest struct {
	StartDate string `json:"start_date"` // YYYYMMDD
	EndDate   string `json:"end_date"`   // YYYYMMDD
}
