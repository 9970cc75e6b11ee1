package dto

import (
	"lingodeck/internal/importer"
)

// ItemFailureResponse describes why one audio file did not become a flashcard.
type ItemFailureResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ItemResultResponse represents one audio file's outcome in a batch import.
// Results keep the order the audio files were uploaded in.
type ItemResultResponse struct {
	AudioDisplayName string               `json:"audio_display_name"`
	FlashcardID      string               `json:"flashcard_id,omitempty"`
	Failure          *ItemFailureResponse `json:"failure,omitempty"`
}

// BatchReportResponse represents the outcome of a bulk flashcard import.
type BatchReportResponse struct {
	TotalPairs int                  `json:"total_pairs"`
	Succeeded  int                  `json:"succeeded"`
	Failed     int                  `json:"failed"`
	Items      []ItemResultResponse `json:"items"`
}

// NewBatchReportResponse converts an import batch report to its API shape.
func NewBatchReportResponse(report *importer.BatchReport) *BatchReportResponse {
	items := make([]ItemResultResponse, 0, len(report.Items))
	for _, item := range report.Items {
		resp := ItemResultResponse{AudioDisplayName: item.AudioDisplayName}
		if item.Succeeded() {
			resp.FlashcardID = item.Flashcard.ID
		} else if item.Err != nil {
			resp.Failure = &ItemFailureResponse{
				Code:    string(item.Err.Code),
				Message: item.Err.Message,
			}
		}
		items = append(items, resp)
	}
	return &BatchReportResponse{
		TotalPairs: report.TotalPairs,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		Items:      items,
	}
}
