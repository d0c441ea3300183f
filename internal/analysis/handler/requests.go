package handler

import (
	"fmt"

	"clausecheck/internal/analysis"
	dErrors "clausecheck/pkg/domain-errors"
)

// maxDocumentBytes bounds a single document submission.
const maxDocumentBytes = 2 << 20

// maxBatchDocuments bounds a batch submission.
const maxBatchDocuments = 64

// EvaluateRequest is the HTTP request body for POST /analysis/evaluate.
type EvaluateRequest struct {
	Text         string            `json:"text"`
	Jurisdiction string            `json:"jurisdiction"`
	Policy       map[string]string `json:"policy"`
}

// Validate checks the request. An empty document is allowed; it yields an
// empty-but-valid report.
func (r *EvaluateRequest) Validate() error {
	if len(r.Text) > maxDocumentBytes {
		return dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("document exceeds %d bytes", maxDocumentBytes))
	}
	return nil
}

// ToRequest converts the HTTP shape to the service request.
func (r *EvaluateRequest) ToRequest() analysis.Request {
	return analysis.Request{
		Text:         r.Text,
		Jurisdiction: r.Jurisdiction,
		Policy:       r.Policy,
	}
}

// BatchRequest is the HTTP request body for POST /analysis/batch.
type BatchRequest struct {
	Documents []EvaluateRequest `json:"documents"`
}

func (r *BatchRequest) Validate() error {
	if len(r.Documents) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "documents is required")
	}
	if len(r.Documents) > maxBatchDocuments {
		return dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("batch exceeds %d documents", maxBatchDocuments))
	}
	for i := range r.Documents {
		if err := r.Documents[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
