package http

import "github.com/zkCaleb-dev/Sirius-Funding-Repository/internal/projects/domain"

// maxImageBytes caps the optional base64 project image at 5 MB decoded.
const maxImageBytes = 5 * 1024 * 1024

type createProjectReq struct {
	ProjectID   string          `json:"projectId"`
	Creator     string          `json:"creator"`
	Goal        float64         `json:"goal"`
	Deadline    domain.Deadline `json:"deadline"`
	Description string          `json:"description"`
	ImageBase64 string          `json:"imageBase64,omitempty"`
}

type donateReq struct {
	ProjectID string  `json:"projectId"`
	Amount    float64 `json:"amount"`
}

type claimReq struct {
	ProjectID string `json:"projectId"`
}

// imageSizeBytes estimates the decoded size of a base64 payload
// (4 encoded characters carry 3 bytes).
func imageSizeBytes(b64 string) float64 {
	return float64(len(b64)) * 0.75
}
