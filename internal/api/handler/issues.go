package handler

import (
	"net/http"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

type issuesResponse struct {
	SnapshotID string             `json:"snapshot_id"`
	Total      int                `json:"total"`
	Issues     []domain.LineIssue `json:"issues"`
}

// GetIssues lista as linhas descartadas na última carga
func GetIssues(service LedgerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := currentSnapshot(w, service)
		if !ok {
			return
		}

		issues := snapshot.Issues
		if issues == nil {
			issues = []domain.LineIssue{}
		}

		writeJSON(w, r, http.StatusOK, issuesResponse{
			SnapshotID: snapshot.ID,
			Total:      len(issues),
			Issues:     issues,
		})
	})
}
