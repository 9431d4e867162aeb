// Package analysis provides functionality for analyzing user reports.
// It includes logic for determining the severity of a report and calculating
// its impact on the reported user's reputation.
package analysis

import "lovegogo/backend/internal/config"

// GetWeight returns the weight (penalty) for a given report type.
// It returns 0 if the report type is not recognized.
func GetWeight(reportType string) int {
	return config.ReportWeights[reportType]
}
