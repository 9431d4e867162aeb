package config

import "time"

const (
	// Registration
	MinAge = 18

	// Auth
	JWTLifetime = 72 * time.Hour
	JWTIssuer   = "lovegogo-service"

	// Chat
	MessagePageSize = 15

	// Reputation
	InitialReputation       = 1000
	MaxReputation           = 1000
	MinReputation           = 0
	ConfirmedReportBonus    = 50

	// Ban
	BanThresholdReputation = 500
	BanThresholdFrequency  = 5
	BanFrequencyWindow     = 24 * time.Hour
	BanLevel1Duration      = 30 * time.Minute
	BanLevel2Duration      = 6 * time.Hour
	BanLevel3Duration      = 24 * time.Hour
)

var ReportWeights = map[string]int{
	"Low":      5,
	"Medium":   50,
	"Critical": 250,
}
