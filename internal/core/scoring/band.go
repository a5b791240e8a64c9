package scoring

// Band is a named classification of a numeric score.
type Band struct {
	Label string
	Color string
}

// Score bands, highest first.
var (
	BandExcellent = Band{Label: "Excellent", Color: "#10B981"}
	BandGood      = Band{Label: "Good", Color: "#3B82F6"}
	BandFair      = Band{Label: "Fair", Color: "#F59E0B"}
	BandPoor      = Band{Label: "Poor", Color: "#F97316"}
	BandCritical  = Band{Label: "Critical", Color: "#EF4444"}
)

// ClassifyBand maps an integer score to its band. Thresholds are inclusive.
func ClassifyBand(score int) Band {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 75:
		return BandGood
	case score >= 60:
		return BandFair
	case score >= 40:
		return BandPoor
	default:
		return BandCritical
	}
}

// Compliance alert severities.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// ComplianceAlertSeverity bands the number of overdue compliance records.
func ComplianceAlertSeverity(overdue int) string {
	switch {
	case overdue > 20:
		return SeverityCritical
	case overdue > 10:
		return SeverityHigh
	case overdue > 5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
