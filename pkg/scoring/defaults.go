package scoring

// DefaultWeights holds the default weights and thresholds for all six
// category scorers. Category weights must sum to 1.0.
type DefaultWeights struct {
	// Category weights
	DWSP          float64
	Assets        float64
	Documentation float64
	Reporting     float64
	Risk          float64
	Timeliness    float64

	// DWSP
	DWSPBase             float64
	DWSPReviewBonus      float64
	DWSPReviewWindowDays int
	DWSPCompletionBonus  float64

	// Asset management
	AssetBase               float64
	AssetCriticalTiers      [4]float64
	AssetInspectionTiers    [4]float64
	AssetConditionPenalty   float64
	AssetConditionThreshold float64

	// Documentation
	DocEmptyFloor    float64
	DocBase          float64
	DocCoverageBonus float64
	DocRecencyBonus  float64

	// Reporting
	ReportAnnualCurrent    float64
	ReportAnnualPrior      float64
	ReportQuarterlyFull    float64
	ReportQuarterlyShort   float64
	ReportQuarterlyLow     float64
	ReportMonthlyFull      float64
	ReportMonthlyPart      float64
	ReportMonthlyLow       float64
	ReportMonthlyFullCount int
	ReportMonthlyPartCount int

	// Risk management
	RiskBase              float64
	RiskRecencyBonus      float64
	RiskRecencyWindowDays int
	RiskIncidentNone      float64
	RiskIncidentFew       float64
	RiskIncidentTolerance int

	// Timeliness
	TimelinessOverduePenalty    float64
	TimelinessOverdueCap        float64
	TimelinessUpcomingPenalty   float64
	TimelinessUpcomingThreshold int
}

// Defaults returns the standard weights and thresholds.
func Defaults() DefaultWeights {
	return DefaultWeights{
		DWSP:          0.35,
		Assets:        0.20,
		Documentation: 0.15,
		Reporting:     0.15,
		Risk:          0.10,
		Timeliness:    0.05,

		DWSPBase:             60,
		DWSPReviewBonus:      20,
		DWSPReviewWindowDays: 365,
		DWSPCompletionBonus:  20,

		AssetBase:               40,
		AssetCriticalTiers:      [4]float64{30, 25, 15, 5},
		AssetInspectionTiers:    [4]float64{20, 15, 10, 5},
		AssetConditionPenalty:   10,
		AssetConditionThreshold: 0.20,

		DocEmptyFloor:    20,
		DocBase:          50,
		DocCoverageBonus: 30,
		DocRecencyBonus:  20,

		ReportAnnualCurrent:    40,
		ReportAnnualPrior:      20,
		ReportQuarterlyFull:    30,
		ReportQuarterlyShort:   20,
		ReportQuarterlyLow:     10,
		ReportMonthlyFull:      30,
		ReportMonthlyPart:      20,
		ReportMonthlyLow:       10,
		ReportMonthlyFullCount: 3,
		ReportMonthlyPartCount: 2,

		RiskBase:              50,
		RiskRecencyBonus:      30,
		RiskRecencyWindowDays: 180,
		RiskIncidentNone:      20,
		RiskIncidentFew:       10,
		RiskIncidentTolerance: 2,

		TimelinessOverduePenalty:    20,
		TimelinessOverdueCap:        80,
		TimelinessUpcomingPenalty:   10,
		TimelinessUpcomingThreshold: 5,
	}
}

// DefaultScorers returns the standard six category scorers.
func DefaultScorers() []CategoryScorer {
	return ScorersFromWeights(Defaults())
}

// ScorersFromWeights builds the six category scorers from w, allowing
// callers to override individual weights or thresholds first.
func ScorersFromWeights(w DefaultWeights) []CategoryScorer {
	return []CategoryScorer{
		&DWSPScorer{
			CategoryWeight:   w.DWSP,
			Base:             w.DWSPBase,
			ReviewBonus:      w.DWSPReviewBonus,
			ReviewWindowDays: w.DWSPReviewWindowDays,
			CompletionBonus:  w.DWSPCompletionBonus,
		},
		&AssetScorer{
			CategoryWeight:     w.Assets,
			Base:               w.AssetBase,
			CriticalTiers:      w.AssetCriticalTiers,
			InspectionTiers:    w.AssetInspectionTiers,
			ConditionPenalty:   w.AssetConditionPenalty,
			ConditionThreshold: w.AssetConditionThreshold,
		},
		&DocumentationScorer{
			CategoryWeight: w.Documentation,
			EmptyFloor:     w.DocEmptyFloor,
			Base:           w.DocBase,
			CoverageBonus:  w.DocCoverageBonus,
			RecencyBonus:   w.DocRecencyBonus,
		},
		&ReportingScorer{
			CategoryWeight:   w.Reporting,
			AnnualCurrent:    w.ReportAnnualCurrent,
			AnnualPrior:      w.ReportAnnualPrior,
			QuarterlyFull:    w.ReportQuarterlyFull,
			QuarterlyShort:   w.ReportQuarterlyShort,
			QuarterlyLow:     w.ReportQuarterlyLow,
			MonthlyFull:      w.ReportMonthlyFull,
			MonthlyPart:      w.ReportMonthlyPart,
			MonthlyLow:       w.ReportMonthlyLow,
			MonthlyFullCount: w.ReportMonthlyFullCount,
			MonthlyPartCount: w.ReportMonthlyPartCount,
		},
		&RiskScorer{
			CategoryWeight:    w.Risk,
			Base:              w.RiskBase,
			RecencyBonus:      w.RiskRecencyBonus,
			RecencyWindowDays: w.RiskRecencyWindowDays,
			IncidentNone:      w.RiskIncidentNone,
			IncidentFew:       w.RiskIncidentFew,
			IncidentTolerance: w.RiskIncidentTolerance,
		},
		&TimelinessScorer{
			CategoryWeight:    w.Timeliness,
			OverduePenalty:    w.TimelinessOverduePenalty,
			OverdueCap:        w.TimelinessOverdueCap,
			UpcomingPenalty:   w.TimelinessUpcomingPenalty,
			UpcomingThreshold: w.TimelinessUpcomingThreshold,
		},
	}
}
