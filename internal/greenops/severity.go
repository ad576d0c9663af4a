package greenops

// SeverityFor returns the band kg falls into.
//
//	0          -> SeverityZero
//	(0, 20)    -> SeverityLow
//	[20, 50)   -> SeverityMedium
//	[50, 100)  -> SeverityHigh
//	[100, ...) -> SeverityVeryHigh
func SeverityFor(kg float64) Severity {
	switch {
	case kg == 0:
		return SeverityZero
	case kg < LowSeverityLimitKg:
		return SeverityLow
	case kg < MediumSeverityLimitKg:
		return SeverityMedium
	case kg < HighSeverityLimitKg:
		return SeverityHigh
	default:
		return SeverityVeryHigh
	}
}
