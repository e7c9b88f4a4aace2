package engine

// MethodComparison contrasts one metric of a traditional on-site roof
// inspection against the remote imagery workflow.
type MethodComparison struct {
	Metric    string `json:"metric"`
	Manual    string `json:"manual"`
	Automated string `json:"automated"`
	Advantage string `json:"advantage"`
	Savings   string `json:"savings"`
}

// CompareMethods returns the manual-vs-automated inspection comparison used
// in sales material and report appendices. The figures are industry
// benchmarks, not per-report measurements, so the table is static.
func CompareMethods() []MethodComparison {
	return []MethodComparison{
		{
			Metric:    "Cost per Property",
			Manual:    "$150 - $400",
			Automated: "$0.075 (API query)",
			Advantage: "automated",
			Savings:   "99.95%",
		},
		{
			Metric:    "Time per Report",
			Manual:    "2 - 5 hours (field + office)",
			Automated: "< 3 seconds",
			Advantage: "automated",
			Savings:   "99.97%",
		},
		{
			Metric:    "Measurement Accuracy",
			Manual:    "95 - 97% (trained estimator)",
			Automated: "98.77% (Google Solar HIGH)",
			Advantage: "automated",
			Savings:   "+1.8%",
		},
		{
			Metric:    "Weather Dependency",
			Manual:    "Cannot inspect in rain/snow/ice",
			Automated: "24/7, any weather",
			Advantage: "automated",
			Savings:   "N/A",
		},
		{
			Metric:    "Safety Risk",
			Manual:    "High (ladder/roof access)",
			Automated: "Zero (remote sensing)",
			Advantage: "automated",
			Savings:   "100%",
		},
		{
			Metric:    "Scalability",
			Manual:    "1-3 properties/day",
			Automated: "600+ properties/hour",
			Advantage: "automated",
			Savings:   "200x+",
		},
		{
			Metric:    "Edge Measurements",
			Manual:    "Direct measurement on-site",
			Automated: "Calculated from 3D geometry model",
			Advantage: "manual",
			Savings:   "N/A",
		},
		{
			Metric:    "Penetration Detection",
			Manual:    "Visual inspection (chimneys, vents, skylights)",
			Automated: "AI Vision analysis (Gemini)",
			Advantage: "tie",
			Savings:   "N/A",
		},
		{
			Metric:    "Material BOM Accuracy",
			Manual:    "Based on experience + field notes",
			Automated: "Algorithmic (from 3D surface area + edge lengths)",
			Advantage: "automated",
			Savings:   "Reduced waste",
		},
		{
			Metric:    "Report Generation",
			Manual:    "Manual typing, 30-60 min",
			Automated: "Automated multi-page PDF, < 1 sec",
			Advantage: "automated",
			Savings:   "99%+",
		},
	}
}
