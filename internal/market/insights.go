package market

import (
	"fmt"
	"strings"
)

// Insight is one derived observation about sector data.
type Insight struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SectorInsights derives qualitative insights from sector data:
// volatility above 20 is notable, momentum beyond +/-5 marks a trend,
// and a volume ratio above 1.5 counts as unusual.
func SectorInsights(sectors []Sector) []Insight {
	var insights []Insight

	var highVol, bullish, bearish, highVolume []string
	for _, s := range sectors {
		if s.Volatility > 20 {
			highVol = append(highVol, s.Name)
		}
		if s.Momentum > 5 {
			bullish = append(bullish, s.Name)
		}
		if s.Momentum < -5 {
			bearish = append(bearish, s.Name)
		}
		if s.VolumeRatio > 1.5 {
			highVolume = append(highVolume, s.Name)
		}
	}

	if len(highVol) > 0 {
		insights = append(insights, Insight{
			Type:        "high_volatility",
			Description: fmt.Sprintf("High volatility detected in %s sectors, suggesting potential trading opportunities.", joinTop(highVol)),
		})
	}
	if len(bullish) > 0 {
		insights = append(insights, Insight{
			Type:        "bullish_momentum",
			Description: fmt.Sprintf("Positive momentum in %s sectors, indicating potential upward trends.", joinTop(bullish)),
		})
	}
	if len(bearish) > 0 {
		insights = append(insights, Insight{
			Type:        "bearish_momentum",
			Description: fmt.Sprintf("Negative momentum in %s sectors, suggesting caution or potential short opportunities.", joinTop(bearish)),
		})
	}
	if len(highVolume) > 0 {
		insights = append(insights, Insight{
			Type:        "unusual_volume",
			Description: fmt.Sprintf("Unusual trading volume in %s sectors, indicating increased market interest.", joinTop(highVolume)),
		})
	}

	return insights
}

// joinTop lists at most three names.
func joinTop(names []string) string {
	if len(names) > 3 {
		names = names[:3]
	}
	return strings.Join(names, ", ")
}

func describeIndicator(sentiment string, strength int) string {
	return fmt.Sprintf("Simulated institutional activity indicator shows %s sentiment with strength %d/10", sentiment, strength)
}
