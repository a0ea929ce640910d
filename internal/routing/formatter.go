package routing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// roadAbbreviations expands the standard street-type abbreviations into their
// spoken forms. Keys are matched per word, with any trailing period removed.
var roadAbbreviations = map[string]string{
	"Rd":   "Road",
	"St":   "Street",
	"Ave":  "Avenue",
	"Blvd": "Boulevard",
	"Dr":   "Drive",
	"Ln":   "Lane",
	"Hwy":  "Highway",
	"Pkwy": "Parkway",
	"Ct":   "Court",
	"Pl":   "Place",
	"Sq":   "Square",
	"Ter":  "Terrace",
}

// normalizeRoadName expands abbreviations for speech output. An empty road
// name becomes "the path".
func normalizeRoadName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "the path"
	}
	words := strings.Fields(name)
	for i, w := range words {
		key := strings.TrimSuffix(w, ".")
		if full, ok := roadAbbreviations[key]; ok {
			words[i] = full
		}
	}
	return strings.Join(words, " ")
}

// formatDistance renders a distance in meters as speakable text: whole meters
// below one kilometer, kilometers rounded to one decimal above.
func formatDistance(meters float64) string {
	if meters >= 1000 {
		km := math.Round(meters/100) / 10
		if km == 1 {
			return "1 kilometer"
		}
		return strconv.FormatFloat(km, 'f', -1, 64) + " kilometers"
	}
	m := math.Round(meters)
	if m == 1 {
		return "1 meter"
	}
	return fmt.Sprintf("%.0f meters", m)
}

// formatDuration renders a duration in minutes as speakable text, switching
// to hours past sixty minutes.
func formatDuration(minutes float64) string {
	whole := int(math.Round(minutes))
	if whole < 1 {
		whole = 1
	}
	if whole < 60 {
		if whole == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", whole)
	}

	hours := whole / 60
	rem := whole % 60
	var b strings.Builder
	if hours == 1 {
		b.WriteString("1 hour")
	} else {
		fmt.Fprintf(&b, "%d hours", hours)
	}
	if rem == 1 {
		b.WriteString(" 1 minute")
	} else if rem > 1 {
		fmt.Fprintf(&b, " %d minutes", rem)
	}
	return b.String()
}

// formatETA renders the wall-clock arrival time for a walk of the given
// duration starting now.
func formatETA(now time.Time, duration time.Duration) string {
	return now.Add(duration).Format("3:04 PM")
}

// synthesizeInstruction builds the voice-ready sentence for one raw maneuver.
// The road name must already be normalized.
func synthesizeInstruction(maneuverType, modifier, road, distanceText string) string {
	switch maneuverType {
	case "arrive":
		return "You have arrived at your destination."
	case "depart":
		if modifier == "" {
			modifier = "straight"
		}
		return fmt.Sprintf("Head %s on %s.", modifier, road)
	default:
		if modifier != "" {
			return fmt.Sprintf("In %s, %s %s onto %s.", distanceText, maneuverType, modifier, road)
		}
		return fmt.Sprintf("Continue on %s for %s.", road, distanceText)
	}
}
