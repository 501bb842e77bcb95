package specialty

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/mora/internal/content"
	"github.com/abhisek/mora/internal/curriculum"
)

const clockPrompt = "What time does this clock show?"

type clockGenerator struct {
	rng *rand.Rand
}

func (g *clockGenerator) Name() string { return "local-clock" }

func (g *clockGenerator) Generate(c curriculum.Concept, recent []string) content.Question {
	recentSet := make(map[string]bool, len(recent))
	for _, r := range recent {
		recentSet[r] = true
	}

	text := strings.ToLower(c.Name + " " + c.Description)
	hourOnly := strings.Contains(text, "hour") &&
		!strings.Contains(text, "half") && !strings.Contains(text, "quarter")

	type clockTime struct{ hour, minute int }
	var candidates []clockTime
	if hourOnly {
		for h := 1; h <= 12; h++ {
			candidates = append(candidates, clockTime{h, 0})
		}
	} else {
		for h := 1; h <= 12; h++ {
			for _, m := range []int{0, 15, 30, 45} {
				candidates = append(candidates, clockTime{h, m})
			}
		}
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	picked := candidates[0]
	for _, ct := range candidates {
		key := fmt.Sprintf("%s [%s]", clockPrompt, formatClockTime(ct.hour, ct.minute))
		if !recentSet[key] {
			picked = ct
			break
		}
	}

	correct := formatClockTime(picked.hour, picked.minute)
	distractors := g.clockDistractors(picked.hour, picked.minute, hourOnly)
	options, answer := assembleOptions(g.rng, correct, distractors)

	return content.Question{
		ConceptID:   c.ID,
		Text:        fmt.Sprintf("%s [%s]", clockPrompt, correct),
		Type:        content.TypeMultipleChoice,
		Options:     options,
		Answer:      answer,
		Explanation: clockHint(picked.minute),
		Status:      content.StatusApproved,
		Artifact:    clockSVG(picked.hour, picked.minute, 200),
	}
}

func (g *clockGenerator) clockDistractors(hour, minute int, hourOnly bool) []string {
	seen := map[string]bool{formatClockTime(hour, minute): true}
	var out []string

	if hourOnly {
		hours := g.rng.Perm(12)
		for _, h := range hours {
			t := formatClockTime(h+1, 0)
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
			if len(out) == 3 {
				break
			}
		}
		return out
	}

	minutes := []int{0, 15, 30, 45}
	for len(out) < 3 {
		t := formatClockTime(g.rng.IntN(12)+1, minutes[g.rng.IntN(len(minutes))])
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func formatClockTime(hour, minute int) string {
	return fmt.Sprintf("%d:%02d", hour, minute)
}

func clockHint(minute int) string {
	switch minute {
	case 0:
		return "Look where the short hand points, that's the hour. The long hand on 12 means o'clock."
	case 30:
		return "The long hand on 6 means half past. The short hand shows the hour."
	case 15:
		return "The long hand on 3 means quarter past. The short hand shows the hour."
	default:
		return "The long hand on 9 means quarter to the next hour."
	}
}

// clockSVG renders an analog clock face showing the given time.
func clockSVG(hour, minute, size int) string {
	cx, cy := float64(size)/2, float64(size)/2
	r := float64(size)/2 - 10

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n", size, size, size, size)
	fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="white" stroke="#2C3E50" stroke-width="3"/>`+"\n", cx, cy, r)

	// Hour tick marks.
	for i := 0; i < 12; i++ {
		angle := float64(i*30-90) * math.Pi / 180
		x1 := cx + (r-8)*math.Cos(angle)
		y1 := cy + (r-8)*math.Sin(angle)
		x2 := cx + r*math.Cos(angle)
		y2 := cy + r*math.Sin(angle)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#2C3E50" stroke-width="2"/>`+"\n", x1, y1, x2, y2)
	}

	// Hour numbers.
	for i := 1; i <= 12; i++ {
		angle := float64(i*30-90) * math.Pi / 180
		nx := cx + (r-22)*math.Cos(angle)
		ny := cy + (r-22)*math.Sin(angle)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="%d" font-family="sans-serif" fill="#2C3E50">%d</text>`+"\n", nx, ny, size/10, i)
	}

	// Minute hand (long, thin).
	minAngle := float64(minute*6-90) * math.Pi / 180
	minLen := r - 30
	fmt.Fprintf(&b, `<line x1="%g" y1="%g" x2="%.1f" y2="%.1f" stroke="#2C3E50" stroke-width="2.5" stroke-linecap="round"/>`+"\n",
		cx, cy, cx+minLen*math.Cos(minAngle), cy+minLen*math.Sin(minAngle))

	// Hour hand (short, thick) advances with the minutes.
	hourFraction := float64(hour) + float64(minute)/60
	hrAngle := (hourFraction*30 - 90) * math.Pi / 180
	hrLen := r * 0.55
	fmt.Fprintf(&b, `<line x1="%g" y1="%g" x2="%.1f" y2="%.1f" stroke="#2C3E50" stroke-width="4" stroke-linecap="round"/>`+"\n",
		cx, cy, cx+hrLen*math.Cos(hrAngle), cy+hrLen*math.Sin(hrAngle))

	fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="4" fill="#2C3E50"/>`+"\n", cx, cy)
	b.WriteString(`</svg>`)
	return b.String()
}
