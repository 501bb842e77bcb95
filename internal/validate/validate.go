// Package validate screens generated question candidates before they
// reach a learner. It runs an ordered pipeline of structural rules
// followed by independent mathematical verification. Rules are pure
// and never fail on malformed input; unverifiable math is accepted.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/abhisek/mora/internal/content"
)

const (
	maxAnswerLength   = 200
	minQuestionLength = 10
	minOptions        = 3
	tolerance         = 0.01
)

var placeholderAnswers = map[string]bool{
	"": true, "?": true, "...": true, "n/a": true,
	"none": true, "null": true, "tbd": true, "unknown": true,
}

var placeholderMarkers = []string{"[shows", "[image", "[picture", "[display", "[insert"}

var bannedOptions = map[string]bool{
	"all of the above": true, "none of the above": true,
	"all the above": true, "none of these": true, "all of these": true,
}

var imperativeVerbs = map[string]bool{
	"simplify": true, "solve": true, "calculate": true, "count": true,
	"find": true, "convert": true, "round": true, "name": true,
	"list": true, "spell": true, "write": true, "read": true,
	"say": true, "translate": true, "match": true, "determine": true,
	"evaluate": true, "compute": true, "identify": true, "explain": true,
	"describe": true, "compare": true,
}

var drawVerbs = map[string]bool{
	"draw": true, "sketch": true, "plot": true, "shade": true,
	"trace": true, "graph": true,
}

var visualPhrases = []string{
	"in the picture", "in the image", "in the figure", "in the diagram",
	"in the graph", "shown below", "shown above", "pictured",
	"look at the", "the picture below", "the image below",
	"the figure below", "the number line below", "use the picture",
	"on the number line shown",
}

var fillerOptions = map[string]bool{
	"0": true, "1": true, "false": true, "true": true,
	"no": true, "yes": true, "unknown": true,
}

var (
	letterPrefixRe  = regexp.MustCompile(`^[A-Da-d][).\s]+\s*`)
	terminalRe      = regexp.MustCompile(`[?:.]`)
	whatIsMathRe    = regexp.MustCompile(`what is\s+[\d\s+\-*/×÷.]+`)
	questionNumRe   = regexp.MustCompile(`\d+`)
	divisibleByRe   = regexp.MustCompile(`divisible by\s+(\d+)`)
	evenWordRe      = regexp.MustCompile(`\beven\b`)
	oddWordRe       = regexp.MustCompile(`\bodd\b`)
	primeWordRe     = regexp.MustCompile(`\bprime\b`)
	drawImperativRe = regexp.MustCompile(`\b(?:draw|sketch|plot|shade|trace)\s+(?:a|an|the|your)\b`)
)

// Rejection reports which rule fired and why. A nil Rejection means
// the candidate passed every rule.
type Rejection struct {
	Rule   string
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Rule, r.Reason)
}

func reject(rule, format string, args ...any) *Rejection {
	return &Rejection{Rule: rule, Reason: fmt.Sprintf(format, args...)}
}

// Validate runs every structural rule in order, then the three math
// checks. The first failure wins.
func Validate(c content.Candidate) *Rejection {
	question := strings.TrimSpace(c.Question)
	answer := strings.TrimSpace(c.Answer)
	options := c.Options

	qLower := strings.ToLower(question)
	aLower := strings.ToLower(answer)

	if len(question) < minQuestionLength {
		return reject("min_length", "question too short (%d chars, min %d)", len(question), minQuestionLength)
	}

	if placeholderAnswers[aLower] {
		return reject("placeholder_answer", "answer is empty or placeholder: %q", answer)
	}

	if len(options) > 0 {
		seen := map[string]bool{}
		for _, opt := range options {
			norm := strings.ToLower(strings.TrimSpace(letterPrefixRe.ReplaceAllString(opt, "")))
			if seen[norm] {
				return reject("unique_options", "duplicate option %q", strings.TrimSpace(opt))
			}
			seen[norm] = true
		}
	}

	if len(options) > 0 && !answerAmongOptions(aLower, options) {
		return reject("answer_present", "correct answer not found in options")
	}

	if len(answer) > 1 && strings.Contains(qLower, aLower) && !giveawayAllowed(qLower, answer) {
		return reject("no_giveaway", "answer given away in question text")
	}

	for _, marker := range placeholderMarkers {
		if strings.Contains(qLower, marker) {
			return reject("placeholder_marker", "placeholder text found: %q", marker)
		}
	}
	if aLower != "" && strings.Contains(qLower, "["+aLower+"]") {
		return reject("placeholder_marker", "answer leaked in bracketed marker")
	}

	for _, phrase := range visualPhrases {
		if strings.Contains(qLower, phrase) {
			return reject("visual_dependency", "question depends on an unseen visual: %q", phrase)
		}
	}

	if len(answer) > maxAnswerLength {
		return reject("answer_length", "answer too long (%d chars, max %d)", len(answer), maxAnswerLength)
	}

	if strings.Contains(question, "</") || strings.Contains(question, "```") ||
		strings.Contains(answer, "</") || strings.Contains(answer, "```") {
		return reject("no_markup", "HTML or markdown artifacts present")
	}

	if len(options) > 0 && len(options) < minOptions {
		return reject("min_options", "too few options (%d, min %d)", len(options), minOptions)
	}

	if r := checkLengthBias(answer, options); r != nil {
		return r
	}

	for _, opt := range options {
		stripped := strings.ToLower(strings.TrimSpace(letterPrefixRe.ReplaceAllString(opt, "")))
		if bannedOptions[stripped] || bannedOptions[strings.ToLower(strings.TrimSpace(opt))] {
			return reject("banned_option", "banned option: %q", strings.TrimSpace(opt))
		}
	}

	if r := checkTerminalForm(question); r != nil {
		return r
	}

	if r := checkDrawImperative(qLower); r != nil {
		return r
	}

	if r := checkDistractorSanity(answer, options); r != nil {
		return r
	}

	if r := checkPropertyAmbiguity(qLower); r != nil {
		return r
	}

	return verifyMath(c)
}

func answerAmongOptions(aLower string, options []string) bool {
	if len(aLower) == 1 && aLower >= "a" && aLower <= "d" {
		return int(aLower[0]-'a') < len(options)
	}
	for _, opt := range options {
		o := strings.ToLower(strings.TrimSpace(opt))
		if o == aLower {
			return true
		}
		if strings.ToLower(strings.TrimSpace(letterPrefixRe.ReplaceAllString(opt, ""))) == aLower {
			return true
		}
	}
	return false
}

// giveawayAllowed enumerates phrasings where the answer legitimately
// appears inside the question text.
func giveawayAllowed(qLower, answer string) bool {
	if whatIsMathRe.MatchString(qLower) {
		return true
	}
	for _, w := range comparisonWords {
		if strings.Contains(qLower, w) {
			return true
		}
	}
	for _, prefix := range []string{"is ", "are ", "does ", "do ", "can ", "will ", "what ", "which "} {
		if strings.HasPrefix(qLower, prefix) {
			return true
		}
	}
	return len(answer) <= 1
}

func checkLengthBias(answer string, options []string) *Rejection {
	if len(options) == 0 {
		return nil
	}
	aLower := strings.ToLower(answer)
	var lens []int
	for _, opt := range options {
		t := strings.TrimSpace(opt)
		if strings.ToLower(t) != aLower {
			lens = append(lens, len(t))
		}
	}
	if len(lens) == 0 {
		return nil
	}
	sum, longest := 0, 0
	for _, l := range lens {
		sum += l
		if l > longest {
			longest = l
		}
	}
	avg := float64(sum) / float64(len(lens))
	if float64(len(answer)) > avg*3 && len(answer) > longest+15 {
		return reject("length_bias", "answer much longer than distractors")
	}
	return nil
}

func checkTerminalForm(question string) *Rejection {
	if terminalRe.MatchString(question) || strings.Contains(question, "__") {
		return nil
	}
	fields := strings.Fields(question)
	if len(fields) > 0 {
		first := strings.TrimSuffix(strings.ToLower(fields[0]), ":")
		if imperativeVerbs[first] {
			return nil
		}
	}
	return reject("terminal_form", "question lacks punctuation, blank, or imperative verb")
}

func checkDrawImperative(qLower string) *Rejection {
	fields := strings.Fields(qLower)
	if len(fields) > 0 && drawVerbs[strings.TrimSuffix(fields[0], ":")] {
		return reject("draw_imperative", "question asks the learner to produce a visual")
	}
	if drawImperativRe.MatchString(qLower) {
		return reject("draw_imperative", "question asks the learner to produce a visual")
	}
	return nil
}

func checkDistractorSanity(answer string, options []string) *Rejection {
	if len(options) == 0 {
		return nil
	}
	aLower := strings.ToLower(strings.TrimSpace(answer))
	fillerCount := 0
	for _, opt := range options {
		stripped := strings.ToLower(strings.TrimSpace(letterPrefixRe.ReplaceAllString(opt, "")))
		if stripped != aLower && fillerOptions[stripped] {
			fillerCount++
		}
	}
	if fillerCount >= 2 {
		return reject("distractor_sanity", "%d generic filler options", fillerCount)
	}
	if fillerCount >= 1 && isSymbolicScript(answer) {
		return reject("distractor_sanity", "symbolic answer paired with generic filler options")
	}
	return nil
}

// isSymbolicScript reports whether the answer contains no Latin
// letters or ASCII digits at all, e.g. a formula in a non-Latin
// script that slipped through generation.
func isSymbolicScript(answer string) bool {
	if answer == "" {
		return false
	}
	for _, r := range answer {
		if r >= '0' && r <= '9' {
			return false
		}
		if unicode.Is(unicode.Latin, r) {
			return false
		}
	}
	return true
}

// checkPropertyAmbiguity rejects "which is even/odd/prime/divisible"
// prompts where more than one mentioned number has the property.
func checkPropertyAmbiguity(qLower string) *Rejection {
	if !strings.Contains(qLower, "which") {
		return nil
	}

	var satisfies func(n int) bool
	var property string
	switch {
	case evenWordRe.MatchString(qLower):
		property = "even"
		satisfies = func(n int) bool { return n%2 == 0 }
	case oddWordRe.MatchString(qLower):
		property = "odd"
		satisfies = func(n int) bool { return n%2 != 0 }
	case primeWordRe.MatchString(qLower):
		property = "prime"
		satisfies = isPrime
	default:
		m := divisibleByRe.FindStringSubmatch(qLower)
		if m == nil {
			return nil
		}
		d, err := strconv.Atoi(m[1])
		if err != nil || d == 0 {
			return nil
		}
		property = "divisible by " + m[1]
		satisfies = func(n int) bool { return n != d && n%d == 0 }
	}

	count := 0
	for _, raw := range questionNumRe.FindAllString(qLower, -1) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if satisfies(n) {
			count++
		}
	}
	if count > 1 {
		return reject("ambiguous_property", "%d numbers in the question are %s", count, property)
	}
	return nil
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
