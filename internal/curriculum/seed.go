package curriculum

// Default returns the built-in first-grade math curriculum used when no
// curriculum has been loaded into the store yet.
func Default() []Concept {
	return []Concept{
		{
			ID:          "add-within-10",
			Name:        "Addition Within 10",
			Description: "Basic addition facts with sums up to 10. Strategies like counting on and counting all. Examples: 3+2=5, 4+6=10, 0+7=7. Include adding zero. Word form: \"3 plus 4 equals what?\"",
			OrderIndex:  1,
		},
		{
			ID:            "sub-within-10",
			Name:          "Subtraction Within 10",
			Description:   "Basic subtraction facts within 10. Take away objects to find the difference. Examples: 8-3=5, 10-4=6, 7-0=7. Include subtracting zero.",
			OrderIndex:    2,
			Prerequisites: []string{"add-within-10"},
		},
		{
			ID:            "fluency-within-10",
			Name:          "Addition and Subtraction Fluency Within 10",
			Description:   "Fast, accurate recall of all addition and subtraction facts within 10. Mixed practice: 6+4, 9-3, 5+5, 10-7. Include fact families: if 3+4=7, then 7-3=4.",
			OrderIndex:    3,
			Prerequisites: []string{"add-within-10", "sub-within-10"},
		},
		{
			ID:            "add-within-20",
			Name:          "Addition Within 20",
			Description:   "Addition with sums from 11 to 20. Strategies: making ten (8+6 = 8+2+4 = 14), doubles (7+7=14), counting on from the larger number. Examples: 9+5=14, 8+7=15.",
			OrderIndex:    4,
			Prerequisites: []string{"fluency-within-10"},
		},
		{
			ID:            "sub-within-20",
			Name:          "Subtraction Within 20",
			Description:   "Subtraction with minuends up to 20. Use the relationship to addition: to solve 15-8, think \"8 + what = 15?\" Examples: 14-6=8, 17-9=8, 20-5=15.",
			OrderIndex:    5,
			Prerequisites: []string{"add-within-20"},
		},
		{
			ID:            "three-addends",
			Name:          "Three Addends",
			Description:   "Add three whole numbers with a sum of 20 or less. Look for pairs that make ten first: 4+6+3 = 10+3 = 13. Examples: 2+8+5=15, 3+3+4=10.",
			OrderIndex:    6,
			Prerequisites: []string{"add-within-20"},
		},
		{
			ID:            "word-problems-add-take",
			Name:          "Word Problems: Add To and Take From",
			Description:   "Addition and subtraction word problems with result, change, or start unknown. \"Sam had 5 stickers. He got 3 more. How many now?\" \"There were 12 birds. 4 flew away. How many are left?\"",
			OrderIndex:    7,
			Prerequisites: []string{"sub-within-20", "three-addends"},
		},
		{
			ID:            "equal-sign",
			Name:          "Understanding the Equal Sign",
			Description:   "The equal sign means \"the same as.\" Determine if equations are true or false: Is 7=8-1 true? Equations can have expressions on both sides: 4+3 = 2+5.",
			OrderIndex:    8,
			Prerequisites: []string{"fluency-within-10"},
		},
		{
			ID:            "unknown-number",
			Name:          "Unknown Number in Equations",
			Description:   "Find the missing number that makes an equation true. Examples: 8 + ? = 11 (answer 3). ? + 4 = 10 (answer 6). 14 - __ = 9 (answer 5). Relate to fact families and inverse operations.",
			OrderIndex:    9,
			Prerequisites: []string{"equal-sign", "add-within-20"},
		},
		{
			ID:            "clock-reading",
			Name:          "Telling Time",
			Description:   "Read analog clocks to the hour and half hour. Identify the hour hand and minute hand. Match clock faces to written times.",
			OrderIndex:    10,
			Prerequisites: []string{"add-within-10"},
		},
	}
}
