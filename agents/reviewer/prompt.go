package reviewer

import (
	"fmt"
	"strings"

	"github.com/tripweave/tripweave/schema"
)

// longest review excerpt quoted into the prompt
const snippetLen = 200

func analysisPrompt(req *Request, grouped map[string][]schema.Review) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compare these hotels in %s using their guest reviews.\n", req.Destination)
	for _, hotel := range req.Hotels {
		reviews, ok := grouped[hotel.Name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n## %s (rating %.1f)\n", hotel.Name, hotel.Rating)
		for idx, review := range reviews {
			line := review.Text
			if len(line) > snippetLen {
				line = line[:snippetLen]
			}
			fmt.Fprintf(&b, "%d. ", idx+1)
			if review.Rating > 0 {
				fmt.Fprintf(&b, "[%.1f] ", review.Rating)
			}
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	fmt.Fprintf(&b, "\n## Task\n")
	fmt.Fprintf(&b, "1. Score each hotel overall from 1 to 5 and per aspect (location, room, service, value) from 0 to 1.\n")
	fmt.Fprintf(&b, "2. List concrete strengths and weaknesses grounded in the reviews.\n")
	fmt.Fprintf(&b, "3. Rank every hotel, rank 1 first, each with a one-sentence reason.\n")
	fmt.Fprintf(&b, "4. Respond with a single JSON object with analysis, recommendations and top_pick.\n")
	return b.String()
}
