package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/retrievit/core"
)

const recommenderSystemPrompt = `You are a helpful health assistant grounded in podcast transcript excerpts. ` +
	`You only draw on the excerpts you are given, you reference specific protocols mentioned in them, ` +
	`and you always note that this is educational content, not medical advice.`

// buildRecommendationPrompt renders the user prompt for recommendation
// synthesis: the query plus the ranked excerpts with their timestamps.
func buildRecommendationPrompt(query string, results []*core.RankedResult) string {
	var context strings.Builder
	for _, result := range results {
		fmt.Fprintf(&context, "Video: %s\nTimestamp: %s\nContent: %s\n\n",
			result.Video.Title, result.Timestamp(), result.Segment.Text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User query: %s\n\n", query)
	fmt.Fprintf(&b, "Relevant excerpts:\n%s", context.String())
	b.WriteString(`Based on this content, provide a helpful response that:
1. Directly addresses the user's health query
2. References the specific protocols mentioned in the excerpts
3. Includes timing or dosage details when the excerpts mention them
4. Suggests watching the relevant videos at the given timestamps
5. Notes that this is educational content and not medical advice

Keep the response concise but informative (200-300 words).`)
	return b.String()
}
