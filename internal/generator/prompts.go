package generator

import (
	"fmt"
	"strings"
)

const chaptersPrompt = `Here's a podcast transcript with timestamps. Generate a list of all major topics covered in the podcast, and the timestamp at which it's mentioned in the podcast. Use this format: - [00:00:00] Topic name. Here's the transcript:

%s`

const showNotesPrompt = `I'll give you a podcast transcript; help me create a list of every company, person, project, or any other named entity that you find in it. Here's the transcript:

%s`

const titlesPrompt = `These are some titles of previous podcast episodes we've published:

%s

Here's a transcript of the podcast episode; suggest 8 title options for it:

%s`

const tweetsPrompt = `Here's a transcript of our latest podcast episode; suggest 8 tweets to share it on social medias.
It should include a few bullet points of the most interesting topics. Our audience is technical.
Use a writing style between Hemingway's and Flash Fiction.

%s`

func chaptersRequest(in Input) string {
	return fmt.Sprintf(chaptersPrompt, in.Transcript)
}

func showNotesRequest(in Input) string {
	return fmt.Sprintf(showNotesPrompt, in.Transcript)
}

func titlesRequest(in Input) string {
	return fmt.Sprintf(titlesPrompt, numberedTitles(in.PriorTitles), in.Transcript)
}

func tweetsRequest(in Input) string {
	return fmt.Sprintf(tweetsPrompt, in.Transcript)
}

// numberedTitles renders `1. "Title"` lines.
func numberedTitles(titles []string) string {
	lines := make([]string, len(titles))
	for i, t := range titles {
		lines[i] = fmt.Sprintf("%d. %q", i+1, t)
	}
	return strings.Join(lines, "\n")
}
