package generator

import (
	"github.com/nguyentantai21042004/podcast-flow/internal/llm"
	"github.com/nguyentantai21042004/podcast-flow/internal/logger"
)

// NewChapters lists the major topics with their timestamps.
func NewChapters(provider llm.TextGenerator, opts Options, log logger.Logger) Generator {
	return &implSingle{name: Chapters, subject: "chapters", provider: provider, prompt: chaptersRequest, opts: opts, logger: log}
}

// NewShowNotes lists the named entities mentioned in the episode.
func NewShowNotes(provider llm.TextGenerator, opts Options, log logger.Logger) Generator {
	return &implSingle{name: ShowNotes, subject: "show notes", provider: provider, prompt: showNotesRequest, opts: opts, logger: log}
}

// NewTitles suggests titles from every provider, primed with prior titles.
func NewTitles(providers []llm.TextGenerator, opts Options, log logger.Logger) Generator {
	return &implMulti{name: Titles, kind: "title", providers: providers, prompt: titlesRequest, opts: opts, logger: log}
}

// NewTweets suggests tweets from every provider.
func NewTweets(providers []llm.TextGenerator, opts Options, log logger.Logger) Generator {
	return &implMulti{name: Tweets, kind: "tweet", providers: providers, prompt: tweetsRequest, opts: opts, logger: log}
}

// NewSet returns the four generators in results order.
func NewSet(chapters, showNotes llm.TextGenerator, suggestions []llm.TextGenerator, opts Options, log logger.Logger) []Generator {
	return []Generator{
		NewChapters(chapters, opts, log),
		NewShowNotes(showNotes, opts, log),
		NewTitles(suggestions, opts, log),
		NewTweets(suggestions, opts, log),
	}
}
